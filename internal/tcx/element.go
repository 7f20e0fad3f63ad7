package tcx

// Element is one XML element with its text and element children.
//
// Name is the local name; namespace prefixes are dropped so that
// <ns3:Speed> and <Speed> look the same to callers.
type Element struct {
	Name     string
	Children []*Element

	text    string
	hasText bool
}

// Text returns the character data that precedes the first child element.
// ok is false when the element has no leading text at all (for example <Time/>).
func (e *Element) Text() (string, bool) {
	if e == nil {
		return "", false
	}
	return e.text, e.hasText
}

// FirstChild returns the first element child, or nil.
func (e *Element) FirstChild() *Element {
	if e == nil || len(e.Children) == 0 {
		return nil
	}
	return e.Children[0]
}

// NewElement builds an element by hand. It is mostly useful for tests that
// want a tree without going through XML.
func NewElement(name string, children ...*Element) *Element {
	return &Element{Name: name, Children: children}
}

// NewLeaf builds an element that carries only text.
func NewLeaf(name, text string) *Element {
	return &Element{Name: name, text: text, hasText: true}
}
