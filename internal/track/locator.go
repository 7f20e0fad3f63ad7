package track

import (
	"golang.org/x/text/cases"

	"tcx2gpx/internal/config"
	"tcx2gpx/internal/tcx"
)

// Kind classifies an element for traversal.
type Kind int

const (
	KindOther Kind = iota
	KindContainer
	KindSample
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindSample:
		return "sample"
	default:
		return "other"
	}
}

// Locator yields sample-point elements in document order.
//
// It is a depth-first walk driven by an explicit stack, so nesting depth does
// not grow the goroutine stack. A Locator is single use.
type Locator struct {
	containers map[string]struct{}
	sample     string
	fold       cases.Caser

	stack []*tcx.Element
}

// NewLocator prepares a walk below root. Only children of root whose tag
// matches the configured document tag (case-insensitively) are entered.
func NewLocator(root *tcx.Element, cfg config.Config) *Locator {
	l := &Locator{
		containers: make(map[string]struct{}, len(cfg.Input.Containers)),
		fold:       cases.Fold(),
	}
	for _, name := range cfg.Input.Containers {
		l.containers[name] = struct{}{}
	}
	l.sample = l.fold.String(cfg.Input.SampleTag)

	if root == nil {
		return l
	}
	doc := l.fold.String(cfg.Input.DocumentTag)
	var seed []*tcx.Element
	for _, child := range root.Children {
		if l.fold.String(child.Name) == doc {
			seed = append(seed, child.Children...)
		}
	}
	l.push(seed)
	return l
}

// Classify reports how the walk treats el. Container labels are compared
// exactly; the sample tag is compared case-insensitively.
func (l *Locator) Classify(el *tcx.Element) Kind {
	if _, ok := l.containers[el.Name]; ok {
		return KindContainer
	}
	if l.fold.String(el.Name) == l.sample {
		return KindSample
	}
	return KindOther
}

// Next returns the next sample-point element. ok is false once the walk is
// exhausted.
func (l *Locator) Next() (el *tcx.Element, ok bool) {
	for len(l.stack) > 0 {
		n := len(l.stack) - 1
		el = l.stack[n]
		l.stack = l.stack[:n]

		switch l.Classify(el) {
		case KindContainer:
			l.push(el.Children)
		case KindSample:
			return el, true
		}
	}
	return nil, false
}

// push adds children so that the first child is popped first.
func (l *Locator) push(children []*tcx.Element) {
	for i := len(children) - 1; i >= 0; i-- {
		l.stack = append(l.stack, children[i])
	}
}

// Collect drains l.
func Collect(l *Locator) []*tcx.Element {
	var out []*tcx.Element
	for {
		el, ok := l.Next()
		if !ok {
			return out
		}
		out = append(out, el)
	}
}
