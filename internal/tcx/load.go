package tcx

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// RootName is the synthetic element the document body is wrapped in.
const RootName = "top"

// StructuralError reports a wrapped document that does not have exactly one
// synthetic root. Loading always wraps the body, so this indicates a bug or a
// body that closes the wrapper itself.
type StructuralError struct {
	Roots int
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("tcx: expected exactly one %q root, got %d", RootName, e.Roots)
}

// Load reads the file at path. See Parse.
func Load(path string) (*Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	root, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return root, nil
}

// Parse discards the first line of r unconditionally (it is expected to be the
// XML prolog), wraps the remainder in a synthetic <top> element and decodes it.
func Parse(r io.Reader) (*Element, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	body := io.MultiReader(
		strings.NewReader("<"+RootName+">"),
		br,
		strings.NewReader("</"+RootName+">"),
	)
	roots, err := decode(body)
	if err != nil {
		return nil, err
	}
	if len(roots) != 1 || roots[0].Name != RootName {
		return nil, &StructuralError{Roots: len(roots)}
	}
	return roots[0], nil
}

func decode(r io.Reader) ([]*Element, error) {
	d := xml.NewDecoder(r)

	var roots []*Element
	var stack []*Element
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			if n := len(stack); n > 0 {
				parent := stack[n-1]
				parent.Children = append(parent.Children, el)
			} else {
				roots = append(roots, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("unbalanced end element %q", t.Name.Local)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			cur := stack[len(stack)-1]
			// Only text ahead of the first child counts.
			if len(cur.Children) == 0 {
				cur.text += string(t)
				cur.hasText = true
			}
		}
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("unexpected end of document inside %q", stack[len(stack)-1].Name)
	}
	return roots, nil
}
