package gpx

import "io"

const (
	progressEvery = 100
	progressLine  = 80 * progressEvery
)

// Progress prints one '.' per hundred sample points and breaks the line every
// 8000. Write errors are ignored.
type Progress struct {
	w io.Writer
	n int
}

func NewProgress(w io.Writer) *Progress { return &Progress{w: w} }

// Tick records one processed point. A nil Progress does nothing.
func (p *Progress) Tick() {
	if p == nil {
		return
	}
	p.n++
	if p.n%progressEvery != 0 {
		return
	}
	_, _ = io.WriteString(p.w, ".")
	if p.n%progressLine == 0 {
		_, _ = io.WriteString(p.w, "\n")
	}
}

// Count returns the number of ticks so far.
func (p *Progress) Count() int {
	if p == nil {
		return 0
	}
	return p.n
}
