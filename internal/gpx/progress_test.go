package gpx

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgress_DotsAndLineBreaks(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf)
	for i := 0; i < 16050; i++ {
		p.Tick()
	}
	want := strings.Repeat(".", 80) + "\n" + strings.Repeat(".", 80) + "\n"
	if buf.String() != want {
		t.Fatalf("progress=%q", buf.String())
	}
	if p.Count() != 16050 {
		t.Fatalf("count=%d", p.Count())
	}
}

func TestProgress_NilIsNoop(t *testing.T) {
	var p *Progress
	p.Tick()
	if p.Count() != 0 {
		t.Fatalf("nil progress counted")
	}
}
