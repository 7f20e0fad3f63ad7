package tcx

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<TrainingCenterDatabase xmlns="http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2">
  <Activities>
    <Activity Sport="Biking">
      <Lap>
        <Track>
          <Trackpoint>
            <Time>2016-10-07T08:01:12Z</Time>
            <Extensions>
              <ns3:TPX xmlns:ns3="http://www.garmin.com/xmlschemas/ActivityExtension/v2">
                <ns3:Watts>81</ns3:Watts>
              </ns3:TPX>
            </Extensions>
          </Trackpoint>
        </Track>
      </Lap>
    </Activity>
  </Activities>
</TrainingCenterDatabase>
`

func TestParse_WrapsBodyInSyntheticRoot(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if root.Name != RootName {
		t.Fatalf("root=%q want %q", root.Name, RootName)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "TrainingCenterDatabase" {
		t.Fatalf("unexpected root children: %+v", root.Children)
	}

	tp := root.Children[0].FirstChild().FirstChild().FirstChild().FirstChild().FirstChild()
	if tp == nil || tp.Name != "Trackpoint" {
		t.Fatalf("expected Trackpoint, got %+v", tp)
	}
	if len(tp.Children) != 2 {
		t.Fatalf("expected 2 element children (whitespace dropped), got %d", len(tp.Children))
	}
	ts, ok := tp.Children[0].Text()
	if !ok || ts != "2016-10-07T08:01:12Z" {
		t.Fatalf("time text=%q ok=%v", ts, ok)
	}

	watts := tp.Children[1].FirstChild().FirstChild()
	if watts.Name != "Watts" {
		t.Fatalf("prefix not dropped: %q", watts.Name)
	}
	if v, _ := watts.Text(); v != "81" {
		t.Fatalf("watts=%q want 81", v)
	}
}

func TestParse_FirstLineAlwaysDiscarded(t *testing.T) {
	// The first line is not a prolog here, it is dropped anyway.
	root, err := Parse(strings.NewReader("<Ignored/>\n<Kept/>\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(root.Children) != 1 || root.Children[0].Name != "Kept" {
		t.Fatalf("unexpected children: %+v", root.Children)
	}
}

func TestParse_EmptyElementHasNoText(t *testing.T) {
	root, err := Parse(strings.NewReader("\n<Time/>"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if _, ok := root.FirstChild().Text(); ok {
		t.Fatalf("expected no text for empty element")
	}
}

func TestParse_BodyClosingWrapperIsStructuralError(t *testing.T) {
	_, err := Parse(strings.NewReader("\n</top><top>"))
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("err=%v want *StructuralError", err)
	}
	if se.Roots != 2 {
		t.Fatalf("roots=%d want 2", se.Roots)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse(strings.NewReader("\n<a><b></a>")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.tcx")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	root, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if root.FirstChild() == nil {
		t.Fatalf("expected document element")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.tcx")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v want not exist", err)
	}
}
