package gpx

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"tcx2gpx/internal/config"
	"tcx2gpx/internal/tcx"
	"tcx2gpx/internal/track"
)

// Summary counts what one Run did.
type Summary struct {
	Located        int
	Emitted        int
	Skipped        int // located but without a position
	WithExtensions int
}

// Emitter streams one GPX document: a fixed header, one trkpt per positioned
// sample point, and a fixed footer. Nothing is buffered beyond w.
type Emitter struct {
	w        io.Writer
	cfg      config.Config
	norm     *track.Normalizer
	progress *Progress
}

// NewEmitter writes the document to w. progress may be nil to disable the
// dot-per-hundred progress output.
func NewEmitter(w io.Writer, cfg config.Config, progress io.Writer) *Emitter {
	e := &Emitter{
		w:    w,
		cfg:  cfg,
		norm: track.NewNormalizer(cfg),
	}
	if progress != nil {
		e.progress = NewProgress(progress)
	}
	return e
}

// Run converts every sample point below root. A malformed field stops the run
// and the document is left incomplete.
func (e *Emitter) Run(root *tcx.Element) (Summary, error) {
	var s Summary
	if err := e.writeHeader(); err != nil {
		return s, err
	}

	loc := track.NewLocator(root, e.cfg)
	for {
		el, ok := loc.Next()
		if !ok {
			break
		}
		s.Located++
		e.progress.Tick()

		p, err := e.norm.Normalize(el)
		if err != nil {
			return s, fmt.Errorf("trackpoint %d: %w", s.Located, err)
		}
		if !p.HasPosition() {
			s.Skipped++
			continue
		}

		ext := e.extension(p)
		if ext != "" {
			s.WithExtensions++
		}
		if err := e.writePoint(p, ext); err != nil {
			return s, err
		}
		s.Emitted++
	}

	if err := e.writeFooter(); err != nil {
		return s, err
	}
	return s, nil
}

func (e *Emitter) extension(p track.SamplePoint) string {
	opts := e.cfg.Options
	if opts.NoExtensions {
		return ""
	}
	temp, power := p.Temperature, p.Power
	if opts.NoTemperature {
		temp = nil
	}
	if opts.NoPower {
		power = nil
	}
	return track.ComposeExtension(p.HeartRate, temp, p.Cadence, power)
}

func (e *Emitter) writeHeader() error {
	out := e.cfg.Output
	_, err := fmt.Fprintf(e.w, `<?xml version="1.0" encoding="UTF-8" standalone="no" ?>
<gpx version="1.1"
creator="%s"
xmlns="http://www.topografix.com/GPX/1/1"
xmlns:gpxtpx="http://www.garmin.com/xmlschemas/TrackPointExtension/v1"
xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
xsi:schemaLocation="http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd">

  <metadata>
    <link href="%s">
      <text>%s</text>
    </link>
  </metadata>

  <trk>
    <trkseg>
`, escape(out.Creator), escape(out.MetadataLink), escape(out.MetadataText))
	return err
}

func (e *Emitter) writePoint(p track.SamplePoint, ext string) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<trkpt lat="%s" lon="%s">`, track.FormatFloat(*p.Latitude), track.FormatFloat(*p.Longitude))

	switch {
	case !e.cfg.Options.NoAltitude:
		// <ele> is a decimal; without a source altitude there is nothing to write.
		if p.Altitude != nil {
			b.WriteString("<ele>" + track.FormatFloat(*p.Altitude) + "</ele>")
		}
	case e.cfg.Options.AltitudeMode == config.AltitudeZero:
		b.WriteString("<ele>0</ele>")
	}

	b.WriteString("<time>")
	if p.Time != nil {
		b.WriteString(escape(*p.Time))
	}
	b.WriteString("</time><speed>")
	if p.Speed != nil {
		b.WriteString(track.FormatFloat(*p.Speed))
	}
	b.WriteString("</speed>\n")

	if ext != "" {
		b.WriteString("    ")
		b.WriteString(ext)
		b.WriteByte('\n')
	}
	b.WriteString("</trkpt>\n")

	_, err := io.WriteString(e.w, b.String())
	return err
}

func (e *Emitter) writeFooter() error {
	_, err := io.WriteString(e.w, "    </trkseg>\n  </trk>\n</gpx>\n")
	return err
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
