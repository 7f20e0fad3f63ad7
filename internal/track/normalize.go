package track

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"tcx2gpx/internal/config"
	"tcx2gpx/internal/tcx"
)

// Bounds of a truncated distance; float64(math.MaxInt64) rounds up to 2^63.
const (
	minDistance = -(1 << 63)
	maxDistance = 1 << 63
)

// Normalizer converts Trackpoint elements into SamplePoints.
//
// Field rules, matched case-insensitively on the direct children:
//
//	time            raw text, not parsed
//	position        latitudedegrees / longitudedegrees
//	altitudemeters  float, or 0 with altitude suppression
//	distancemeters  float truncated to int, stored as cadence
//	heartratebpm    first child's text, ',' -> '.', int
//	cadence         int
//	temperature     float (see TemperatureSource)
//	extensions      first child's watts / speed
//
// distancemeters and cadence write the same field; the later element in the
// Trackpoint wins.
type Normalizer struct {
	noAltitude        bool
	legacyTemperature bool
	fold              cases.Caser
}

func NewNormalizer(cfg config.Config) *Normalizer {
	return &Normalizer{
		noAltitude:        cfg.Options.NoAltitude,
		legacyTemperature: cfg.Options.TemperatureSource == config.TemperatureLegacy,
		fold:              cases.Fold(),
	}
}

// Normalize extracts one SamplePoint from tp. Any malformed recognized field
// fails the whole point with a *MalformedFieldError.
func (n *Normalizer) Normalize(tp *tcx.Element) (SamplePoint, error) {
	var p SamplePoint

	// buf is the last top-level field text seen; the legacy temperature rule
	// converts it instead of the temperature element's own text.
	var buf string
	var haveBuf bool

	for _, node := range tp.Children {
		switch n.fold.String(node.Name) {
		case "time":
			v, err := fieldText(node, "time")
			if err != nil {
				return SamplePoint{}, err
			}
			buf, haveBuf = v, true
			p.Time = &v

		case "position":
			if err := n.position(node, &p); err != nil {
				return SamplePoint{}, err
			}

		case "altitudemeters":
			v, err := fieldText(node, "altitude")
			if err != nil {
				return SamplePoint{}, err
			}
			buf, haveBuf = v, true
			alt := 0.0
			if !n.noAltitude {
				if alt, err = parseFloat("altitude", v); err != nil {
					return SamplePoint{}, err
				}
			}
			p.Altitude = &alt

		case "distancemeters":
			v, err := fieldText(node, "distance")
			if err != nil {
				return SamplePoint{}, err
			}
			buf, haveBuf = v, true
			f, err := parseFloat("distance", v)
			if err != nil {
				return SamplePoint{}, err
			}
			if math.IsNaN(f) || math.IsInf(f, 0) || f < minDistance || f >= maxDistance {
				return SamplePoint{}, &MalformedFieldError{Field: "distance", Value: v, Err: strconv.ErrRange}
			}
			cad := int(f)
			p.Cadence = &cad

		case "heartratebpm":
			inner := node.FirstChild()
			if inner == nil {
				return SamplePoint{}, &MalformedFieldError{Field: "heart rate", Err: ErrNoElement}
			}
			v, err := fieldText(inner, "heart rate")
			if err != nil {
				return SamplePoint{}, err
			}
			v = strings.ReplaceAll(v, ",", ".")
			buf, haveBuf = v, true
			hr, err := parseInt("heart rate", v)
			if err != nil {
				return SamplePoint{}, err
			}
			p.HeartRate = &hr

		case "cadence":
			v, err := fieldText(node, "cadence")
			if err != nil {
				return SamplePoint{}, err
			}
			buf, haveBuf = v, true
			cad, err := parseInt("cadence", v)
			if err != nil {
				return SamplePoint{}, err
			}
			p.Cadence = &cad

		case "temperature":
			var v string
			if n.legacyTemperature {
				if !haveBuf {
					return SamplePoint{}, &MalformedFieldError{Field: "temperature", Err: ErrNoWorkingBuffer}
				}
				v = buf
			} else {
				var err error
				if v, err = fieldText(node, "temperature"); err != nil {
					return SamplePoint{}, err
				}
				buf, haveBuf = v, true
			}
			temp, err := parseFloat("temperature", v)
			if err != nil {
				return SamplePoint{}, err
			}
			p.Temperature = &temp

		case "extensions":
			if err := n.extensions(node, &p); err != nil {
				return SamplePoint{}, err
			}
		}
	}
	return p, nil
}

func (n *Normalizer) position(node *tcx.Element, p *SamplePoint) error {
	for _, sub := range node.Children {
		var field string
		var dst **float64
		switch n.fold.String(sub.Name) {
		case "latitudedegrees":
			field, dst = "latitude", &p.Latitude
		case "longitudedegrees":
			field, dst = "longitude", &p.Longitude
		default:
			continue
		}
		v, err := fieldText(sub, field)
		if err != nil {
			return err
		}
		f, err := parseFloat(field, v)
		if err != nil {
			return err
		}
		*dst = &f
	}
	return nil
}

// extensions reads the vendor block (TPX) wrapped by <Extensions>.
func (n *Normalizer) extensions(node *tcx.Element, p *SamplePoint) error {
	block := node.FirstChild()
	if block == nil {
		return &MalformedFieldError{Field: "extensions", Err: ErrNoElement}
	}
	for _, sub := range block.Children {
		var field string
		var dst **float64
		switch n.fold.String(sub.Name) {
		case "watts":
			field, dst = "power", &p.Power
		case "speed":
			field, dst = "speed", &p.Speed
		default:
			continue
		}
		v, err := fieldText(sub, field)
		if err != nil {
			return err
		}
		f, err := parseFloat(field, v)
		if err != nil {
			return err
		}
		*dst = &f
	}
	return nil
}

func fieldText(el *tcx.Element, field string) (string, error) {
	v, ok := el.Text()
	if !ok {
		return "", &MalformedFieldError{Field: field, Err: ErrNoText}
	}
	return v, nil
}

func parseFloat(field, v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, &MalformedFieldError{Field: field, Value: v, Err: unwrapNum(err)}
	}
	return f, nil
}

func parseInt(field, v string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &MalformedFieldError{Field: field, Value: v, Err: unwrapNum(err)}
	}
	return i, nil
}

// unwrapNum drops strconv's own "parsing ...: " prefix; the field error
// already quotes the value.
func unwrapNum(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
