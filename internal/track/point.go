package track

// SamplePoint is one normalized Trackpoint. A nil field was not present in the
// source element.
type SamplePoint struct {
	Latitude    *float64
	Longitude   *float64
	Altitude    *float64
	Time        *string
	Speed       *float64
	Cadence     *int
	HeartRate   *int
	Temperature *float64
	Power       *float64
}

// HasPosition reports whether both coordinates are present. Points without a
// position are never written.
func (p SamplePoint) HasPosition() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// HasSensors reports whether any value of the extension block is present.
func (p SamplePoint) HasSensors() bool {
	return p.HeartRate != nil || p.Temperature != nil || p.Cadence != nil || p.Power != nil
}
