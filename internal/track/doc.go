// Package track turns TCX trackpoint elements into sample points.
//
// The Locator walks the container hierarchy (Activities, Activity, Lap, Track)
// and yields Trackpoint elements in document order. The Normalizer converts one
// Trackpoint into a SamplePoint. ComposeExtension renders the Garmin
// TrackPointExtension block for the sensor values that are present.
package track
