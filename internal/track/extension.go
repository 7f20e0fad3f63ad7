package track

import (
	"strconv"
	"strings"
)

// ComposeExtension renders the gpxtpx:TrackPointExtension block for the values
// that are present, in the order hr, atemp, power, cad. With nothing present
// it returns "" rather than an empty block.
func ComposeExtension(heartRate *int, temperature *float64, cadence *int, power *float64) string {
	var lines []string
	if heartRate != nil {
		lines = append(lines, "<gpxtpx:hr>"+strconv.Itoa(*heartRate)+"</gpxtpx:hr>")
	}
	if temperature != nil {
		lines = append(lines, "<gpxtpx:atemp>"+FormatFloat(*temperature)+"</gpxtpx:atemp>")
	}
	if power != nil {
		lines = append(lines, "<gpxtpx:power>"+FormatFloat(*power)+"</gpxtpx:power>")
	}
	if cadence != nil {
		lines = append(lines, "<gpxtpx:cad>"+strconv.Itoa(*cadence)+"</gpxtpx:cad>")
	}
	if len(lines) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<extensions>\n")
	b.WriteString("        <gpxtpx:TrackPointExtension>\n")
	for _, line := range lines {
		b.WriteString("            ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("        </gpxtpx:TrackPointExtension>\n")
	b.WriteString("    </extensions>")
	return b.String()
}
