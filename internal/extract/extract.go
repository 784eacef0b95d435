// Package extract slices named phase bodies out of a monolithic source
// artifact by literal text markers.
package extract

import (
	"fmt"
	"strings"
)

// ExtractionError reports a marker that is missing or out of order in the
// source text. It aborts a run before any phase executes, so it carries
// enough detail to point at the offending marker.
type ExtractionError struct {
	Marker string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting section: %s (marker %q)", e.Reason, e.Marker)
}

// Extract returns the substring of fullText from the start of the first
// occurrence of startMarker to the start of the first occurrence of
// endMarker after it. The start marker itself is part of the body; the end
// marker is not.
//
// Extract is a pure text transform. It does not validate that the body is
// well-formed code; a malformed body only surfaces when it is executed.
func Extract(fullText, startMarker, endMarker string) (string, error) {
	start := strings.Index(fullText, startMarker)
	if start < 0 {
		return "", &ExtractionError{Marker: startMarker, Reason: "start marker not found"}
	}

	endRel := strings.Index(fullText[start:], endMarker)
	if endRel < 0 {
		return "", &ExtractionError{Marker: endMarker, Reason: "end marker not found after start marker"}
	}
	if endRel == 0 {
		return "", &ExtractionError{Marker: endMarker, Reason: "empty section"}
	}
	return fullText[start : start+endRel], nil
}
