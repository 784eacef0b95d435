package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	full := "header\n// BEGIN SCRAPER\nscrapeAll()\n// BEGIN EDA\nplotAll()\n"

	body, err := Extract(full, "// BEGIN SCRAPER", "// BEGIN EDA")
	require.NoError(t, err)
	assert.Equal(t, "// BEGIN SCRAPER\nscrapeAll()\n", body)
}

func TestExtract_RoundTrip(t *testing.T) {
	// Re-inserting the extracted body into the template reproduces the
	// bounded region exactly.
	prefix := "prelude\n"
	region := "START\nwork()\n"
	suffix := "END\ntail\n"
	full := prefix + region + suffix

	body, err := Extract(full, "START", "END")
	require.NoError(t, err)
	assert.Equal(t, full, prefix+body+suffix)
}

func TestExtract_UsesFirstOccurrences(t *testing.T) {
	full := "A one B two A three B"

	body, err := Extract(full, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, "A one ", body)
}

func TestExtract_MissingStartMarker(t *testing.T) {
	_, err := Extract("no markers here", "START", "END")
	require.Error(t, err)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, "START", xerr.Marker)
}

func TestExtract_MissingEndMarker(t *testing.T) {
	_, err := Extract("START body with no end", "START", "END")
	require.Error(t, err)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Equal(t, "END", xerr.Marker)
}

func TestExtract_EndMarkerBeforeStart(t *testing.T) {
	// The end marker only appears before the start marker, so no ordered
	// pair exists.
	_, err := Extract("END then START and nothing else", "START", "END")
	require.Error(t, err)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
}

func TestExtract_EmptySection(t *testing.T) {
	// Start marker begins with the end marker text: the first end match is
	// at the start position itself, a zero-length body.
	_, err := Extract("prefix ENDSTART tail END", "ENDSTART", "END")
	require.Error(t, err)

	var xerr *ExtractionError
	require.True(t, errors.As(err, &xerr))
	assert.Contains(t, xerr.Error(), "empty section")
}

func TestExtract_NoSideEffectsOnInput(t *testing.T) {
	full := strings.Repeat("x", 10) + "START body END"
	before := full
	_, err := Extract(full, "START", "END")
	require.NoError(t, err)
	assert.Equal(t, before, full)
}
