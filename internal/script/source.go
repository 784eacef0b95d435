package script

import (
	"fmt"
	"os"

	"github.com/MrViincciLeRoy/stunning-waffle/internal/extract"
)

// Source holds the full text of the source artifact containing every phase
// body. It is read exactly once per run; an unreadable artifact is fatal
// before any phase executes.
type Source struct {
	path string
	text string
}

// LoadSource reads the artifact at path.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source artifact: %w", err)
	}
	return &Source{path: path, text: string(data)}, nil
}

// Path returns the artifact's filesystem path.
func (s *Source) Path() string { return s.path }

// Section slices the body delimited by the marker pair.
func (s *Source) Section(startMarker, endMarker string) (string, error) {
	return extract.Extract(s.text, startMarker, endMarker)
}
