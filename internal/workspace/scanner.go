package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Scanner enumerates input artifacts under a workspace root.
type Scanner struct {
	root string

	mu       sync.Mutex
	rawCache []string
}

// NewScanner creates a Scanner for the given workspace root.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// RawCSVFiles returns the CSV files under data/raw, caching the result for
// the instance lifetime. A missing directory yields an empty list, not an
// error; the caller only wants to know whether any inputs exist.
func (s *Scanner) RawCSVFiles() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rawCache != nil {
		return s.rawCache, nil
	}

	entries, err := os.ReadDir(RawDataDir(s.root))
	if os.IsNotExist(err) {
		s.rawCache = []string{}
		return s.rawCache, nil
	}
	if err != nil {
		return nil, err
	}

	files := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			files = append(files, filepath.Join(RawDataDir(s.root), e.Name()))
		}
	}
	s.rawCache = files
	return files, nil
}

// HasRawData reports whether any raw CSV input exists.
func (s *Scanner) HasRawData() bool {
	files, err := s.RawCSVFiles()
	return err == nil && len(files) > 0
}
