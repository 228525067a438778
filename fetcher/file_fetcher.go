package fetcher

import (
	"fmt"
	"os"
)

// FileFetcher implements the Fetcher interface for a saved listing page
type FileFetcher struct {
	path string
}

// NewFileFetcher creates a FileFetcher reading from the given path. The url
// argument of Fetch is ignored.
func NewFileFetcher(path string) *FileFetcher {
	return &FileFetcher{path: path}
}

// Fetch implements the Fetcher interface
func (ff *FileFetcher) Fetch(_ string) (string, error) {
	data, err := os.ReadFile(ff.path)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML file: %w", err)
	}
	return string(data), nil
}
