package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"torgi-scraper/models"
)

// lotRecord is the snapshot shape consumed downstream. The price is exported
// as a float, which is lossy but expected by the consumers; the exact value
// lives only inside the program.
type lotRecord struct {
	Code  string  `json:"code"`
	Title string  `json:"title"`
	Price float64 `json:"price"`
	URL   *string `json:"url"`
}

// JSONWriter writes lots to a JSON snapshot file
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a new JSONWriter instance
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write serializes the lots in their current order. Lots without a link get a
// null url.
func (w *JSONWriter) Write(lots []models.Lot) error {
	records := make([]lotRecord, 0, len(lots))
	for _, lot := range lots {
		rec := lotRecord{
			Code:  lot.Code,
			Title: lot.Title,
			Price: lot.Price.InexactFloat64(),
		}
		if lot.URL != "" {
			u := lot.URL
			rec.URL = &u
		}
		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal lots: %w", err)
	}

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(w.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	return nil
}
