package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Esubaalew/2merkato/internal/domain"
)

// WriteCSV writes the header row followed by one row per record.
func WriteCSV(w io.Writer, records []domain.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(domain.RecordHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, record := range records {
		if err := cw.Write(record.Values()); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteCSVFile creates (or truncates) path and writes the records to it.
func WriteCSVFile(path string, records []domain.Record) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
