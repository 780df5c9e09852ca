// Package datafile reads the raw CSV exports from local disk and writes the
// final report. It is the I/O boundary of the pipeline: a missing source
// degrades to zero rows with a diagnostic, and a malformed line never takes
// down the rest of its file.
package datafile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/couchcryptid/urbanflow/internal/domain"
)

// TrafficReader reads the DOT automated traffic volume counts CSV.
// It implements pipeline.TrafficSource.
type TrafficReader struct {
	path   string
	logger *slog.Logger
}

// NewTrafficReader creates a reader for the traffic counts file at path.
func NewTrafficReader(path string, logger *slog.Logger) *TrafficReader {
	return &TrafficReader{path: path, logger: logger}
}

// ReadRows loads every data row from the traffic file, header-mapped but
// unparsed. A missing file yields zero rows and a warning rather than an
// error, so the pipeline still runs end to end.
func (r *TrafficReader) ReadRows(ctx context.Context) ([]domain.TrafficRow, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("traffic file not found", "path", r.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open traffic file: %w", err)
	}
	defer f.Close()

	header, rows, err := readCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read traffic file %s: %w", r.path, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cols := columnIndex(header)
	out := make([]domain.TrafficRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.TrafficRow{
			Borough: field(row, cols, "Boro"),
			Year:    field(row, cols, "Yr"),
			Month:   field(row, cols, "M"),
			Day:     field(row, cols, "D"),
			Volume:  volumeField(row, cols),
		})
	}
	return out, nil
}

// CountRows counts the file's data rows with no restrictions, for the
// rowcount diagnostic.
func (r *TrafficReader) CountRows(_ context.Context) (int, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("traffic file not found", "path", r.path)
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("open traffic file: %w", err)
	}
	defer f.Close()

	_, rows, err := readCSV(f)
	if err != nil {
		return 0, fmt.Errorf("read traffic file %s: %w", r.path, err)
	}
	return len(rows), nil
}

// volumeField reads the "Vol" column, falling back to the "Volume" name used
// by older exports of the same dataset.
func volumeField(row []string, cols map[string]int) string {
	if _, ok := cols["Vol"]; ok {
		return field(row, cols, "Vol")
	}
	return field(row, cols, "Volume")
}

// readCSV reads a header-led CSV into (header, data rows). Lines with an
// inconsistent field count are kept; unreadable lines are dropped
// individually.
func readCSV(f io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return header, rows, nil
		}
		if err != nil {
			// One mangled line, not a broken file. csv.Reader resumes
			// on the next line.
			continue
		}
		rows = append(rows, row)
	}
}

// columnIndex maps header names to positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

// field safely extracts a named column from a row, empty when absent.
func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
