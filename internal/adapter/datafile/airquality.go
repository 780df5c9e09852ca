package datafile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/urbanflow/internal/domain"
)

// EPA download tool naming: "ad_viz_plotval_data (1).csv" and so on.
const (
	airFilePrefix = "ad_viz_plotval_data ("
	airFileSuffix = ".csv"
)

// AirQualityReader reads every EPA daily PM2.5 export discovered in a
// folder. It implements pipeline.AirQualitySource.
type AirQualityReader struct {
	dir    string
	logger *slog.Logger
}

// NewAirQualityReader creates a reader over the air-quality export folder.
func NewAirQualityReader(dir string, logger *slog.Logger) *AirQualityReader {
	return &AirQualityReader{dir: dir, logger: logger}
}

// ReadRows loads the data rows of every discovered export file into one
// slice. Files are independent: one unreadable file is logged and skipped,
// the rest still contribute rows. A missing folder yields zero rows.
func (r *AirQualityReader) ReadRows(ctx context.Context) ([]domain.AirQualityRow, error) {
	files, err := r.discover()
	if err != nil {
		return nil, err
	}

	var out []domain.AirQualityRow
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rows, err := readAirFile(path)
		if err != nil {
			r.logger.Error("air quality file unreadable, skipping", "path", path, "error", err)
			continue
		}
		r.logger.Debug("air quality file read", "path", path, "rows", len(rows))
		out = append(out, rows...)
	}
	return out, nil
}

// CountRows counts data rows across every discovered export file with no
// restrictions, for the rowcount diagnostic.
func (r *AirQualityReader) CountRows(_ context.Context) (int, error) {
	files, err := r.discover()
	if err != nil {
		return 0, err
	}

	total := 0
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			r.logger.Error("air quality file unreadable, skipping", "path", path, "error", err)
			continue
		}
		_, rows, err := readCSV(f)
		f.Close()
		if err != nil {
			r.logger.Error("air quality file unreadable, skipping", "path", path, "error", err)
			continue
		}
		total += len(rows)
	}
	return total, nil
}

// discover lists the export files in the folder, sorted by name. Only files
// matching the EPA download tool's naming pattern are picked up.
func (r *AirQualityReader) discover() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("air quality folder not found", "dir", r.dir)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list air quality folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, airFilePrefix) || !strings.HasSuffix(name, airFileSuffix) {
			continue
		}
		files = append(files, filepath.Join(r.dir, name))
	}
	return files, nil
}

func readAirFile(path string) ([]domain.AirQualityRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, rows, err := readCSV(f)
	if err != nil {
		return nil, err
	}

	cols := columnIndex(header)
	out := make([]domain.AirQualityRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.AirQualityRow{
			County: field(row, cols, "County"),
			Date:   field(row, cols, "Date"),
			PM25:   field(row, cols, "Daily Mean PM2.5 Concentration"),
		})
	}
	return out, nil
}
