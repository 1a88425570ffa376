package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/dustin/go-humanize"
)

// CSVLoader reads the NYC collision export: a header line followed by
// rows of exactly FieldCount columns in schema order.
type CSVLoader struct {
	Path      string
	Partition Partition
}

func NewCSVLoader(path string, partition Partition) *CSVLoader {
	return &CSVLoader{Path: path, Partition: partition}
}

func (l *CSVLoader) Source() string { return l.Path }

func (l *CSVLoader) Load(ctx context.Context) ([]*record.Record, error) {
	if err := l.Partition.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f, l.Partition)
}

// ReadCSV parses collision rows from r. Rows with the wrong column count
// are skipped.
func ReadCSV(ctx context.Context, r io.Reader, partition Partition) ([]*record.Record, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return []*record.Record{}, nil
		}
		return nil, fmt.Errorf("parse csv header: %w", err)
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	start, end := partition.Bounds(len(rows))
	records := make([]*record.Record, 0, end-start)
	skipped := 0
	for i := start; i < end; i++ {
		if i%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row := rows[i]
		if len(row) != schema.FieldCount {
			// header is line 1
			pkg.WarnLog("skipping csv line", i+2, "with", len(row), "columns")
			skipped++
			continue
		}
		records = append(records, buildRecord(row, i+2))
	}

	pkg.DebugLog("parsed", humanize.Comma(int64(len(records))), "csv rows, skipped", skipped)
	return records, nil
}

func buildRecord(row []string, line int) *record.Record {
	b := record.NewBuilder()
	for _, field := range schema.All() {
		v, err := ParseCell(field, row[field])
		if err != nil {
			pkg.WarnLog("line", line, err)
			continue
		}
		b.Set(field, v)
	}
	return b.Build()
}
