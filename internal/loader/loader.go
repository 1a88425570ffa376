package loader

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/types"
)

// Loader produces the records of one data source in source order. Records
// carry no id; the store assigns them.
type Loader interface {
	Load(ctx context.Context) ([]*record.Record, error)
	Source() string
}

// Partition selects the Rank-th of Total contiguous slices of the source
// rows. The zero value selects everything.
type Partition struct {
	Rank  int `mapstructure:"rank"`
	Total int `mapstructure:"total"`
}

func (p Partition) Validate() error {
	if p.Total == 0 && p.Rank == 0 {
		return nil
	}
	if p.Total < 1 || p.Rank < 0 || p.Rank >= p.Total {
		return fmt.Errorf("Invalid partition %d/%d", p.Rank, p.Total)
	}
	return nil
}

// Bounds returns the half-open row range [start, end) for n rows.
func (p Partition) Bounds(n int) (int, int) {
	if p.Total <= 1 {
		return 0, n
	}
	return p.Rank * n / p.Total, (p.Rank + 1) * n / p.Total
}

var date_layouts = []string{"01/02/2006", "2006-01-02", "2006-01-02T15:04:05.000"}

func normalizeDate(raw string) (string, error) {
	for _, layout := range date_layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("Invalid date %q", raw)
}

func normalizeTime(raw string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("Invalid time %q", raw)
}

// ParseCell converts one raw cell into the field's typed value. Blank cells
// are absent; cells that fail to parse are absent and reported via err.
// Enum cells are stored as the member they name, ignoring case.
func ParseCell(field schema.Field, raw string) (record.Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return record.Value{}, nil
	}

	switch field {
	case schema.CrashDate:
		v, err := normalizeDate(raw)
		if err != nil {
			return record.Value{}, err
		}
		return record.StringValue(v), nil
	case schema.CrashTime:
		v, err := normalizeTime(raw)
		if err != nil {
			return record.Value{}, err
		}
		return record.StringValue(v), nil
	}

	switch field.Kind() {
	case types.FieldKindInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return record.Value{}, fmt.Errorf("Invalid integer for %s: %q", field, raw)
		}
		return record.IntValue(v), nil
	case types.FieldKindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		// NaN and Inf parse but cannot be sent as JSON
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return record.Value{}, fmt.Errorf("Invalid float for %s: %q", field, raw)
		}
		return record.FloatValue(v), nil
	case types.FieldKindEnum:
		member, ok := field.CanonicalEnumMember(raw)
		if !ok {
			return record.Value{}, fmt.Errorf("Invalid %s value %q", field, raw)
		}
		return record.EnumValue(member), nil
	default:
		return record.StringValue(raw), nil
	}
}
