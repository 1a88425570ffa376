package query_test

import (
	"testing"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/store"
	"gotest.tools/assert"
)

type row struct {
	Borough string
	Zip     int64
}

func newRecord(r row) *record.Record {
	b := record.NewBuilder()
	if r.Borough != "" {
		b.MustSet(schema.Borough, record.EnumValue(r.Borough))
	}
	if r.Zip != 0 {
		b.MustSet(schema.ZipCode, record.IntValue(r.Zip))
	}
	return b.Build()
}

func newSnapshot(t *testing.T, rows ...row) *store.Snapshot {
	t.Helper()
	records := make([]*record.Record, len(rows))
	for i, r := range rows {
		records[i] = newRecord(r)
	}
	snap, err := store.New().Replace(records)
	assert.NilError(t, err)
	return snap
}

func rowsOf(records []*record.Record) []row {
	out := make([]row, len(records))
	for i, r := range records {
		out[i] = row{r.Get(schema.Borough).Str(), r.Get(schema.ZipCode).Int()}
	}
	return out
}
