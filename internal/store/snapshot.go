package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/google/uuid"
	sorted "github.com/tobshub/go-sortedmap"
)

var ErrNotFound = errors.New("Record not found")

// Snapshot is an immutable, ordered view of the loaded records. Scans read
// from the materialized slice; point lookups go through the id index.
type Snapshot struct {
	Version  uuid.UUID
	LoadedAt time.Time

	index   *sorted.SortedMap[uint64, *record.Record]
	ordered []*record.Record
}

func recordsComparisonFunc(a, b *record.Record) bool {
	return a.ID() < b.ID()
}

// NewSnapshot indexes records, which must already carry distinct ids in
// ascending order.
func NewSnapshot(records []*record.Record) (*Snapshot, error) {
	index := sorted.New[uint64, *record.Record](len(records), recordsComparisonFunc)
	for _, r := range records {
		if !index.Insert(r.ID(), r) {
			return nil, fmt.Errorf("Duplicate record id %d", r.ID())
		}
	}

	s := &Snapshot{
		Version:  uuid.New(),
		LoadedAt: time.Now(),
		index:    index,
		ordered:  make([]*record.Record, 0, len(records)),
	}

	if len(records) == 0 {
		return s, nil
	}

	iter_ch, err := index.IterCh()
	if err != nil {
		return nil, err
	}
	// drain fully so the iterator goroutine exits
	for rec := range iter_ch.Records() {
		s.ordered = append(s.ordered, rec.Val)
	}
	return s, nil
}

func (s *Snapshot) Len() int { return len(s.ordered) }

// Get looks up a record by id.
func (s *Snapshot) Get(id uint64) (*record.Record, error) {
	r, ok := s.index.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return r, nil
}

// All returns the records in store order. The slice is shared and must not
// be modified.
func (s *Snapshot) All() []*record.Record { return s.ordered }

// Each calls f for every record in store order until f returns false.
func (s *Snapshot) Each(f func(*record.Record) bool) {
	for _, r := range s.ordered {
		if !f(r) {
			return
		}
	}
}

// Partitions splits the records into at most n contiguous chunks whose
// concatenation is the store order.
func (s *Snapshot) Partitions(n int) [][]*record.Record {
	total := len(s.ordered)
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	if n == 0 {
		return nil
	}

	parts := make([][]*record.Record, 0, n)
	size, rem := total/n, total%n
	start := 0
	for i := 0; i < n; i++ {
		end := start + size
		if i < rem {
			end++
		}
		parts = append(parts, s.ordered[start:end])
		start = end
	}
	return parts
}
