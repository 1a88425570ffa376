package store

import (
	"sync"
	"sync/atomic"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/dustin/go-humanize"
)

// Store holds the current snapshot. Readers take the snapshot once and scan
// it without locks; Replace swaps in a new one.
type Store struct {
	current atomic.Pointer[Snapshot]

	// serializes writers so ids stay unique across reloads
	locker  sync.Mutex
	next_id uint64
}

func New() *Store {
	s := &Store{next_id: 1}
	empty, _ := NewSnapshot(nil)
	s.current.Store(empty)
	return s
}

func (s *Store) Current() *Snapshot { return s.current.Load() }

// Replace stamps fresh ids on records, in their given order, and publishes
// them as the new snapshot. Scans already holding the old snapshot are
// unaffected.
func (s *Store) Replace(records []*record.Record) (*Snapshot, error) {
	s.locker.Lock()
	defer s.locker.Unlock()

	stamped := make([]*record.Record, len(records))
	for i, r := range records {
		stamped[i] = r.WithID(s.next_id + uint64(i))
	}

	snap, err := NewSnapshot(stamped)
	if err != nil {
		return nil, err
	}
	s.next_id += uint64(len(records))
	s.current.Store(snap)

	pkg.InfoLog("loaded", humanize.Comma(int64(snap.Len())), "records; snapshot", snap.Version)
	return snap, nil
}

func (s *Store) Len() int { return s.Current().Len() }

func (s *Store) Get(id uint64) (*record.Record, error) {
	return s.Current().Get(id)
}
