package query

import (
	"context"
	"runtime"

	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/store"
	"golang.org/x/sync/errgroup"
)

// records scanned between cancellation checks
const checkInterval = 1024

// Executor scans snapshots for records matching a plan.
type Executor struct {
	// Parallelism is the maximum number of partitions scanned at once.
	Parallelism int
	// MinPartitionSize keeps small snapshots from being split.
	MinPartitionSize int
}

func NewExecutor(parallelism int) *Executor {
	if parallelism < 1 {
		parallelism = runtime.GOMAXPROCS(0)
	}
	return &Executor{Parallelism: parallelism, MinPartitionSize: 4 * checkInterval}
}

var defaultExecutor = NewExecutor(0)

// Execute runs plan over snap with the default executor.
func Execute(ctx context.Context, plan *Plan, snap *store.Snapshot) ([]*record.Record, error) {
	return defaultExecutor.Execute(ctx, plan, snap)
}

// Execute returns the matching records in store order. On any error no
// partial result is returned.
func (e *Executor) Execute(ctx context.Context, plan *Plan, snap *store.Snapshot) ([]*record.Record, error) {
	n := e.Parallelism
	if e.MinPartitionSize > 0 {
		n = min(n, snap.Len()/e.MinPartitionSize)
	}
	if n <= 1 {
		return scan(ctx, plan, snap.All())
	}

	parts := snap.Partitions(n)
	results := make([][]*record.Record, len(parts))

	g, ctx := errgroup.WithContext(ctx)
	for i, part := range parts {
		g.Go(func() error {
			found, err := scan(ctx, plan, part)
			results[i] = found
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matched := make([]*record.Record, 0, total)
	for _, r := range results {
		matched = append(matched, r...)
	}
	return matched, nil
}

func scan(ctx context.Context, plan *Plan, records []*record.Record) ([]*record.Record, error) {
	found := []*record.Record{}
	for i, r := range records {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		ok, err := plan.Match(r)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, r)
		}
	}
	return found, nil
}
