package query_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/collisiondb/collisiondb/internal/query"
	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/schema"
	"github.com/collisiondb/collisiondb/internal/store"
	"github.com/collisiondb/collisiondb/internal/types"
	"gotest.tools/assert"
)

func mustPlan(t *testing.T, conditions ...Condition) *Plan {
	t.Helper()
	plan, err := NewPlan(NewRequest(conditions...))
	assert.NilError(t, err)
	return plan
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	snap := newSnapshot(t, row{"BROOKLYN", 11208}, row{"QUEENS", 11101})

	brooklyn := Where(schema.Borough, types.OperatorEquals, StringLiteral("BROOKLYN"))
	zip := Where(schema.ZipCode, types.OperatorEquals, IntLiteral(11208))

	t.Run("match", func(t *testing.T) {
		res, err := Execute(ctx, mustPlan(t, brooklyn, zip), snap)
		assert.NilError(t, err)
		assert.DeepEqual(t, rowsOf(res), []row{{"BROOKLYN", 11208}})
	})

	t.Run("no match", func(t *testing.T) {
		res, err := Execute(ctx, mustPlan(t, brooklyn, Where(schema.ZipCode, types.OperatorEquals, IntLiteral(99999))), snap)
		assert.NilError(t, err)
		assert.Equal(t, len(res), 0)
	})

	t.Run("empty request returns every record in order", func(t *testing.T) {
		res, err := Execute(ctx, mustPlan(t), snap)
		assert.NilError(t, err)
		assert.DeepEqual(t, rowsOf(res), []row{{"BROOKLYN", 11208}, {"QUEENS", 11101}})
	})

	t.Run("invalid plan", func(t *testing.T) {
		_, err := NewPlan(NewRequest(brooklyn, Where(schema.ZipCode, types.OperatorContains, IntLiteral(11208))))
		assert.Assert(t, errors.Is(err, ErrInvalidQuery))
	})

	t.Run("conditions commute", func(t *testing.T) {
		a, err := Execute(ctx, mustPlan(t, brooklyn, zip), snap)
		assert.NilError(t, err)
		b, err := Execute(ctx, mustPlan(t, zip, brooklyn), snap)
		assert.NilError(t, err)
		assert.DeepEqual(t, rowsOf(a), rowsOf(b))
	})

	t.Run("empty store", func(t *testing.T) {
		res, err := Execute(ctx, mustPlan(t, brooklyn), store.New().Current())
		assert.NilError(t, err)
		assert.Equal(t, len(res), 0)
	})
}

func newLargeSnapshot(t *testing.T, n int) *store.Snapshot {
	t.Helper()
	boroughs := []string{"BRONX", "BROOKLYN", "MANHATTAN", "QUEENS", "STATEN ISLAND"}
	records := make([]*record.Record, n)
	for i := range records {
		b := record.NewBuilder().
			MustSet(schema.ZipCode, record.IntValue(int64(10000+i%500))).
			MustSet(schema.CollisionId, record.IntValue(int64(i)))
		if i%7 != 0 {
			b.MustSet(schema.Borough, record.EnumValue(boroughs[i%len(boroughs)]))
		}
		records[i] = b.Build()
	}
	snap, err := store.New().Replace(records)
	assert.NilError(t, err)
	return snap
}

func collisionIds(records []*record.Record) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.Get(schema.CollisionId).Int()
	}
	return ids
}

func TestExecuteParallel(t *testing.T) {
	ctx := context.Background()
	snap := newLargeSnapshot(t, 50_000)
	plan := mustPlan(t,
		Where(schema.Borough, types.OperatorEquals, StringLiteral("queens")).IgnoreCase(),
		Where(schema.ZipCode, types.OperatorLessThan, IntLiteral(10250)),
	)

	sequential := &Executor{Parallelism: 1}
	expected, err := sequential.Execute(ctx, plan, snap)
	assert.NilError(t, err)
	assert.Assert(t, len(expected) > 0)

	for _, n := range []int{2, 3, 8, 64} {
		t.Run(fmt.Sprintf("parallelism %d", n), func(t *testing.T) {
			e := &Executor{Parallelism: n, MinPartitionSize: 100}
			got, err := e.Execute(ctx, plan, snap)
			assert.NilError(t, err)
			assert.DeepEqual(t, collisionIds(got), collisionIds(expected))
		})
	}

	t.Run("deterministic", func(t *testing.T) {
		e := NewExecutor(4)
		a, _ := e.Execute(ctx, plan, snap)
		b, _ := e.Execute(ctx, plan, snap)
		assert.DeepEqual(t, collisionIds(a), collisionIds(b))
	})

	t.Run("every result matches", func(t *testing.T) {
		for _, r := range expected {
			ok, err := plan.Match(r)
			assert.NilError(t, err)
			assert.Assert(t, ok)
		}
	})

	t.Run("not is the complement", func(t *testing.T) {
		c := Where(schema.Borough, types.OperatorEquals, StringLiteral("BRONX"))
		in, _ := NewExecutor(4).Execute(ctx, mustPlan(t, c), snap)
		out, _ := NewExecutor(4).Execute(ctx, mustPlan(t, c.Negate()), snap)
		assert.Equal(t, len(in)+len(out), snap.Len())
	})
}

func TestExecuteCancelled(t *testing.T) {
	snap := newLargeSnapshot(t, 10_000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, e := range []*Executor{{Parallelism: 1}, {Parallelism: 4, MinPartitionSize: 100}} {
		res, err := e.Execute(ctx, mustPlan(t), snap)
		assert.Assert(t, errors.Is(err, context.Canceled))
		assert.Assert(t, res == nil)
		assert.Equal(t, AsQueryError(err).Status(), 408)
	}
}

func TestPlanKey(t *testing.T) {
	a := mustPlan(t, Where(schema.Borough, types.OperatorEquals, StringLiteral("BROOKLYN")))
	b := mustPlan(t, Where(schema.Borough, types.OperatorEquals, StringLiteral("BROOKLYN")))
	c := mustPlan(t, Where(schema.Borough, types.OperatorEquals, StringLiteral("BROOKLYN")).Negate())
	d := mustPlan(t, Where(schema.Borough, types.OperatorEquals, StringLiteral("brooklyn")).IgnoreCase())

	assert.Equal(t, a.Key(), b.Key())
	assert.Assert(t, a.Key() != c.Key())
	assert.Assert(t, a.Key() != d.Key())
	assert.Equal(t, mustPlan(t).Key(), "")
}
