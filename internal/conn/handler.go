package conn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/collisiondb/collisiondb/internal/metrics"
	"github.com/collisiondb/collisiondb/internal/query"
	"github.com/collisiondb/collisiondb/internal/record"
	"github.com/collisiondb/collisiondb/internal/store"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/google/uuid"
)

type Response struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	// don't manually set this. it comes from the client
	ReqId int `json:"__req_id__"`
}

func NewErrorResponse(status int, err string) Response {
	return Response{Message: err, Status: status}
}

func NewResponse(status int, message string, data any) Response {
	return Response{Data: data, Message: message, Status: status}
}

func queryErrorResponse(err error) Response {
	query_error := query.AsQueryError(err)
	if query_error.Status() >= http.StatusInternalServerError {
		pkg.ErrorLog(query_error)
	}
	return NewErrorResponse(query_error.Status(), query_error.Error())
}

type ServiceOptions struct {
	Parallelism int
	// CacheSize of 0 disables result caching.
	CacheSize int
}

// Service answers collision queries against the store's current snapshot.
// It keeps no per-call state; any number of calls may run at once.
type Service struct {
	store    *store.Store
	executor *query.Executor
	cache    *ResultCache
}

func NewService(s *store.Store, opts ServiceOptions) (*Service, error) {
	svc := &Service{store: s, executor: query.NewExecutor(opts.Parallelism)}
	if opts.CacheSize > 0 {
		cache, err := NewResultCache(opts.CacheSize)
		if err != nil {
			return nil, err
		}
		svc.cache = cache
	}
	return svc, nil
}

func (svc *Service) Store() *store.Store { return svc.store }

// Collisions validates req, then scans one snapshot. Validation failures
// never touch the store.
func (svc *Service) Collisions(ctx context.Context, req query.Request) ([]*record.Record, error) {
	plan, err := query.NewPlan(req)
	if err != nil {
		return nil, err
	}

	snap := svc.store.Current()
	if svc.cache != nil {
		if res, ok := svc.cache.Get(snap, plan.Key()); ok {
			metrics.CacheHits.Inc()
			return res, nil
		}
	}

	res, err := svc.executor.Execute(ctx, plan, snap)
	if err != nil {
		return nil, err
	}

	if svc.cache != nil {
		svc.cache.Add(snap, plan.Key(), res)
	}
	return res, nil
}

type GetCollisionsRequest struct {
	Conditions []query.Condition `json:"conditions"`
}

type CollisionsResult struct {
	Collision []*record.Record `json:"collision"`
}

func (svc *Service) GetCollisions(ctx context.Context, raw []byte) Response {
	if err := validateShape(getCollisionsSchema, raw); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	var req GetCollisionsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	res, err := svc.Collisions(ctx, query.NewRequest(req.Conditions...))
	if err != nil {
		return queryErrorResponse(err)
	}

	metrics.MatchedRecords.Observe(float64(len(res)))
	return NewResponse(
		http.StatusOK,
		fmt.Sprintf("Found %d collisions", len(res)),
		CollisionsResult{Collision: res},
	)
}

type GetCollisionRequest struct {
	Id uint64 `json:"id"`
}

func (svc *Service) GetCollision(ctx context.Context, raw []byte) Response {
	if err := validateShape(getCollisionSchema, raw); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	var req GetCollisionRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	rec, err := svc.store.Get(req.Id)
	if err != nil {
		return queryErrorResponse(err)
	}
	return NewResponse(http.StatusOK, "Found collision", rec)
}

type StatsResult struct {
	Records      int       `json:"records"`
	Version      uuid.UUID `json:"version"`
	LoadedAt     time.Time `json:"loaded_at"`
	CacheEntries int       `json:"cache_entries"`
}

func (svc *Service) Stats() Response {
	snap := svc.store.Current()
	stats := StatsResult{Records: snap.Len(), Version: snap.Version, LoadedAt: snap.LoadedAt}
	if svc.cache != nil {
		stats.CacheEntries = svc.cache.Len()
	}
	return NewResponse(http.StatusOK, "Collision store stats", stats)
}
