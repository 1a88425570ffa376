package conn

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/collisiondb/collisiondb/internal/metrics"
)

type RequestAction string

const (
	RequestActionGetCollisions RequestAction = "getCollisions"
	RequestActionGetCollision  RequestAction = "getCollision"
	RequestActionStats         RequestAction = "stats"
)

func (action RequestAction) IsValid() bool {
	switch action {
	case RequestActionGetCollisions, RequestActionGetCollision, RequestActionStats:
		return true
	}
	return false
}

func ActionHandler(ctx context.Context, svc *Service, action RequestAction, raw []byte) Response {
	start := time.Now()

	var res Response
	switch action {
	case RequestActionGetCollisions:
		res = svc.GetCollisions(ctx, raw)
	case RequestActionGetCollision:
		res = svc.GetCollision(ctx, raw)
	case RequestActionStats:
		res = svc.Stats()
	default:
		res = NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("unknown action: %s", action))
	}

	label := string(action)
	if !action.IsValid() {
		label = "unknown"
	}
	metrics.QueriesTotal.WithLabelValues(label, strconv.Itoa(res.Status)).Inc()
	metrics.QueryDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	return res
}
