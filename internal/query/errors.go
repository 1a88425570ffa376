package query

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/collisiondb/collisiondb/internal/store"
)

var (
	ErrInvalidQuery        = errors.New("Invalid query")
	ErrTypeMismatch        = errors.New("Type mismatch")
	ErrUnsupportedOperator = errors.New("Unsupported operator")
)

// QueryError is an error with the status reported to clients.
type QueryError struct {
	msg    string
	status int
	err    error
}

func NewQueryError(status int, msg string) *QueryError {
	return &QueryError{msg: msg, status: status}
}

func (e QueryError) Error() string { return e.msg }
func (e QueryError) Status() int   { return e.status }
func (e QueryError) Unwrap() error { return e.err }

func invalidQuery(format string, args ...any) *QueryError {
	return &QueryError{
		msg:    fmt.Sprintf(format, args...),
		status: http.StatusBadRequest,
		err:    ErrInvalidQuery,
	}
}

// AsQueryError maps any error from planning or execution to a QueryError.
func AsQueryError(err error) *QueryError {
	var query_error *QueryError
	if errors.As(err, &query_error) {
		return query_error
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidQuery):
		status = http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusRequestTimeout
	}
	return &QueryError{msg: err.Error(), status: status, err: err}
}
