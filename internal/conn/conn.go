package conn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/collisiondb/collisiondb/internal/metrics"
	"github.com/collisiondb/collisiondb/pkg"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/panjf2000/ants/v2"
)

type WsRequest struct {
	Action RequestAction `json:"action"`
	ReqId  int           `json:"__req_id__"` // used in clients
}

var Upgrader = websocket.Upgrader{
	WriteBufferSize: 1024 * 10,
	ReadBufferSize:  1024 * 10,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type ServerOptions struct {
	// Workers bounds the requests executing at once across all connections.
	Workers        int
	RequestTimeout time.Duration
}

type Server struct {
	Service *Service
	options ServerOptions
	pool    *ants.Pool

	locker sync.RWMutex
	conns  pkg.Map[uuid.UUID, *ConnCtx]
}

func NewServer(svc *Service, options ServerOptions) (*Server, error) {
	if options.Workers < 1 {
		options.Workers = 1
	}
	pool, err := ants.NewPool(options.Workers, ants.WithPanicHandler(func(v any) {
		pkg.ErrorLog("request handler panic:", v)
	}))
	if err != nil {
		return nil, err
	}
	return &Server{Service: svc, options: options, pool: pool, conns: pkg.Map[uuid.UUID, *ConnCtx]{}}, nil
}

func (s *Server) GetLocker() *sync.RWMutex { return &s.locker }

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/", s.HandleConnection)
	return mux
}

// Listen serves until ctx is done or the process is interrupted.
func (s *Server) Listen(ctx context.Context, port int) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	hs := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Handler(),
	}

	serve_err := make(chan error, 1)
	go func() {
		err := hs.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			serve_err <- err
		}
	}()

	pkg.InfoLog("CollisionDB listening on port", port)
	select {
	case <-ctx.Done():
	case err := <-serve_err:
		s.Close()
		return err
	}

	pkg.DebugLog("Shutting down...")
	shutdown_ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := hs.Shutdown(shutdown_ctx)
	s.Close()
	return err
}

// Close drops every open connection and stops the worker pool.
func (s *Server) Close() {
	open := pkg.RLockRead(s, s.conns.Values)
	for _, c := range open {
		c.Abort()
	}
	s.pool.ReleaseTimeout(3 * time.Second)
}

func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := Upgrader.Upgrade(w, r, nil)
	if err != nil {
		pkg.ErrorLog(err)
		return
	}

	ctx := NewConnCtx(context.Background(), conn)
	pkg.LockWrap(s, func() { s.conns.Set(ctx.Id, ctx) })
	pkg.InfoLog("New connection established from", r.RemoteAddr)

	defer func() {
		pkg.LockWrap(s, func() { s.conns.Delete(ctx.Id) })
		ctx.Close()
		pkg.InfoLog("Connection closed from", r.RemoteAddr)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				pkg.ErrorLog("unexpected close", err)
			} else {
				pkg.DebugLog("connection closed", err)
			}
			return
		}

		var req WsRequest
		if err := json.Unmarshal(message, &req); err != nil {
			pkg.ErrorLog("parsing request", err)
			if err := ctx.WriteResponse(NewErrorResponse(http.StatusBadRequest, err.Error())); err != nil {
				return
			}
			continue
		}

		ctx.pending.Add(1)
		err = s.pool.Submit(func() {
			defer ctx.pending.Done()
			s.handleRequest(ctx, req, message)
		})
		if err != nil {
			ctx.pending.Done()
			pkg.ErrorLog("submitting request", err)
			res := NewErrorResponse(http.StatusServiceUnavailable, err.Error())
			res.ReqId = req.ReqId
			if err := ctx.WriteResponse(res); err != nil {
				return
			}
		}
	}
}

func (s *Server) handleRequest(conn_ctx *ConnCtx, req WsRequest, message []byte) {
	ctx := conn_ctx.Context()
	if s.options.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.RequestTimeout)
		defer cancel()
	}

	id := uuid.Must(uuid.NewV7())
	pkg.DebugLog("request", id, req.Action, "on connection", conn_ctx.Id)

	res := ActionHandler(ctx, s.Service, req.Action, message)
	res.ReqId = req.ReqId

	pkg.DebugLog("request", id, "finished with status", res.Status)
	if err := conn_ctx.WriteResponse(res); err != nil {
		pkg.ErrorLog("writing response", err)
	}
}
