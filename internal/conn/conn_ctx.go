package conn

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ConnCtx is the state of one client connection. Requests on a connection
// run concurrently; writes to it are serialized.
type ConnCtx struct {
	Id     uuid.UUID
	conn   *websocket.Conn
	locker sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	// in-flight requests
	pending sync.WaitGroup
}

func NewConnCtx(parent context.Context, c *websocket.Conn) *ConnCtx {
	ctx, cancel := context.WithCancel(parent)
	return &ConnCtx{Id: uuid.New(), conn: c, ctx: ctx, cancel: cancel}
}

func (ctx *ConnCtx) Context() context.Context { return ctx.ctx }

func (ctx *ConnCtx) WriteResponse(r Response) error {
	ctx.locker.Lock()
	defer ctx.locker.Unlock()
	return ctx.conn.WriteJSON(r)
}

// Close cancels in-flight requests, waits for them and closes the socket.
func (ctx *ConnCtx) Close() error {
	ctx.cancel()
	ctx.pending.Wait()
	return ctx.conn.Close()
}

// Abort cancels in-flight requests and closes the socket without waiting,
// which ends the connection's read loop.
func (ctx *ConnCtx) Abort() error {
	ctx.cancel()
	return ctx.conn.Close()
}
