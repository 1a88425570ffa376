// Package client is the Go client for a CollisionDB server.
//
// Usage:
//
//	c, err := client.Dial(ctx, "ws://localhost:50051")
//	...
//	collisions, err := c.GetCollisions(ctx,
//		client.Where(client.Borough, client.Equals, "BROOKLYN"),
//		client.Where(client.ZipCode, client.Equals, 11208),
//	)
//
// A Client may be used from many goroutines; concurrent calls share the
// connection and are matched to their responses by request id.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/collisiondb/collisiondb/pkg"
	ws "github.com/gorilla/websocket"
)

var ErrClosed = errors.New("client closed")

type Response struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	ReqId   int             `json:"__req_id__"`
}

// ResponseError is a non-2xx response from the server.
type ResponseError struct {
	Status  int
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

type Client struct {
	Url  string
	conn *ws.Conn

	write_lock sync.Mutex
	locker     sync.RWMutex
	pending    pkg.Map[int, chan Response]
	next_id    atomic.Int64

	done chan struct{}
	err  error
}

func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := ws.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	c := &Client{
		Url:     url,
		conn:    conn,
		pending: pkg.Map[int, chan Response]{},
		done:    make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) GetLocker() *sync.RWMutex { return &c.locker }

func (c *Client) readLoop() {
	defer close(c.done)
	for {
		var res Response
		if err := c.conn.ReadJSON(&res); err != nil {
			var close_err *ws.CloseError
			if errors.As(err, &close_err) && close_err.Code == ws.CloseNormalClosure {
				err = ErrClosed
			}
			pkg.LockWrap(c, func() { c.err = err })
			return
		}

		var ch chan Response
		var ok bool
		pkg.LockWrap(c, func() { ch, ok = c.pending.Pop(res.ReqId) })
		if !ok {
			pkg.WarnLog("client: response for unknown request", res.ReqId)
			continue
		}
		ch <- res
	}
}

func (c *Client) call(ctx context.Context, action string, fields map[string]any) (Response, error) {
	id := int(c.next_id.Add(1))
	ch := make(chan Response, 1)

	var closed_err error
	pkg.LockWrap(c, func() {
		if c.err != nil {
			closed_err = c.err
			return
		}
		c.pending.Set(id, ch)
	})
	if closed_err != nil {
		return Response{}, closed_err
	}
	defer pkg.LockWrap(c, func() { c.pending.Delete(id) })

	req := map[string]any{"action": action, "__req_id__": id}
	for k, v := range fields {
		req[k] = v
	}

	c.write_lock.Lock()
	err := c.conn.WriteJSON(req)
	c.write_lock.Unlock()
	if err != nil {
		return Response{}, err
	}

	select {
	case res := <-ch:
		if res.Status < 200 || res.Status >= 300 {
			return res, &ResponseError{Status: res.Status, Message: res.Message}
		}
		return res, nil
	case <-c.done:
		return Response{}, pkg.RLockRead(c, func() error { return c.err })
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

func (c *Client) GetCollisions(ctx context.Context, conditions ...Condition) ([]Collision, error) {
	if conditions == nil {
		conditions = []Condition{}
	}
	res, err := c.call(ctx, "getCollisions", map[string]any{"conditions": conditions})
	if err != nil {
		return nil, err
	}

	var data struct {
		Collision []Collision `json:"collision"`
	}
	if err := json.Unmarshal(res.Data, &data); err != nil {
		return nil, err
	}
	return data.Collision, nil
}

func (c *Client) GetCollision(ctx context.Context, id uint64) (Collision, error) {
	var collision Collision
	res, err := c.call(ctx, "getCollision", map[string]any{"id": id})
	if err != nil {
		return collision, err
	}
	err = json.Unmarshal(res.Data, &collision)
	return collision, err
}

func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	res, err := c.call(ctx, "stats", nil)
	if err != nil {
		return stats, err
	}
	err = json.Unmarshal(res.Data, &stats)
	return stats, err
}

func (c *Client) Close() error {
	c.write_lock.Lock()
	err := c.conn.WriteMessage(ws.CloseMessage,
		ws.FormatCloseMessage(ws.CloseNormalClosure, "Disconnect"))
	c.write_lock.Unlock()
	if err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
