package conn_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	. "github.com/collisiondb/collisiondb/internal/conn"
	"github.com/gorilla/websocket"
	"gotest.tools/assert"
)

func newTestServer(t *testing.T, options ServerOptions) (*Server, *httptest.Server) {
	t.Helper()
	s, err := NewServer(newTestService(t, 8), options)
	assert.NilError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Close()
		ts.Close()
	})
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NilError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, ServerOptions{Workers: 2})

	res, err := http.Get(ts.URL + "/health")
	assert.NilError(t, err)
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	assert.Equal(t, res.StatusCode, http.StatusOK)
	assert.Equal(t, string(body), "ok")
}

func TestMetrics(t *testing.T) {
	_, ts := newTestServer(t, ServerOptions{Workers: 2})
	conn := dial(t, ts)

	assert.NilError(t, conn.WriteJSON(map[string]any{"action": "stats", "__req_id__": 1}))
	var res Response
	assert.NilError(t, conn.ReadJSON(&res))

	m, err := http.Get(ts.URL + "/metrics")
	assert.NilError(t, err)
	defer m.Body.Close()
	body, _ := io.ReadAll(m.Body)
	assert.Assert(t, strings.Contains(string(body), "collisiondb_queries_total"))
}

func TestConnection(t *testing.T) {
	_, ts := newTestServer(t, ServerOptions{Workers: 4, RequestTimeout: time.Second})
	conn := dial(t, ts)

	t.Run("get collisions", func(t *testing.T) {
		err := conn.WriteJSON(map[string]any{
			"action":     RequestActionGetCollisions,
			"__req_id__": 7,
			"conditions": []any{
				cond("BOROUGH", "EQUALS", map[string]any{"str_data": "BROOKLYN"}),
				cond("ZIP_CODE", "EQUALS", map[string]any{"int_data": 11208}),
			},
		})
		assert.NilError(t, err)

		var res struct {
			Response
			Data struct {
				Collision []map[string]any `json:"collision"`
			} `json:"data"`
		}
		assert.NilError(t, conn.ReadJSON(&res))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Equal(t, res.ReqId, 7)
		assert.Equal(t, len(res.Data.Collision), 1)
		assert.Equal(t, res.Data.Collision[0]["zip_code"], 11208.)
	})

	t.Run("invalid query", func(t *testing.T) {
		err := conn.WriteJSON(map[string]any{
			"action":     RequestActionGetCollisions,
			"__req_id__": 8,
			"conditions": []any{cond("ZIP_CODE", "CONTAINS", map[string]any{"int_data": 11208})},
		})
		assert.NilError(t, err)

		var res Response
		assert.NilError(t, conn.ReadJSON(&res))
		assert.Equal(t, res.Status, http.StatusBadRequest)
		assert.Equal(t, res.ReqId, 8)
		assert.Assert(t, res.Data == nil)
	})

	t.Run("unknown action", func(t *testing.T) {
		assert.NilError(t, conn.WriteJSON(map[string]any{"action": "findMany", "__req_id__": 9}))

		var res Response
		assert.NilError(t, conn.ReadJSON(&res))
		assert.Equal(t, res.Status, http.StatusBadRequest)
		assert.Equal(t, res.Message, "unknown action: findMany")
	})

	t.Run("garbage frame", func(t *testing.T) {
		assert.NilError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

		var res Response
		assert.NilError(t, conn.ReadJSON(&res))
		assert.Equal(t, res.Status, http.StatusBadRequest)
	})
}

func TestConcurrentRequests(t *testing.T) {
	_, ts := newTestServer(t, ServerOptions{Workers: 8})
	conn := dial(t, ts)

	const n = 50
	// writes on a websocket.Conn must not be concurrent
	var write_lock sync.Mutex
	var wg sync.WaitGroup
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			borough := "BROOKLYN"
			if i%2 == 0 {
				borough = "QUEENS"
			}
			write_lock.Lock()
			defer write_lock.Unlock()
			conn.WriteJSON(map[string]any{
				"action":     RequestActionGetCollisions,
				"__req_id__": i,
				"conditions": []any{cond("BOROUGH", "EQUALS", map[string]any{"str_data": borough})},
			})
		}()
	}
	wg.Wait()

	seen := map[int]bool{}
	for len(seen) < n {
		var res struct {
			Response
			Data struct {
				Collision []map[string]any `json:"collision"`
			} `json:"data"`
		}
		assert.NilError(t, conn.ReadJSON(&res))
		assert.Equal(t, res.Status, http.StatusOK, res.Message)
		assert.Assert(t, !seen[res.ReqId])
		seen[res.ReqId] = true

		expected := "BROOKLYN"
		if res.ReqId%2 == 0 {
			expected = "QUEENS"
		}
		assert.Equal(t, len(res.Data.Collision), 1)
		assert.Equal(t, res.Data.Collision[0]["borough"], expected)
	}
}

func TestServerClose(t *testing.T) {
	s, ts := newTestServer(t, ServerOptions{Workers: 2})
	conn := dial(t, ts)

	assert.NilError(t, conn.WriteJSON(map[string]any{"action": "stats"}))
	var res Response
	assert.NilError(t, conn.ReadJSON(&res))

	s.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Assert(t, err != nil)
}
