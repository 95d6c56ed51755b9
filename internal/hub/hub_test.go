package hub

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedEvent struct {
	Type string `json:"type"`
	N    int    `json:"n"`
}

func (e namedEvent) EventName() string { return e.Type }

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	h := New(nil).WithKeepalive(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return h, srv
}

// readUntilBlank reads one SSE block
func readUntilBlank(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			return strings.Join(lines, "\n")
		}
		lines = append(lines, line)
	}
}

func TestHubBroadcast(t *testing.T) {
	h, srv := startHub(t)

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)
	assert.Equal(t, ": connected", readUntilBlank(t, body))

	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	h.Broadcast(namedEvent{Type: "state_changed", N: 7})
	assert.Equal(t, "event: state_changed\ndata: {\"type\":\"state_changed\",\"n\":7}", readUntilBlank(t, body))

	h.Broadcast(map[string]int{"n": 1})
	assert.Equal(t, `data: {"n":1}`, readUntilBlank(t, body))
}

func TestHubClientDisconnect(t *testing.T) {
	h, srv := startHub(t)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	resp.Body.Close()
	assert.Eventually(t, func() bool { return h.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubKeepalive(t *testing.T) {
	h := New(nil).WithKeepalive(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := bufio.NewReader(resp.Body)
	assert.Equal(t, ": connected", readUntilBlank(t, body))
	assert.Equal(t, ": keepalive", readUntilBlank(t, body))
}

func TestHubStopped(t *testing.T) {
	h := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.Run(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
