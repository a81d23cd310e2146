package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/crescent-arcade/internal/config"
	"github.com/vovakirdan/crescent-arcade/internal/core"
	"github.com/vovakirdan/crescent-arcade/internal/registry"
	"github.com/vovakirdan/crescent-arcade/internal/storage"
)

// echoGame shows the last pressed action and counts host calls.
type echoGame struct {
	mu       sync.Mutex
	last     core.Action
	clicks   int
	steps    int
	disposed chan struct{}
	once     sync.Once
}

func (g *echoGame) ID() string          { return "echo" }
func (g *echoGame) Title() string       { return "Echo" }
func (g *echoGame) Info() registry.Info { return registry.Info{Title: "Echo", Description: "echoes input"} }
func (g *echoGame) Mount(core.RuntimeConfig) {}

func (g *echoGame) Step(in core.InputFrame) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.steps++
	for _, a := range in.Ordered() {
		g.last = a
	}
	if in.Pointer != nil {
		g.clicks++
	}
	return core.StepResult{State: g.State()}
}

func (g *echoGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, g.last.String())
}

func (g *echoGame) State() core.GameState {
	return core.GameState{Score: g.clicks}
}

func (g *echoGame) Dispose() {
	g.once.Do(func() { close(g.disposed) })
}

var (
	echoMu   sync.Mutex
	lastEcho *echoGame
)

func init() {
	registry.Register("echo", func() registry.Game {
		g := &echoGame{disposed: make(chan struct{})}
		echoMu.Lock()
		lastEcho = g
		echoMu.Unlock()
		return g
	})
}

type memorySaver struct {
	mu    sync.Mutex
	saved []storage.Feedback
}

func (s *memorySaver) SaveFeedback(f storage.Feedback) (storage.Feedback, error) {
	if err := f.Normalize(); err != nil {
		return storage.Feedback{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f.ID = int64(len(s.saved) + 1)
	f.Ref = "ref"
	s.saved = append(s.saved, f)
	return f, nil
}

func newTestServer(t *testing.T, saver FeedbackSaver) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard)
	app := config.AppConfig{TickRate: 100, Seed: 1}
	srv, err := NewServer(app, saver, logger)
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestListGames(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/api/games", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var games []registry.GameInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	assert.Contains(t, ids, "echo")
	assert.Contains(t, ids, "puzzle")
}

func TestGetGame(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := do(t, srv, http.MethodGet, "/api/games/echo", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var info registry.GameInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "Echo", info.Title)
	assert.Equal(t, "echoes input", info.Description)

	rec = do(t, srv, http.MethodGet, "/api/games/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedback(t *testing.T) {
	saver := &memorySaver{}
	srv := newTestServer(t, saver)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"valid", `{"kind":"bug","message":"the snake ate itself","email":"a@b.co"}`, http.StatusCreated},
		{"default kind", `{"message":"nice"}`, http.StatusCreated},
		{"empty message", `{"kind":"bug","message":"   "}`, http.StatusBadRequest},
		{"bad kind", `{"kind":"rant","message":"hi"}`, http.StatusBadRequest},
		{"bad email", `{"message":"hi","email":"not-an-email"}`, http.StatusBadRequest},
		{"malformed", `{"message":`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/feedback", tc.body)
			assert.Equal(t, tc.status, rec.Code, rec.Body.String())
		})
	}

	require.Len(t, saver.saved, 2)
	assert.Equal(t, "web", saver.saved[0].Source)
	assert.Equal(t, storage.KindGeneral, saver.saved[1].Kind)
}

func TestFeedbackValidationMessages(t *testing.T) {
	srv := newTestServer(t, &memorySaver{})

	tests := []struct {
		name     string
		body     string
		expected error
	}{
		{"missing message", `{"kind":"bug"}`, storage.ErrEmptyMessage},
		{"too long", `{"message":"` + strings.Repeat("x", storage.MaxMessageLen+1) + `"}`, storage.ErrMessageTooLong},
		{"bad kind", `{"kind":"rant","message":"hi"}`, storage.ErrInvalidKind},
		{"bad email", `{"message":"hi","email":"ann@"}`, storage.ErrInvalidEmail},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/feedback", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.expected.Error(), resp.Error)
		})
	}
}

func TestFeedbackWithoutStorage(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodPost, "/api/feedback", `{"message":"hi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndIndex(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var health struct {
		Status   string `json:"status"`
		Sessions int64  `json:"sessions"`
		Storage  bool   `json:"storage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Zero(t, health.Sessions)
	assert.False(t, health.Storage)

	rec = do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Crescent Arcade")
}

func TestStatsvizMounted(t *testing.T) {
	srv := newTestServer(t, nil)
	rec := do(t, srv, http.MethodGet, "/debug/statsviz/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var f Frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

// waitFrame reads frames until one satisfies ok.
func waitFrame(t *testing.T, conn *websocket.Conn, ok func(Frame) bool) Frame {
	t.Helper()
	for {
		if f := readFrame(t, conn); ok(f) {
			return f
		}
	}
}

func TestPlayWebsocket(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/play/echo?w=30&h=12"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	first := readFrame(t, conn)
	assert.Equal(t, int64(1), srv.ActiveSessions())
	assert.NotEmpty(t, first.Session)
	assert.Equal(t, "echo", first.Game)
	assert.Len(t, first.Rows, 12)
	assert.Len(t, first.Rows[0], 30)

	echoMu.Lock()
	g := lastEcho
	echoMu.Unlock()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgKey, Key: "ArrowLeft"}))
	f := waitFrame(t, conn, func(f Frame) bool { return strings.HasPrefix(f.Rows[0], "Left") })
	assert.Equal(t, first.Session, f.Session)
	assert.Greater(t, f.Tick, first.Tick)

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgClick, X: 1, Y: 1}))
	waitFrame(t, conn, func(f Frame) bool { return f.State.Score == 1 })

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgResize, W: 40, H: 15}))
	f = waitFrame(t, conn, func(f Frame) bool { return len(f.Rows) == 15 })
	assert.Len(t, f.Rows[0], 40)

	require.NoError(t, conn.Close())
	select {
	case <-g.disposed:
	case <-time.After(5 * time.Second):
		t.Fatal("game was not disposed after the client left")
	}
	assert.Eventually(t, func() bool { return srv.ActiveSessions() == 0 },
		5*time.Second, 10*time.Millisecond)
}

func TestPlayQuitKeyClosesSession(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/play/echo"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	readFrame(t, conn)
	echoMu.Lock()
	g := lastEcho
	echoMu.Unlock()

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MsgKey, Key: "q"}))
	select {
	case <-g.disposed:
	case <-time.After(5 * time.Second):
		t.Fatal("quit key did not end the session")
	}
}

func TestPlayUnknownGame(t *testing.T) {
	srv := newTestServer(t, nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/play/nope"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestActionForKey(t *testing.T) {
	assert.Equal(t, core.ActionUp, actionForKey("arrowup"))
	assert.Equal(t, core.ActionConfirm, actionForKey("space"))
	assert.Equal(t, core.ActionRestart, actionForKey("r"))
	assert.Equal(t, core.ActionAnyKey, actionForKey("x"))
	assert.Equal(t, core.ActionNone, actionForKey(""))
}
