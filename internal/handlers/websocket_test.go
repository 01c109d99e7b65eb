package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"uhoo_bridge/internal/models"
	"uhoo_bridge/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func dialWS(t *testing.T, s *service.Service, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", NewHandler(s, nil).wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func readState(t *testing.T, conn *websocket.Conn, wait time.Duration) (models.AccessoryState, error) {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		return models.AccessoryState{}, err
	}
	if env.Type != "state" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var st models.AccessoryState
	if err := json.Unmarshal(env.Data, &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return st, nil
}

func TestWebSocket_SendsInitialStateThenOnlyChanges(t *testing.T) {
	mon := &mockMonitoring{state: sampleState()}
	conn := dialWS(t, &service.Service{Monitoring: mon}, "interval_ms=20")

	st, err := readState(t, conn, time.Second)
	if err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if st.AirQuality != "GOOD" || st.Values[models.CharCarbonDioxideLevel] != 700 {
		t.Fatalf("unexpected state: %+v", st)
	}

	// Unchanged snapshot: several ticks pass without a frame.
	if _, err := readState(t, conn, 150*time.Millisecond); err == nil {
		t.Fatal("expected no frame while the snapshot is unchanged")
	}
}

func TestWebSocket_PushesUpdatedSnapshot(t *testing.T) {
	mon := &mockMonitoring{state: sampleState()}
	conn := dialWS(t, &service.Service{Monitoring: mon}, "interval_ms=20")

	if _, err := readState(t, conn, time.Second); err != nil {
		t.Fatalf("read initial: %v", err)
	}

	next := sampleState()
	next.AirQuality = models.AirQualityPoor.String()
	next.UpdatedAt = next.UpdatedAt.Add(time.Minute)
	mon.set(next)

	st, err := readState(t, conn, time.Second)
	if err != nil {
		t.Fatalf("read update: %v", err)
	}
	if st.AirQuality != "POOR" || !st.UpdatedAt.Equal(next.UpdatedAt) {
		t.Fatalf("unexpected update: %+v", st)
	}
}

func TestWebSocket_InitialGetStateError_Closes(t *testing.T) {
	mon := &mockMonitoring{err: errors.New("boom")}
	conn := dialWS(t, &service.Service{Monitoring: mon}, "")

	// The server closes right after the initial GetState fails.
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
