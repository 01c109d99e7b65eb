package handlers

import (
	"context"
	"net/http"
	"sync"

	"uhoo_bridge/internal/models"
	"uhoo_bridge/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSession struct {
	state        service.SessionState
	refreshQ     models.AirQuality
	refreshErr   error
	refreshCalls int
}

func (m *mockSession) Authenticate(ctx context.Context) (string, error) { return "token", nil }

func (m *mockSession) GetReading(ctx context.Context, fn service.ReadingFunc) {
	fn(m.refreshQ, nil)
}

func (m *mockSession) Refresh(ctx context.Context) (models.AirQuality, error) {
	m.refreshCalls++
	return m.refreshQ, m.refreshErr
}

func (m *mockSession) State() service.SessionState { return m.state }

type mockMonitoring struct {
	mu    sync.Mutex
	state models.AccessoryState
	err   error
	calls int
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.AccessoryState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.state, m.err
}

func (m *mockMonitoring) set(st models.AccessoryState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = st
}

type mockEventLog struct {
	resp     []models.SessionEvent
	err      error
	lastFrom string
	lastTo   string
	lastType string
	calls    int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.SessionEvent, error) {
	m.calls++
	m.lastFrom = f.From.Format("2006-01-02T15:04:05.999999999Z07:00")
	m.lastTo = f.To.Format("2006-01-02T15:04:05.999999999Z07:00")
	m.lastType = f.Type
	return m.resp, m.err
}

type mockHistory struct {
	resp      []models.Reading
	latest    *models.Reading
	err       error
	lastLimit int
	calls     int
}

func (m *mockHistory) History(ctx context.Context, f service.ReadingFilter) ([]models.Reading, error) {
	m.calls++
	m.lastLimit = f.Limit
	return m.resp, m.err
}

func (m *mockHistory) Latest(ctx context.Context) (*models.Reading, error) {
	return m.latest, m.err
}

// ---- Shared test helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func withAuth(req *http.Request) *http.Request {
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
