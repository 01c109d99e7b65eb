// Package uhootest provides an in-process fake of the uHoo API and auth hosts.
package uhootest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"uhoo_bridge/internal/credential"
)

// Server answers the four endpoints used by the bridge. Both base URLs point at it.
type Server struct {
	*httptest.Server

	Username string
	Password string
	ClientID string
	UID      string
	Code     string
	Token    string

	mu        sync.Mutex
	calls     map[string]int
	overrides map[string]http.HandlerFunc
	reading   map[string]any
	lastAuth  string
}

// NewServer starts a fake vendor with the credentials the tests use throughout.
func NewServer() *Server {
	s := &Server{
		Username:  "user@example.com",
		Password:  "secret",
		ClientID:  "client-1",
		UID:       "U1",
		Code:      "C1",
		Token:     "T1",
		calls:     map[string]int{},
		overrides: map[string]http.HandlerFunc{},
	}
	s.SetReading(Values(700))

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/user", s.wrap("/v1/user", s.userInfo))
	mux.HandleFunc("/verifyemail", s.wrap("/verifyemail", s.verifyEmail))
	mux.HandleFunc("/login", s.wrap("/login", s.login))
	mux.HandleFunc("/v1/allconsumerdata", s.wrap("/v1/allconsumerdata", s.consumerData))
	s.Server = httptest.NewServer(mux)
	return s
}

// Values builds a complete device data payload with the given CO2 level.
func Values(co2 float64) map[string]any {
	v := func(x float64) map[string]any { return map[string]any{"value": x} }
	return map[string]any{
		"co2":      v(co2),
		"co":       v(0),
		"no2":      v(12),
		"ozone":    v(20),
		"voc":      v(150),
		"dust":     v(8.5),
		"temp":     v(22.4),
		"humidity": v(41),
	}
}

// SetReading replaces the data of the first device.
func (s *Server) SetReading(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reading = data
}

// Override replaces the handler of path until cleared with a nil handler.
func (s *Server) Override(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h == nil {
		delete(s.overrides, path)
		return
	}
	s.overrides[path] = h
}

// Calls returns how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// LastAuthorization returns the Authorization header of the latest data request.
func (s *Server) LastAuthorization() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAuth
}

func (s *Server) wrap(path string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[path]++
		override := s.overrides[path]
		s.mu.Unlock()
		if override != nil {
			override(w, r)
			return
		}
		h(w, r)
	}
}

func (s *Server) userInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"uId": s.UID})
}

func (s *Server) verifyEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if r.PostFormValue("username") != s.Username || r.PostFormValue("clientId") != s.ClientID {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown account"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"code": s.Code})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	hashed, err := credential.DecryptPassword(r.PostFormValue("password"), s.Code)
	if err != nil || hashed != credential.HashPassword(s.Password, s.UID) ||
		r.PostFormValue("username") != s.Username || r.PostFormValue("clientId") != s.ClientID {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"refreshToken": s.Token})
}

func (s *Server) consumerData(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	s.mu.Lock()
	s.lastAuth = auth
	data := s.reading
	s.mu.Unlock()

	if auth != "Bearer "+s.Token {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": []any{map[string]any{"data": data}},
	})
}

// DropConnection hijacks the request and closes it without a response.
func DropConnection(w http.ResponseWriter, _ *http.Request) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}
	_ = conn.Close()
}

// Garbage answers 200 with a body that is not the expected shape.
func Garbage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("<html>maintenance</html>"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
