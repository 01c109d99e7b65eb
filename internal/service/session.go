package service

import (
	"context"
	"fmt"
	"sync"

	"uhoo_bridge/internal/credential"
	"uhoo_bridge/internal/logger"
	"uhoo_bridge/internal/models"
	"uhoo_bridge/internal/repository"
	"uhoo_bridge/internal/uhoo"

	"golang.org/x/sync/singleflight"
)

// MaxConsecutiveParseFailures is how many unusable responses in a row are absorbed by
// serving the cached reading before the error reaches the caller.
const MaxConsecutiveParseFailures = 3

const loginFlightKey = "login"

// VendorClient is the subset of the uHoo API the session needs.
type VendorClient interface {
	UserID(ctx context.Context) (string, error)
	VerifyEmail(ctx context.Context, username, clientID string) (string, error)
	Login(ctx context.Context, clientID, username, encryptedPassword string) (string, error)
	LatestReading(ctx context.Context, token string) (models.Reading, error)
}

// Registry receives published characteristic values. Writes are fire-and-forget.
type Registry interface {
	SetValue(kind models.Characteristic, value float64)
}

// Credentials of the vendor account.
type Credentials struct {
	Username string
	Password string
	ClientID string
}

// SessionState is the token lifecycle state.
type SessionState int

const (
	StateNoToken SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StateAuthenticated:
		return "AUTHENTICATED"
	default:
		return "NO_TOKEN"
	}
}

// ReadingFunc receives an air quality value or an error.
type ReadingFunc func(q models.AirQuality, err error)

// SessionOption customizes a SessionController.
type SessionOption func(*SessionController)

// WithReadingRepo stores every accepted reading.
func WithReadingRepo(r repository.ReadingRepo) SessionOption {
	return func(s *SessionController) { s.readings = r }
}

// WithEventRepo records login and recovery events.
func WithEventRepo(r repository.EventRepo) SessionOption {
	return func(s *SessionController) { s.events = r }
}

// SessionController keeps the vendor token, the last good reading and the parse failure
// streak. All three are only touched under mu.
type SessionController struct {
	client   VendorClient
	registry Registry
	creds    Credentials
	log      *logger.Logger
	readings repository.ReadingRepo
	events   repository.EventRepo
	derive   func(password, uid, clientCode string) (string, error)

	login singleflight.Group

	mu             sync.Mutex
	token          string
	authenticating bool
	lastReading    *models.Reading
	failures       int
}

func NewSessionController(client VendorClient, reg Registry, creds Credentials, log *logger.Logger, opts ...SessionOption) *SessionController {
	if log == nil {
		log = logger.Nop()
	}
	s := &SessionController{
		client:   client,
		registry: reg,
		creds:    creds,
		log:      log,
		derive:   credential.DeriveEncryptedPassword,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// State reports where the token lifecycle currently is.
func (s *SessionController) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.token != "":
		return StateAuthenticated
	case s.authenticating:
		return StateAuthenticating
	default:
		return StateNoToken
	}
}

// LastReading returns a copy of the cached reading.
func (s *SessionController) LastReading() (models.Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReading == nil {
		return models.Reading{}, false
	}
	return *s.lastReading, true
}

// Authenticate returns the current token, running the login handshake when there is
// none. Concurrent callers share a single in-flight handshake. The handshake is not
// retried here; a failure is returned to the caller.
func (s *SessionController) Authenticate(ctx context.Context) (string, error) {
	s.mu.Lock()
	token := s.token
	s.mu.Unlock()
	if token != "" {
		return token, nil
	}

	// The shared flight must not die with the first caller's context; every network
	// call is bounded by the client timeout instead.
	ch := s.login.DoChan(loginFlightKey, func() (any, error) {
		return s.handshake(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (s *SessionController) handshake(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.authenticating = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.authenticating = false
		s.mu.Unlock()
	}()

	token, err := s.runHandshake(ctx)
	if err != nil {
		s.log.Warnw("session_login_failed", "err", err)
		s.record(ctx, models.EventLoginFailed, "login handshake failed", map[string]any{"error": err.Error()})
		return "", fmt.Errorf("login handshake: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.log.Infow("session_login_ok", "username", s.creds.Username)
	s.record(ctx, models.EventLogin, "login successful", nil)
	return token, nil
}

// runHandshake performs the four login steps in order; each feeds the next.
func (s *SessionController) runHandshake(ctx context.Context) (string, error) {
	uid, err := s.client.UserID(ctx)
	if err != nil {
		return "", err
	}
	code, err := s.client.VerifyEmail(ctx, s.creds.Username, s.creds.ClientID)
	if err != nil {
		return "", err
	}
	encrypted, err := s.derive(s.creds.Password, uid, code)
	if err != nil {
		return "", fmt.Errorf("derive encrypted password: %w", err)
	}
	return s.client.Login(ctx, s.creds.ClientID, s.creds.Username, encrypted)
}

// GetReading calls fn right away with the cached air quality (Unknown before the first
// successful fetch), then fetches in the background and calls fn again with the outcome.
func (s *SessionController) GetReading(ctx context.Context, fn ReadingFunc) {
	fn(s.serveCached(), nil)
	go func() {
		fn(s.Refresh(ctx))
	}()
}

// Refresh makes sure a token exists, fetches the latest reading and applies the
// recovery policy. On error the returned value is the cached air quality.
func (s *SessionController) Refresh(ctx context.Context) (models.AirQuality, error) {
	token, err := s.Authenticate(ctx)
	if err != nil {
		return s.cachedQuality(), err
	}

	reading, err := s.client.LatestReading(ctx, token)
	switch {
	case err == nil:
		return s.accept(ctx, reading), nil
	case uhoo.IsParseError(err):
		return s.recoverParseFailure(ctx, token, err)
	default:
		s.invalidate(token)
		s.log.Warnw("reading_fetch_failed", "err", err)
		s.record(ctx, models.EventFetchError, "reading fetch failed; token invalidated", map[string]any{"error": err.Error()})
		return s.cachedQuality(), err
	}
}

func (s *SessionController) accept(ctx context.Context, r models.Reading) models.AirQuality {
	s.mu.Lock()
	s.lastReading = &r
	s.failures = 0
	s.mu.Unlock()

	q := s.publish(r)
	s.log.Debugw("reading_accepted", "co2", r.CO2, "air_quality", q.String())

	if s.readings != nil {
		if err := s.readings.Append(context.WithoutCancel(ctx), r); err != nil {
			s.log.Errorw("reading_store_failed", "err", err)
		}
	}
	return q
}

// recoverParseFailure drops the token and absorbs up to MaxConsecutiveParseFailures
// unusable responses by re-serving the cache; the next one is returned as an error.
func (s *SessionController) recoverParseFailure(ctx context.Context, token string, cause error) (models.AirQuality, error) {
	s.mu.Lock()
	s.failures++
	streak := s.failures
	if s.token == token {
		s.token = ""
	}
	if streak > MaxConsecutiveParseFailures {
		s.failures = 0
		s.mu.Unlock()

		s.log.Errorw("reading_parse_failed", "err", cause, "streak", streak)
		s.record(ctx, models.EventParseError, "unusable reading response; giving up", map[string]any{"streak": streak, "error": cause.Error()})
		s.record(ctx, models.EventTokenInvalidated, "session likely expired", nil)
		return s.cachedQuality(), cause
	}
	s.mu.Unlock()

	s.log.Warnw("reading_parse_failed_serving_cache", "err", cause, "streak", streak)
	s.record(ctx, models.EventParseError, "unusable reading response; serving cached reading", map[string]any{"streak": streak, "error": cause.Error()})
	s.record(ctx, models.EventTokenInvalidated, "session likely expired", nil)
	return s.serveCached(), nil
}

// invalidate drops token unless a newer login already replaced it.
func (s *SessionController) invalidate(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == token {
		s.token = ""
	}
}

// serveCached republishes the cached reading and returns its air quality.
func (s *SessionController) serveCached() models.AirQuality {
	r, ok := s.LastReading()
	if !ok {
		return models.AirQualityUnknown
	}
	return s.publish(r)
}

func (s *SessionController) cachedQuality() models.AirQuality {
	r, ok := s.LastReading()
	if !ok {
		return models.AirQualityUnknown
	}
	return models.AirQualityFromCO2(r.CO2)
}

func (s *SessionController) publish(r models.Reading) models.AirQuality {
	for kind, v := range r.Characteristics() {
		s.registry.SetValue(kind, v)
	}
	return models.AirQualityFromCO2(r.CO2)
}

func (s *SessionController) record(ctx context.Context, typ, msg string, meta map[string]any) {
	if s.events == nil {
		return
	}
	ev := models.SessionEvent{Type: typ, Description: msg}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := s.events.Append(context.WithoutCancel(ctx), ev); err != nil {
		s.log.Errorw("session_event_store_failed", "type", typ, "err", err)
	}
}
