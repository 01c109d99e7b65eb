package service

import (
	"context"
	"sync"
	"time"

	"uhoo_bridge/internal/models"
)

// stubClient is a scripted VendorClient. Readings are served from the readings queue; once
// it is drained the last entry repeats.
type stubClient struct {
	mu sync.Mutex

	uid, code, token string
	loginErr         error
	loginGate        chan struct{} // when set, Login blocks until it is closed

	readings []stubReading

	userCalls, verifyCalls, loginCalls, fetchCalls int
	fetchTokens                                    []string
	loginPasswords                                 []string
}

type stubReading struct {
	r   models.Reading
	err error
}

func newStubClient() *stubClient {
	return &stubClient{uid: "U1", code: "C1", token: "T1"}
}

func (c *stubClient) UserID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userCalls++
	return c.uid, nil
}

func (c *stubClient) VerifyEmail(ctx context.Context, username, clientID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.verifyCalls++
	return c.code, nil
}

func (c *stubClient) Login(ctx context.Context, clientID, username, encryptedPassword string) (string, error) {
	c.mu.Lock()
	gate := c.gate()
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loginCalls++
	c.loginPasswords = append(c.loginPasswords, encryptedPassword)
	if c.loginErr != nil {
		return "", c.loginErr
	}
	return c.token, nil
}

func (c *stubClient) gate() chan struct{} { return c.loginGate }

func (c *stubClient) LatestReading(ctx context.Context, token string) (models.Reading, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchCalls++
	c.fetchTokens = append(c.fetchTokens, token)
	if len(c.readings) == 0 {
		return models.Reading{}, nil
	}
	next := c.readings[0]
	if len(c.readings) > 1 {
		c.readings = c.readings[1:]
	}
	return next.r, next.err
}

// queue replaces the scripted fetch results.
func (c *stubClient) queue(rs ...stubReading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readings = rs
}

func (c *stubClient) handshakes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginCalls
}

func (c *stubClient) fetches() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetchCalls
}

func ok(co2 float64) stubReading {
	return stubReading{r: models.Reading{CO2: co2, CO: 0, NO2: 12, Ozone: 20, VOC: 150, Dust: 8.5, Temperature: 22.4, Humidity: 41}}
}

func fail(err error) stubReading { return stubReading{err: err} }

// recordingRegistry captures every SetValue call.
type recordingRegistry struct {
	mu     sync.Mutex
	values map[models.Characteristic]float64
	writes int
}

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{values: map[models.Characteristic]float64{}}
}

func (r *recordingRegistry) SetValue(kind models.Characteristic, v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[kind] = v
	r.writes++
}

func (r *recordingRegistry) get(kind models.Characteristic) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[kind]
	return v, ok
}

func (r *recordingRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// fakeEventRepo captures appended events and List arguments.
type fakeEventRepo struct {
	mu       sync.Mutex
	appended []models.SessionEvent

	gotFrom, gotTo time.Time
	gotType        string
	listCalls      int
	events         []models.SessionEvent
	err            error
}

func (f *fakeEventRepo) Append(ctx context.Context, e models.SessionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.SessionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.gotFrom, f.gotTo, f.gotType = from, to, typ
	return f.events, f.err
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

// fakeReadingRepo keeps appended readings in memory.
type fakeReadingRepo struct {
	mu       sync.Mutex
	appended []models.Reading

	gotFrom, gotTo time.Time
	gotLimit       int
}

func (f *fakeReadingRepo) Append(ctx context.Context, r models.Reading) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, r)
	return nil
}

func (f *fakeReadingRepo) List(ctx context.Context, from, to time.Time, limit int) ([]models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gotFrom, f.gotTo, f.gotLimit = from, to, limit
	return append([]models.Reading(nil), f.appended...), nil
}

func (f *fakeReadingRepo) Latest(ctx context.Context) (*models.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.appended) == 0 {
		return nil, nil
	}
	r := f.appended[len(f.appended)-1]
	return &r, nil
}

func (f *fakeReadingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	users  map[string]*models.User
	nextID int

	createCalls int
}

func newMockAuthRepo() *mockAuthRepo {
	return &mockAuthRepo{users: map[string]*models.User{}, nextID: 1}
}

func (m *mockAuthRepo) Create(ctx context.Context, username, hash string) (int, error) {
	m.createCalls++
	id := m.nextID
	m.nextID++
	m.users[username] = &models.User{ID: id, Username: username, PasswordHash: hash}
	return id, nil
}

func (m *mockAuthRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.users[username], nil
}

func (m *mockAuthRepo) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}
