package service

import (
	"context"
	"time"

	"uhoo_bridge/internal/logger"
	"uhoo_bridge/internal/models"
	"uhoo_bridge/internal/registry"
	"uhoo_bridge/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Session owns the vendor token and the cached reading.
type Session interface {
	Authenticate(ctx context.Context) (string, error)
	GetReading(ctx context.Context, fn ReadingFunc)
	Refresh(ctx context.Context) (models.AirQuality, error)
	State() SessionState
}

// Monitoring exposes the published accessory values.
type Monitoring interface {
	GetState(ctx context.Context) (models.AccessoryState, error)
}

// EventLog exposes the session log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.SessionEvent, error)
}

// ReadingHistory exposes stored readings.
type ReadingHistory interface {
	History(ctx context.Context, f ReadingFilter) ([]models.Reading, error)
	Latest(ctx context.Context) (*models.Reading, error)
}

// Poller runs the background refresh loop until ctx is cancelled.
type Poller interface {
	Run(ctx context.Context, interval time.Duration)
}

type Service struct {
	Session
	Monitoring
	EventLog
	ReadingHistory
	Poller
	Authorization
}

// Deps are the collaborators that do not come from the repository layer.
type Deps struct {
	Client      VendorClient
	Accessory   *registry.Accessory
	Credentials Credentials
	Auth        AuthOptions
	Log         *logger.Logger
}

func NewService(repos *repository.Repository, deps Deps) *Service {
	session := NewSessionController(deps.Client, deps.Accessory, deps.Credentials, deps.Log,
		WithReadingRepo(repos.ReadingRepo),
		WithEventRepo(repos.EventRepo),
	)
	return &Service{
		Session:        session,
		Monitoring:     NewMonitoringService(deps.Accessory),
		EventLog:       NewEventLogService(repos.EventRepo),
		ReadingHistory: NewReadingHistoryService(repos.ReadingRepo),
		Poller:         NewPollerService(session, deps.Log),
		Authorization:  NewAuthService(repos.Auth, deps.Auth),
	}
}
