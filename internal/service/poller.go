package service

import (
	"context"
	"time"

	"uhoo_bridge/internal/logger"
	"uhoo_bridge/internal/models"

	"github.com/cenkalti/backoff"
)

const maxRetryInitialInterval = 5 * time.Second

// Refresher is the part of the session the poller drives.
type Refresher interface {
	Refresh(ctx context.Context) (models.AirQuality, error)
}

// PollerService refreshes the session on a timer. It owns retry spacing: after a failed
// refresh the next attempt comes sooner, backing off up to the regular interval.
type PollerService struct {
	refresher Refresher
	log       *logger.Logger
}

func NewPollerService(r Refresher, log *logger.Logger) *PollerService {
	if log == nil {
		log = logger.Nop()
	}
	return &PollerService{refresher: r, log: log}
}

// Run refreshes once immediately and then keeps going until ctx is canceled.
func (p *PollerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		p.log.Errorw("poller_invalid_interval", "interval", interval.String())
		return
	}
	bo := newRetryBackOff(interval)

	p.log.Infow("poller_started", "interval", interval.String())
	defer p.log.Infow("poller_stopped")

	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			t.Reset(p.poll(ctx, bo, interval))
		}
	}
}

// poll runs one refresh and returns the delay before the next one.
func (p *PollerService) poll(ctx context.Context, bo backoff.BackOff, interval time.Duration) time.Duration {
	q, err := p.refresher.Refresh(ctx)
	if err == nil {
		bo.Reset()
		p.log.Debugw("poller_refresh_ok", "air_quality", q.String())
		return interval
	}
	if ctx.Err() != nil {
		return interval
	}
	next := bo.NextBackOff()
	if next == backoff.Stop || next > interval {
		next = interval
	}
	p.log.Warnw("poller_refresh_failed", "err", err, "retry_in", next.String())
	return next
}

func newRetryBackOff(interval time.Duration) *backoff.ExponentialBackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = min(maxRetryInitialInterval, interval)
	bo.MaxInterval = interval
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}
