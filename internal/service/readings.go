package service

import (
	"context"

	"uhoo_bridge/internal/models"
	"uhoo_bridge/internal/repository"
)

type ReadingHistoryService struct {
	repo repository.ReadingRepo
}

func NewReadingHistoryService(repo repository.ReadingRepo) *ReadingHistoryService {
	return &ReadingHistoryService{repo: repo}
}

// History returns stored readings, newest first. A non-positive limit uses the store default.
func (s *ReadingHistoryService) History(ctx context.Context, f ReadingFilter) ([]models.Reading, error) {
	from, to := toUTC(f.From), toUTC(f.To)
	if !validRange(from, to) {
		return nil, ErrInvalidTimeRange
	}
	return s.repo.List(ctx, from, to, f.Limit)
}

// Latest returns the newest stored reading, or nil before the first one.
func (s *ReadingHistoryService) Latest(ctx context.Context) (*models.Reading, error) {
	return s.repo.Latest(ctx)
}
