package api

import (
	"context"

	"stockroom/internal/inventory"
	"stockroom/internal/photos"
)

// itemsPerPhotoBatch is the assumed shots-per-item ratio used when
// estimating how many listings the staging backlog will produce.
const itemsPerPhotoBatch = 4

// StatsService aggregates organizer progress numbers.
type StatsService struct {
	inventory *inventory.Service
	library   *photos.Library
}

// NewStatsService constructs a StatsService.
func NewStatsService(svc *inventory.Service, library *photos.Library) *StatsService {
	return &StatsService{inventory: svc, library: library}
}

// Snapshot counts the staging backlog and completed ledger rows.
func (s *StatsService) Snapshot(ctx context.Context) (Stats, error) {
	total, err := s.library.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	items, err := s.inventory.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	remaining := total / itemsPerPhotoBatch
	if remaining < 0 {
		remaining = 0
	}
	return Stats{
		TotalPhotos:             total,
		CompletedItems:          len(items),
		EstimatedItemsRemaining: remaining,
	}, nil
}
