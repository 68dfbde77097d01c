package services

import (
	"context"
	"log"
	"time"

	"loanhub-portal/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// SweeperService purges expired session rows in the background. Expired
// sessions already fail admission at request time; the sweeper just keeps
// the table from growing without bound.
type SweeperService struct {
	repo repositories.SessionRepository
	cron *cron.Cron
}

// NewSweeperService creates a new sweeper service
func NewSweeperService(repo repositories.SessionRepository) *SweeperService {
	return &SweeperService{
		repo: repo,
		cron: cron.New(),
	}
}

// Start reports the persisted session count, runs one immediate sweep, and
// schedules an hourly purge.
func (s *SweeperService) Start() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if count, err := s.repo.Count(ctx); err == nil {
		log.Printf("🚀 Session sweeper started [%d persisted sessions]", count)
	} else {
		log.Printf("🚀 Session sweeper started [count unavailable: %v]", err)
	}

	s.sweep()

	_, err := s.cron.AddFunc("@hourly", s.sweep)
	if err != nil {
		log.Printf("❌ Failed to schedule session sweep: %v", err)
		return
	}
	s.cron.Start()
}

// Stop stops the scheduled sweeps.
func (s *SweeperService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Session sweeper stopped")
}

func (s *SweeperService) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.repo.DeleteExpired(ctx, time.Now())
	if err != nil {
		// Never fatal; the next sweep will retry.
		log.Printf("⚠️ Session sweep failed: %v", err)
		return
	}
	if purged > 0 {
		log.Printf("🧹 Purged %d expired sessions", purged)
	}
}
