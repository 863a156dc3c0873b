// Package scheduler manages periodic schedule re-syncs and cache
// sweeps.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-oracle/internal/service"
)

// Sweepable is any cache that can drop its expired entries.
type Sweepable interface {
	InvalidateExpired()
	Name() string
}

// Scheduler manages scheduled sync and sweep jobs
type Scheduler struct {
	cron      *cron.Cron
	schedule  *service.ScheduleService
	logger    *logrus.Logger
	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(schedule *service.ScheduleService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(time.UTC)),
		schedule: schedule,
		logger:   logger,
		jobIDs:   make([]cron.EntryID, 0),
	}
}

// ScheduleSeasonSync schedules periodic schedule re-syncs for the
// given teams. The sync goes through the schedule service's cache, so
// a run inside the TTL window costs nothing upstream.
func (s *Scheduler) ScheduleSeasonSync(cronExpression string, teams []string, season int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		for _, team := range teams {
			if _, err := s.schedule.Games(ctx, team, season); err != nil {
				s.logger.WithError(err).WithField("team", team).Warn("Scheduled sync failed")
			}
		}
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"cron":  cronExpression,
		"teams": len(teams),
	}).Info("Scheduled season sync job")

	return nil
}

// ScheduleCacheSweep schedules periodic physical removal of expired
// entries across the given caches.
func (s *Scheduler) ScheduleCacheSweep(interval time.Duration, caches ...Sweepable) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		for _, c := range caches {
			c.InvalidateExpired()
			s.logger.WithField("cache", c.Name()).Debug("Swept expired cache entries")
		}
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
}

// Stop halts scheduled jobs and waits for running ones to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}
