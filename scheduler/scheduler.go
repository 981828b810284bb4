package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"asp_listings/config"
)

var ErrRunInProgress = errors.New("refresh already in progress")

// Refresher is a job the scheduler runs on every tick.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Scheduler struct {
	cfg    config.SchedulerConfig
	job    Refresher
	cron   *cron.Cron
	ticker *time.Ticker
	stopCh chan struct{}
	once   sync.Once

	mu      sync.Mutex
	running bool
}

func New(cfg config.SchedulerConfig, job Refresher) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		job:    job,
		cron:   cron.New(),
		stopCh: make(chan struct{}),
	}
}

// Start schedules the job by cron expression, or by interval when no cron
// expression is set. With neither, the job only runs through TriggerNow.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Cron != "" {
		log.Printf("Starting scheduler with cron: %s", s.cfg.Cron)
		_, err := s.cron.AddFunc(s.cfg.Cron, func() {
			s.run(ctx)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		s.cron.Start()
	} else if s.cfg.Interval > 0 {
		log.Printf("Starting scheduler with interval: %s", s.cfg.Interval)
		s.ticker = time.NewTicker(s.cfg.Interval)
		go func() {
			for {
				select {
				case <-s.ticker.C:
					s.run(ctx)
				case <-s.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	} else {
		log.Println("No schedule configured, refresh runs only on demand")
	}

	return nil
}

func (s *Scheduler) Stop() {
	s.once.Do(func() {
		if s.cron != nil {
			<-s.cron.Stop().Done()
		}
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopCh)
	})
}

// TriggerNow runs the job immediately unless a run is already in progress,
// in which case it returns ErrRunInProgress.
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	return s.runExclusive(ctx)
}

// run skips a tick while the previous run is still going.
func (s *Scheduler) run(ctx context.Context) {
	err := s.runExclusive(ctx)
	switch {
	case errors.Is(err, ErrRunInProgress):
		log.Println("Scheduled refresh skipped, previous run still in progress")
	case err != nil:
		log.Printf("Scheduled refresh error: %v", err)
	}
}

func (s *Scheduler) runExclusive(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	return s.job.Refresh(ctx)
}
