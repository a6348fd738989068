package watcher

import (
	"context"
	"fmt"
	"time"

	"gumcheck/internal/config"
	"gumcheck/internal/sources"
)

// Service runs the refresh scheduler on a background loop, beside whatever
// foreground invocations share the same session cache.
type Service struct {
	sched *sources.Scheduler
	cfg   config.Config
}

func NewService(sched *sources.Scheduler, cfg config.Config) *Service {
	return &Service{sched: sched, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("watcher cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.sleep()):
		}
	}
}

func (s *Service) runCycle() error {
	switch s.cfg.RefreshMode {
	case "interval":
		s.logFailures(s.sched.RefreshAll())
		fmt.Printf("watcher refresh done mode=interval\n")
		return nil
	case "daily":
		fired, failures, err := s.sched.Tick(time.Now())
		if err != nil {
			return err
		}
		if fired {
			s.logFailures(failures)
			fmt.Printf("watcher refresh fired mode=daily at=%s\n", time.Now().Format("15:04"))
		}
		return nil
	default:
		return fmt.Errorf("unsupported refresh mode: %s", s.cfg.RefreshMode)
	}
}

// Reload failures are warnings: the cache keeps its last-known-good copy
// and the backing file may simply not exist yet.
func (s *Service) logFailures(failures map[sources.Slot]error) {
	for slot, err := range failures {
		fmt.Printf("warning: slot %s reload failed: %v\n", slot, err)
	}
}

func (s *Service) sleep() time.Duration {
	if s.cfg.RefreshMode == "interval" {
		return time.Duration(s.cfg.RefreshIntervalSec) * time.Second
	}
	return time.Duration(s.cfg.WatchTickSec) * time.Second
}
