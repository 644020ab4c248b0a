package worker

import (
	"context"
	"fmt"

	"crm-service/internal/util"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler drives the periodic jobs from declarative cron entries
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler registers the heartbeat and low-stock jobs under their cron
// specs and returns the scheduler, not yet started.
func NewScheduler(heartbeatSpec, lowStockSpec string, heartbeat *HeartbeatWorker, lowStock *LowStockWorker) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		logger: util.GetLogger(),
	}

	ctx := context.Background()

	if _, err := s.cron.AddFunc(heartbeatSpec, func() { heartbeat.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid heartbeat cron spec %q: %w", heartbeatSpec, err)
	}
	if _, err := s.cron.AddFunc(lowStockSpec, func() { lowStock.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid low-stock cron spec %q: %w", lowStockSpec, err)
	}

	return s, nil
}

// Start begins running the scheduled jobs
func (s *Scheduler) Start() {
	s.logger.Info("Starting job scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for any running job to finish
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping job scheduler")
	<-s.cron.Stop().Done()
}
