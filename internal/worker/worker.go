package worker

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/joblog"
	"crm-service/internal/service"
	"crm-service/internal/util"

	"go.uber.org/zap"
)

// Timestamp layouts carried over from the job log formats
const (
	heartbeatTimeLayout = "02/01/2006-15:04:05"
	jobTimeLayout       = "2006-01-02 15:04:05"
)

// HelloProber probes the API's trivial echo query
type HelloProber interface {
	Hello(ctx context.Context) (string, error)
}

// Restocker runs the low-stock replenishment sweep
type Restocker interface {
	UpdateLowStock(ctx context.Context) (*service.LowStockResult, error)
}

// HeartbeatWorker appends a liveness line on every run, optionally confirming
// the API endpoint answers. A probe failure degrades to an error suffix.
type HeartbeatWorker struct {
	prober HelloProber
	log    *joblog.Writer
	logger *zap.Logger
	now    func() time.Time
}

// NewHeartbeatWorker creates a new heartbeat worker
func NewHeartbeatWorker(prober HelloProber, log *joblog.Writer) *HeartbeatWorker {
	return &HeartbeatWorker{
		prober: prober,
		log:    log,
		logger: util.GetLogger(),
		now:    time.Now,
	}
}

// Run executes one heartbeat. It never returns an error and never panics
// outward; the worst outcome is a logged failure.
func (w *HeartbeatWorker) Run(ctx context.Context) {
	defer w.recoverPanic("heartbeat")

	line := w.now().Format(heartbeatTimeLayout) + " CRM is alive"

	if w.prober != nil {
		if _, err := w.prober.Hello(ctx); err != nil {
			line += fmt.Sprintf(" - API endpoint error: %v", err)
			util.HeartbeatsTotal.WithLabelValues("probe_failed").Inc()
		} else {
			line += " - API endpoint responsive"
			util.HeartbeatsTotal.WithLabelValues("ok").Inc()
		}
	} else {
		util.HeartbeatsTotal.WithLabelValues("ok").Inc()
	}

	if err := w.log.WriteLine(line); err != nil {
		w.logger.Error("Failed to write heartbeat log", zap.Error(err))
	}
}

// LowStockWorker runs the replenishment sweep and records per-product updates
type LowStockWorker struct {
	restocker Restocker
	log       *joblog.Writer
	logger    *zap.Logger
	now       func() time.Time
}

// NewLowStockWorker creates a new low-stock worker
func NewLowStockWorker(restocker Restocker, log *joblog.Writer) *LowStockWorker {
	return &LowStockWorker{
		restocker: restocker,
		log:       log,
		logger:    util.GetLogger(),
		now:       time.Now,
	}
}

// Run executes one replenishment sweep. Failures become a single timestamped
// error line; nothing propagates.
func (w *LowStockWorker) Run(ctx context.Context) {
	defer w.recoverPanic("low-stock sweep")

	timestamp := w.now().Format(jobTimeLayout)

	result, err := w.restocker.UpdateLowStock(ctx)
	if err != nil {
		line := fmt.Sprintf("[%s] Error updating low stock products: %v", timestamp, err)
		if werr := w.log.WriteLine(line); werr != nil {
			w.logger.Error("Failed to write low-stock log", zap.Error(werr))
		}
		return
	}

	lines := []string{fmt.Sprintf("[%s] Low stock update executed", timestamp)}
	if result.Success {
		lines = append(lines, fmt.Sprintf("Success: %s", result.Message))
		for _, product := range result.UpdatedProducts {
			lines = append(lines, fmt.Sprintf("Updated: %s - New stock: %d", product.Name, product.Stock))
		}
	} else {
		lines = append(lines, fmt.Sprintf("Failed: %s", result.Message))
	}

	if err := w.log.WriteLines(lines); err != nil {
		w.logger.Error("Failed to write low-stock log", zap.Error(err))
	}
}

func (w *HeartbeatWorker) recoverPanic(job string) {
	if r := recover(); r != nil {
		w.logger.Error("Job panicked", zap.String("job", job), zap.Any("panic", r))
	}
}

func (w *LowStockWorker) recoverPanic(job string) {
	if r := recover(); r != nil {
		w.logger.Error("Job panicked", zap.String("job", job), zap.Any("panic", r))
	}
}
