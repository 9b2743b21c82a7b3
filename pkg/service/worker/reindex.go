package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/argus-sec/argus/pkg/domain/interfaces"
	"github.com/argus-sec/argus/pkg/utils/logging"
)

// ReindexWorker periodically rebuilds the full-text index from the
// repository so incremental indexing failures heal over time.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type ReindexWorker struct {
	repo     interfaces.Repository
	index    interfaces.ReportIndex
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewReindexWorker(repo interfaces.Repository, index interfaces.ReportIndex, interval time.Duration) *ReindexWorker {
	return &ReindexWorker{
		repo:     repo,
		index:    index,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background reindex loop without blocking server startup
func (w *ReindexWorker) Start(ctx context.Context) error {
	logging.Default().Info("reindex worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *ReindexWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("reindex worker stopped")
}

func (w *ReindexWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.reindex(ctx); err != nil {
		logging.Default().Error("initial reindex failed (will retry next interval)", "error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.reindex(ctx); err != nil {
				logging.Default().Error("reindex failed (will retry next interval)", "error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("reindex worker context cancelled")
			return
		}
	}
}

// reindex performs a single full rebuild cycle
func (w *ReindexWorker) reindex(ctx context.Context) error {
	startTime := time.Now()

	reports, err := w.repo.Report().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list reports for reindex")
	}

	for _, report := range reports {
		if err := w.index.Index(ctx, report); err != nil {
			return goerr.Wrap(err, "failed to index report", goerr.V("report_id", report.ID))
		}
	}

	logging.Default().Info("reindex completed",
		"count", len(reports),
		"duration", time.Since(startTime).String())

	return nil
}
