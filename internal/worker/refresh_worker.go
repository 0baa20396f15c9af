package worker

import (
	"context"
	"sync"
	"time"

	"github.com/moogleworks/market-moogle/internal/logger"
)

// Refresher is the board surface the refresh worker drives.
type Refresher interface {
	World() string
	Refresh(ctx context.Context) error
}

// RefreshWorker refreshes every market board on a fixed interval so snapshots
// stay current without anyone hitting the refresh endpoint.
type RefreshWorker struct {
	boards   []Refresher
	interval time.Duration
	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewRefreshWorker creates a new RefreshWorker
func NewRefreshWorker(boards []Refresher, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		boards:   boards,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the refresh loop. The first cycle runs immediately so the
// service has data as soon as the pricing service answers.
func (w *RefreshWorker) Start() {
	log := logger.FromContext(context.Background())
	log.Info(LogMsgRefreshWorkerStarted, "interval", w.interval, "boards", len(w.boards))

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.runCycle()
		for {
			select {
			case <-w.shutdown:
				return
			case <-ticker.C:
				w.runCycle()
			}
		}
	}()
}

// runCycle refreshes every board sequentially. Boards share one throttle, so
// refreshing them concurrently would only reorder the same request budget.
func (w *RefreshWorker) runCycle() {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	log := logger.FromContext(ctx)
	log.Info(LogMsgRefreshCycleStarting)

	start := time.Now()
	for _, board := range w.boards {
		select {
		case <-w.shutdown:
			return
		default:
		}

		if err := board.Refresh(ctx); err != nil {
			log.Error(LogMsgRefreshBoardFailed, "world", board.World(), "error", err)
		}
	}

	log.Info(LogMsgRefreshCycleCompleted, "duration", time.Since(start))
}

// Shutdown gracefully stops the worker and waits for an in-flight cycle
func (w *RefreshWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRefreshWorkerStopping)

	select {
	case <-w.shutdown:
		// Already closed, nothing to do
	default:
		close(w.shutdown)
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgRefreshWorkerStopped)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgRefreshWorkerTimeout)
		return ctx.Err()
	}
}
