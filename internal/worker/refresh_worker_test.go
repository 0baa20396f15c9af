package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingBoard struct {
	mu    sync.Mutex
	world string
	count int
	err   error
}

func (b *countingBoard) World() string { return b.world }

func (b *countingBoard) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count++
	return b.err
}

func (b *countingBoard) refreshes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

func TestRefreshWorkerRunsImmediately(t *testing.T) {
	board := &countingBoard{world: "faerie"}
	w := NewRefreshWorker([]Refresher{board}, time.Hour)

	w.Start()
	defer w.Shutdown(context.Background())

	require.Eventually(t, func() bool { return board.refreshes() == 1 }, time.Second, time.Millisecond)
}

func TestRefreshWorkerTicks(t *testing.T) {
	board := &countingBoard{world: "faerie"}
	w := NewRefreshWorker([]Refresher{board}, 10*time.Millisecond)

	w.Start()
	defer w.Shutdown(context.Background())

	require.Eventually(t, func() bool { return board.refreshes() >= 3 }, time.Second, time.Millisecond)
}

func TestRefreshWorkerContinuesPastFailures(t *testing.T) {
	failing := &countingBoard{world: "faerie", err: errors.New("boom")}
	healthy := &countingBoard{world: "siren"}
	w := NewRefreshWorker([]Refresher{failing, healthy}, time.Hour)

	w.Start()
	defer w.Shutdown(context.Background())

	require.Eventually(t, func() bool { return healthy.refreshes() == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, failing.refreshes())
}

func TestRefreshWorkerShutdownStopsTicking(t *testing.T) {
	board := &countingBoard{world: "faerie"}
	w := NewRefreshWorker([]Refresher{board}, 10*time.Millisecond)

	w.Start()
	require.Eventually(t, func() bool { return board.refreshes() >= 1 }, time.Second, time.Millisecond)
	require.NoError(t, w.Shutdown(context.Background()))

	settled := board.refreshes()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, board.refreshes())
}

func TestRefreshWorkerShutdownIdempotent(t *testing.T) {
	w := NewRefreshWorker(nil, time.Hour)
	w.Start()

	require.NoError(t, w.Shutdown(context.Background()))
	require.NoError(t, w.Shutdown(context.Background()))
}
