package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moogleworks/market-moogle/internal/domain"
)

type recordingBoard struct {
	mu        sync.Mutex
	world     string
	state     domain.BoardState
	refreshes int
}

func (b *recordingBoard) World() string { return b.world }

func (b *recordingBoard) Status() domain.BoardStatus {
	return domain.BoardStatus{World: b.world, State: b.state}
}

func (b *recordingBoard) Refresh(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshes++
	return nil
}

func (b *recordingBoard) refreshCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshes
}

func TestHandleGetMarketStatus(t *testing.T) {
	boards := []MarketBoard{
		&recordingBoard{world: "faerie", state: domain.BoardReady},
		&recordingBoard{world: "siren", state: domain.BoardEmpty},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/market/status", nil)
	rec := httptest.NewRecorder()
	HandleGetMarketStatus(boards)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MarketStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Boards, 2)
	assert.Equal(t, "faerie", resp.Boards[0].World)
	assert.Equal(t, domain.BoardReady, resp.Boards[0].State)
	assert.Equal(t, domain.BoardEmpty, resp.Boards[1].State)
}

func TestHandleRefreshMarket(t *testing.T) {
	faerie := &recordingBoard{world: "faerie"}
	siren := &recordingBoard{world: "siren"}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/market/refresh", nil)
	rec := httptest.NewRecorder()
	HandleRefreshMarket([]MarketBoard{faerie, siren})(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)

	require.Eventually(t, func() bool {
		return faerie.refreshCount() == 1 && siren.refreshCount() == 1
	}, time.Second, time.Millisecond)
}
