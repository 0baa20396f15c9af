package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cenkalti/backoff/v4"

	"github.com/moogleworks/market-moogle/internal/domain"
	"github.com/moogleworks/market-moogle/internal/logger"
)

// Universalis queries the universalis.app pricing API. Transient transport
// failures and 5xx/429 responses are retried a bounded number of times;
// response-shape problems are permanent failures for the attempt.
type Universalis struct {
	client  *http.Client
	baseURL string
	retries uint64
}

// NewUniversalis creates a client against baseURL with the given per-request
// retry budget.
func NewUniversalis(client *http.Client, baseURL string, retries uint64) *Universalis {
	if client == nil {
		client = http.DefaultClient
	}
	return &Universalis{client: client, baseURL: strings.TrimRight(baseURL, "/"), retries: retries}
}

type listingItem struct {
	ItemID     *int `json:"itemID"`
	MinPriceNQ *int `json:"minPriceNQ"`
	MinPriceHQ *int `json:"minPriceHQ"`
}

type historyItem struct {
	ItemID     *int     `json:"itemID"`
	NQVelocity *float64 `json:"nqSaleVelocity"`
	HQVelocity *float64 `json:"hqSaleVelocity"`
}

type multiResponse[T any] struct {
	Items      *[]T  `json:"items"`
	Unresolved []int `json:"unresolvedItems"`
}

// Listings returns the current lowest NQ/HQ listing price per item.
func (u *Universalis) Listings(ctx context.Context, world string, ids []domain.ItemID) (map[domain.ItemID]ListingEntry, error) {
	q := url.Values{"listings": {"0"}, "entries": {"0"}, "noGst": {"true"}}
	body, err := u.get(ctx, fmt.Sprintf("%s/api/%s/%s", u.baseURL, world, joinIDs(ids)), q)
	if err != nil {
		return nil, err
	}

	var resp multiResponse[listingItem]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResponseShape, err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("%w: listings response has no items array", domain.ErrResponseShape)
	}

	out := make(map[domain.ItemID]ListingEntry, len(*resp.Items))
	for _, item := range *resp.Items {
		if item.ItemID == nil || item.MinPriceNQ == nil || item.MinPriceHQ == nil {
			return nil, fmt.Errorf("%w: listings entry missing required numeric fields", domain.ErrResponseShape)
		}
		out[domain.ItemID(*item.ItemID)] = ListingEntry{MinPriceNQ: *item.MinPriceNQ, MinPriceHQ: *item.MinPriceHQ}
	}
	if len(resp.Unresolved) > 0 {
		logger.FromContext(ctx).Debug("Pricing service could not resolve some listings", "world", world, "count", len(resp.Unresolved))
	}
	return out, nil
}

// History returns the recent NQ/HQ sale velocity per item.
func (u *Universalis) History(ctx context.Context, world string, ids []domain.ItemID) (map[domain.ItemID]HistoryEntry, error) {
	q := url.Values{"entries": {"0"}}
	body, err := u.get(ctx, fmt.Sprintf("%s/api/history/%s/%s", u.baseURL, world, joinIDs(ids)), q)
	if err != nil {
		return nil, err
	}

	var resp multiResponse[historyItem]
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrResponseShape, err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("%w: history response has no items array", domain.ErrResponseShape)
	}

	out := make(map[domain.ItemID]HistoryEntry, len(*resp.Items))
	for _, item := range *resp.Items {
		if item.ItemID == nil || item.NQVelocity == nil || item.HQVelocity == nil {
			return nil, fmt.Errorf("%w: history entry missing required numeric fields", domain.ErrResponseShape)
		}
		out[domain.ItemID(*item.ItemID)] = HistoryEntry{NQVelocity: *item.NQVelocity, HQVelocity: *item.HQVelocity}
	}
	if len(resp.Unresolved) > 0 {
		logger.FromContext(ctx).Debug("Pricing service could not resolve some histories", "world", world, "count", len(resp.Unresolved))
	}
	return out, nil
}

// get issues a GET with bounded retries on transient failures.
func (u *Universalis) get(ctx context.Context, rawURL string, query url.Values) ([]byte, error) {
	fullURL := rawURL + "?" + query.Encode()

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := u.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return fmt.Errorf("pricing service returned status %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("pricing service returned status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), u.retries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return body, nil
}

func joinIDs(ids []domain.ItemID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}
