// Package estimate owns the quote-fetch lifecycle for the cart and checkout
// views. The backend computes all money; this package only tracks which quote
// is current and makes sure a stale response can never overwrite a newer one.
package estimate

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/cart"
)

// Quoter is the backend call the fetcher drives.
type Quoter interface {
	Estimate(ctx context.Context, in api.EstimateInput) (cart.Estimate, error)
}

// State is the quote lifecycle phase.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// MsgNoItems is the failure key for an empty selection. The check runs before
// any network work.
const MsgNoItems = "estimate.error.noitems"

// MsgFetchFailed is the generic failure key when the backend gave no usable
// error string.
const MsgFetchFailed = "estimate.error.failed"

// Snapshot is an immutable view of the fetcher at one point in time. On
// failure the previous estimate is gone; Message carries the server's own
// error text when one was present, MessageKey the localized fallback.
type Snapshot struct {
	State      State
	Estimate   cart.Estimate
	Message    string
	MessageKey string
}

// Fetcher serializes quote requests and applies last-write-wins: each Fetch
// claims a generation, and a response whose generation has been superseded is
// dropped on arrival.
type Fetcher struct {
	quoter Quoter
	logger *zap.Logger

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

// NewFetcher builds a fetcher in the idle state.
func NewFetcher(q Quoter, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		quoter: q,
		logger: logger,
		snap:   Snapshot{State: StateIdle},
	}
}

// Snapshot returns the current state.
func (f *Fetcher) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

// Fetch requests a fresh quote for the given selection and returns the state
// after this request settled. An empty selection fails immediately without
// touching the network. When a newer Fetch supersedes this one mid-flight,
// the newer result stands and the newer snapshot is returned.
func (f *Fetcher) Fetch(ctx context.Context, in api.EstimateInput) Snapshot {
	if len(in.ItemIDs) == 0 {
		f.mu.Lock()
		f.gen++
		f.snap = Snapshot{State: StateFailed, MessageKey: MsgNoItems}
		snap := f.snap
		f.mu.Unlock()
		return snap
	}

	f.mu.Lock()
	f.gen++
	gen := f.gen
	f.snap = Snapshot{State: StateLoading}
	f.mu.Unlock()

	est, err := f.quoter.Estimate(ctx, in)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		// superseded while in flight; the newer request owns the state
		return f.snap
	}
	if err != nil {
		f.logger.Warn("estimate fetch failed",
			zap.Int64s("item_ids", in.ItemIDs),
			zap.Error(err))
		f.snap = Snapshot{
			State:      StateFailed,
			Message:    api.ServerMessage(err),
			MessageKey: MsgFetchFailed,
		}
		return f.snap
	}
	f.snap = Snapshot{State: StateReady, Estimate: est}
	return f.snap
}
