package types

import (
	"context"
	"time"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
)

// BankKeeper is the expected ledger collaborator. Balance moves are staged in
// a BankTx and only persisted when the enclosing operation commits its own
// writes, so ledger and engine state always change together.
type BankKeeper interface {
	// NewTx opens a staged ledger transaction. The caller must finish it with
	// Commit or Discard.
	NewTx() BankTx
}

// BankTx stages balance mutations for one engine operation. Each call
// validates against the ledger state plus earlier staged mutations and fails
// without side effects; nothing is persisted until Commit.
type BankTx interface {
	// Transfer moves amount of denom between ledger accounts.
	Transfer(ctx context.Context, denom, from, to string, amount math.Int) error

	// MintLP credits newly minted LP shares of the given pool to an account.
	MintLP(ctx context.Context, poolID uint64, to string, amount math.Int) error

	// BurnLP destroys LP shares of the given pool held by an account.
	BurnLP(ctx context.Context, poolID uint64, from string, amount math.Int) error

	// Commit stages the accumulated balance writes into batch. The caller owns
	// the batch write, so ledger and engine state land atomically.
	Commit(batch dbm.Batch) error

	// Discard drops all staged mutations. Safe to call after Commit.
	Discard()
}

// Clock supplies the trusted monotonic time used for vesting maturity checks.
// Callers never pass wall-clock input.
type Clock interface {
	Now() time.Time
}

// EventEmitter is the fire-and-forget observability sink.
type EventEmitter interface {
	Emit(event Event)
}

// NopEmitter discards all events.
type NopEmitter struct{}

func (NopEmitter) Emit(Event) {}
