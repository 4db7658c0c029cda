// Package ledger provides a key-value backed token ledger implementing the
// bank collaborator expected by the vestamm keeper. It tracks balances per
// (denom, account) pair and rejects overdrafts. Balance mutations are staged
// in a Tx and committed into the caller's batch, so an engine operation and
// its balance moves persist together or not at all.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/vestamm/vestamm/x/vestamm/types"
)

var balancePrefix = []byte{0x10}

// Ledger is a minimal single-writer token ledger. Mutations go through a Tx;
// the ledger lock is held from NewTx until Discard.
type Ledger struct {
	mu sync.Mutex
	db dbm.DB
}

func New(db dbm.DB) *Ledger {
	return &Ledger{db: db}
}

func balanceKey(denom, account string) []byte {
	return append(balancePrefix, []byte(denom+"/"+account)...)
}

func (l *Ledger) getBalance(denom, account string) (math.Int, error) {
	bz, err := l.db.Get(balanceKey(denom, account))
	if err != nil {
		return math.Int{}, fmt.Errorf("read balance %s/%s: %w", denom, account, err)
	}
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var bal math.Int
	if err := bal.Unmarshal(bz); err != nil {
		return math.Int{}, fmt.Errorf("decode balance %s/%s: %w", denom, account, err)
	}
	return bal, nil
}

// Balance returns the current balance of an account, zero when absent.
func (l *Ledger) Balance(denom, account string) (math.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.getBalance(denom, account)
}

// Mint credits freshly created units of denom to an account, outside any
// engine operation. Used for funding accounts at setup time.
func (l *Ledger) Mint(denom, account string, amount math.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !amount.IsPositive() {
		return fmt.Errorf("mint amount must be positive, got %s", amount)
	}
	bal, err := l.getBalance(denom, account)
	if err != nil {
		return err
	}
	bz, err := bal.Add(amount).Marshal()
	if err != nil {
		return fmt.Errorf("encode balance %s/%s: %w", denom, account, err)
	}
	batch := l.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(balanceKey(denom, account), bz); err != nil {
		return err
	}
	return batch.Write()
}

// MintLP credits newly minted LP shares of a pool to an account, outside any
// engine operation.
func (l *Ledger) MintLP(poolID uint64, to string, amount math.Int) error {
	return l.Mint(types.LpDenom(poolID), to, amount)
}

// NewTx opens a staged transaction. The ledger lock is held until the Tx is
// finished with Discard.
func (l *Ledger) NewTx() types.BankTx {
	l.mu.Lock()
	return &Tx{ledger: l, staged: make(map[string]math.Int)}
}

// Tx stages balance mutations against the ledger. Reads see committed state
// overlaid with earlier staged writes, so overdrafts are caught at staging
// time. A Tx is not safe for concurrent use.
type Tx struct {
	ledger *Ledger
	staged map[string]math.Int
	done   bool
}

func (tx *Tx) balance(denom, account string) (math.Int, error) {
	key := denom + "/" + account
	if bal, ok := tx.staged[key]; ok {
		return bal, nil
	}
	return tx.ledger.getBalance(denom, account)
}

func (tx *Tx) setStaged(denom, account string, bal math.Int) {
	tx.staged[denom+"/"+account] = bal
}

// Transfer stages a move of amount from one account to another.
func (tx *Tx) Transfer(_ context.Context, denom, from, to string, amount math.Int) error {
	if !amount.IsPositive() {
		return fmt.Errorf("transfer amount must be positive, got %s", amount)
	}
	fromBal, err := tx.balance(denom, from)
	if err != nil {
		return err
	}
	if fromBal.LT(amount) {
		return fmt.Errorf("insufficient %s balance in %s: have %s, need %s", denom, from, fromBal, amount)
	}
	toBal, err := tx.balance(denom, to)
	if err != nil {
		return err
	}
	tx.setStaged(denom, from, fromBal.Sub(amount))
	tx.setStaged(denom, to, toBal.Add(amount))
	return nil
}

// MintLP stages a credit of newly minted LP shares of a pool.
func (tx *Tx) MintLP(_ context.Context, poolID uint64, to string, amount math.Int) error {
	if !amount.IsPositive() {
		return fmt.Errorf("mint amount must be positive, got %s", amount)
	}
	denom := types.LpDenom(poolID)
	bal, err := tx.balance(denom, to)
	if err != nil {
		return err
	}
	tx.setStaged(denom, to, bal.Add(amount))
	return nil
}

// BurnLP stages destruction of LP shares of a pool held by an account.
func (tx *Tx) BurnLP(_ context.Context, poolID uint64, from string, amount math.Int) error {
	if !amount.IsPositive() {
		return fmt.Errorf("burn amount must be positive, got %s", amount)
	}
	denom := types.LpDenom(poolID)
	bal, err := tx.balance(denom, from)
	if err != nil {
		return err
	}
	if bal.LT(amount) {
		return fmt.Errorf("insufficient %s balance in %s: have %s, need %s", denom, from, bal, amount)
	}
	tx.setStaged(denom, from, bal.Sub(amount))
	return nil
}

// Commit writes all staged balances into batch. The ledger lock is held until
// Discard, so the caller writes the batch and then finishes the Tx; ledger and
// engine state land atomically.
func (tx *Tx) Commit(batch dbm.Batch) error {
	if tx.done {
		return fmt.Errorf("ledger tx already finished")
	}
	for key, bal := range tx.staged {
		bz, err := bal.Marshal()
		if err != nil {
			return fmt.Errorf("encode balance %s: %w", key, err)
		}
		if err := batch.Set(append(balancePrefix, []byte(key)...), bz); err != nil {
			return err
		}
	}
	return nil
}

// Discard finishes the Tx and releases the ledger lock. It must be called
// exactly once per Tx, typically deferred right after NewTx; any staged
// mutations not committed into a written batch are dropped.
func (tx *Tx) Discard() {
	if tx.done {
		return
	}
	tx.done = true
	tx.ledger.mu.Unlock()
}
