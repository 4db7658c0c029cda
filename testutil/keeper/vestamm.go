package keeper

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"

	vestammkeeper "github.com/vestamm/vestamm/x/vestamm/keeper"
	"github.com/vestamm/vestamm/x/vestamm/types"
)

// ManualClock is a Clock whose time only moves when a test advances it.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// MockBank is an in-memory ledger keyed by (denom, account). Transfers from
// unfunded accounts fail, matching how a real bank keeper rejects overdrafts.
// Balance mutations are staged per tx and only applied on Commit, mirroring
// the batch-backed ledger.
type MockBank struct {
	mu       sync.Mutex
	balances map[string]math.Int // denom/account -> balance
	FailNext error               // when set, the next staged call returns it once
}

func NewMockBank() *MockBank {
	return &MockBank{balances: make(map[string]math.Int)}
}

func balanceKey(denom, account string) string {
	return denom + "/" + account
}

// Fund credits an account so subsequent transfers from it succeed.
func (b *MockBank) Fund(denom, account string, amount math.Int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credit(denom, account, amount)
}

// Balance returns the current balance of an account, zero if never touched.
func (b *MockBank) Balance(denom, account string) math.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bal, ok := b.balances[balanceKey(denom, account)]; ok {
		return bal
	}
	return math.ZeroInt()
}

func (b *MockBank) credit(denom, account string, amount math.Int) {
	key := balanceKey(denom, account)
	bal, ok := b.balances[key]
	if !ok {
		bal = math.ZeroInt()
	}
	b.balances[key] = bal.Add(amount)
}

func (b *MockBank) takeFailure() error {
	err := b.FailNext
	b.FailNext = nil
	return err
}

// NewTx opens a staged transaction against the mock ledger.
func (b *MockBank) NewTx() types.BankTx {
	return &mockTx{bank: b, staged: make(map[string]math.Int)}
}

type mockTx struct {
	bank      *MockBank
	staged    map[string]math.Int
	committed bool
}

func (tx *mockTx) balance(key string) math.Int {
	if bal, ok := tx.staged[key]; ok {
		return bal
	}
	if bal, ok := tx.bank.balances[key]; ok {
		return bal
	}
	return math.ZeroInt()
}

func (tx *mockTx) Transfer(_ context.Context, denom, from, to string, amount math.Int) error {
	tx.bank.mu.Lock()
	defer tx.bank.mu.Unlock()
	if err := tx.bank.takeFailure(); err != nil {
		return err
	}
	fromKey := balanceKey(denom, from)
	fromBal := tx.balance(fromKey)
	if fromBal.LT(amount) {
		return fmt.Errorf("insufficient %s balance in %s", denom, from)
	}
	toKey := balanceKey(denom, to)
	tx.staged[toKey] = tx.balance(toKey).Add(amount)
	tx.staged[fromKey] = fromBal.Sub(amount)
	return nil
}

func (tx *mockTx) MintLP(_ context.Context, poolID uint64, to string, amount math.Int) error {
	tx.bank.mu.Lock()
	defer tx.bank.mu.Unlock()
	if err := tx.bank.takeFailure(); err != nil {
		return err
	}
	key := balanceKey(types.LpDenom(poolID), to)
	tx.staged[key] = tx.balance(key).Add(amount)
	return nil
}

func (tx *mockTx) BurnLP(_ context.Context, poolID uint64, from string, amount math.Int) error {
	tx.bank.mu.Lock()
	defer tx.bank.mu.Unlock()
	if err := tx.bank.takeFailure(); err != nil {
		return err
	}
	key := balanceKey(types.LpDenom(poolID), from)
	bal := tx.balance(key)
	if bal.LT(amount) {
		return fmt.Errorf("insufficient %s balance in %s", types.LpDenom(poolID), from)
	}
	tx.staged[key] = bal.Sub(amount)
	return nil
}

func (tx *mockTx) Commit(dbm.Batch) error {
	tx.bank.mu.Lock()
	defer tx.bank.mu.Unlock()
	for key, bal := range tx.staged {
		tx.bank.balances[key] = bal
	}
	tx.committed = true
	return nil
}

func (tx *mockTx) Discard() {
	if !tx.committed {
		tx.staged = make(map[string]math.Int)
	}
}

// RecordingEmitter captures emitted events for assertions.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []types.Event
}

func (e *RecordingEmitter) Emit(ev types.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, ev)
}

func (e *RecordingEmitter) Events() []types.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]types.Event, len(e.events))
	copy(out, e.events)
	return out
}

// Last returns the most recent event, nil when none were emitted.
func (e *RecordingEmitter) Last() types.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.events) == 0 {
		return nil
	}
	return e.events[len(e.events)-1]
}

// Fixture bundles a keeper with its test collaborators.
type Fixture struct {
	Keeper  *vestammkeeper.Keeper
	DB      dbm.DB
	Bank    *MockBank
	Clock   *ManualClock
	Emitter *RecordingEmitter
}

// VestammKeeper creates a keeper backed by an in-memory DB and mock
// collaborators. The clock starts at a fixed instant so vesting windows are
// deterministic.
func VestammKeeper(t testing.TB) *Fixture {
	t.Helper()

	db := dbm.NewMemDB()
	bank := NewMockBank()
	clock := NewManualClock(time.Unix(1_700_000_000, 0).UTC())
	emitter := &RecordingEmitter{}

	k := vestammkeeper.NewKeeper(db, bank, clock, emitter, log.NewNopLogger())
	return &Fixture{
		Keeper:  k,
		DB:      db,
		Bank:    bank,
		Clock:   clock,
		Emitter: emitter,
	}
}
