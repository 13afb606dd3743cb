// Package lbp implements a liquidity bootstrapping pool program: weighted
// constant-power pricing over a time-shifting weight curve, four swap
// variants, whitelist gating, multi-party fee settlement, and the
// init/trade/close/redeem pool lifecycle.
package lbp

import (
	"sync"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/openfjord/fjord-lbp-go/ledger"
)

// Clock supplies the engine's notion of now, in unix seconds. Tests
// substitute a manual clock to move through a sale window.
type Clock interface {
	Now() int64
}

type systemClock struct{}

func (systemClock) Now() int64 { return time.Now().Unix() }

// SystemClock follows the wall clock.
func SystemClock() Clock { return systemClock{} }

// Engine executes all program entry points against an account store and a
// token ledger. One mutex serializes every operation; each call validates
// and computes fully before any balance or account write, so a failed call
// commits nothing.
type Engine struct {
	mu        sync.Mutex
	authority solanago.PublicKey
	ledger    *ledger.Ledger
	store     *accountStore
	clock     Clock
	logger    *zap.Logger
	onEvent   func(Event)

	configAddress   solanago.PublicKey
	configBump      uint8
	treasuryAddress solanago.PublicKey
	treasuryBump    uint8
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithClock substitutes the time source.
func WithClock(clock Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithEventHandler registers a sink for emitted events.
func WithEventHandler(handler func(Event)) Option {
	return func(e *Engine) { e.onEvent = handler }
}

// NewEngine creates an engine. authority is the program upgrade authority,
// the only identity allowed to initialize the owner config.
func NewEngine(authority solanago.PublicKey, tokenLedger *ledger.Ledger, opts ...Option) *Engine {
	e := &Engine{
		authority: authority,
		ledger:    tokenLedger,
		store:     newAccountStore(),
		clock:     systemClock{},
		logger:    zap.NewNop(),
	}
	e.configAddress, e.configBump = DeriveOwnerConfigAddress()
	e.treasuryAddress, e.treasuryBump = DeriveTreasuryAddress()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ledger exposes the engine's token ledger.
func (e *Engine) Ledger() *ledger.Ledger { return e.ledger }

func (e *Engine) emit(event Event) {
	e.logger.Debug("event emitted", zap.String("event", event.EventName()), zap.Any("data", event))
	if e.onEvent != nil {
		e.onEvent(event)
	}
}

func (e *Engine) loadConfig() (*OwnerConfig, error) {
	var config OwnerConfig
	ok, err := e.store.get(e.configAddress, &config)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConfigMissing
	}
	return &config, nil
}

func (e *Engine) loadTreasury() (*Treasury, error) {
	var treasury Treasury
	ok, err := e.store.get(e.treasuryAddress, &treasury)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConfigMissing
	}
	return &treasury, nil
}

func (e *Engine) loadPool(address solanago.PublicKey) (*LiquidityBootstrappingPool, error) {
	var pool LiquidityBootstrappingPool
	ok, err := e.store.get(address, &pool)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPoolNotFound
	}
	return &pool, nil
}

// loadUserState returns the user's state in a pool, creating a zeroed
// record on first interaction.
func (e *Engine) loadUserState(user, pool solanago.PublicKey) (*UserStateInPool, solanago.PublicKey, error) {
	address, _ := DeriveUserStateAddress(user, pool)
	var state UserStateInPool
	if _, err := e.store.get(address, &state); err != nil {
		return nil, address, err
	}
	return &state, address, nil
}

// UserState returns a copy of the caller's per-pool record.
func (e *Engine) UserState(user, pool solanago.PublicKey) (UserStateInPool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	state, _, err := e.loadUserState(user, pool)
	if err != nil {
		return UserStateInPool{}, err
	}
	return *state, nil
}

// Pool returns a copy of a pool record.
func (e *Engine) Pool(address solanago.PublicKey) (LiquidityBootstrappingPool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pool, err := e.loadPool(address)
	if err != nil {
		return LiquidityBootstrappingPool{}, err
	}
	return *pool, nil
}

// Config returns a copy of the owner config.
func (e *Engine) Config() (OwnerConfig, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	config, err := e.loadConfig()
	if err != nil {
		return OwnerConfig{}, err
	}
	return *config, nil
}

// TreasuryState returns a copy of the treasury record.
func (e *Engine) TreasuryState() (Treasury, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	treasury, err := e.loadTreasury()
	if err != nil {
		return Treasury{}, err
	}
	return *treasury, nil
}
