// Package ledger provides the host ledger's token primitive: mints and
// owner-keyed token accounts with atomic debit/credit transfers. Accounts
// are addressed deterministically the associated-token-account way, so a
// (wallet, mint) pair always maps to the same account address.
package ledger

import (
	"errors"
	"sync"

	solanago "github.com/gagliardetto/solana-go"
)

var (
	ErrMintExists        = errors.New("mint already exists")
	ErrUnknownMint       = errors.New("unknown mint")
	ErrUnknownAccount    = errors.New("unknown token account")
	ErrUnauthorized      = errors.New("authority does not own source account")
	ErrInsufficientFunds = errors.New("insufficient token balance")
	ErrMintMismatch      = errors.New("accounts belong to different mints")
	ErrSupplyOverflow    = errors.New("mint supply overflow")
)

// Mint describes a token.
type Mint struct {
	Address   solanago.PublicKey
	Authority solanago.PublicKey
	Decimals  uint8
	Supply    uint64
}

// TokenAccount holds one owner's balance of one mint.
type TokenAccount struct {
	Address solanago.PublicKey
	Mint    solanago.PublicKey
	Owner   solanago.PublicKey
	Amount  uint64
}

// Ledger is an in-memory token ledger. Every mutating call either applies
// completely or returns an error with no state change.
type Ledger struct {
	mu       sync.Mutex
	mints    map[solanago.PublicKey]*Mint
	accounts map[solanago.PublicKey]*TokenAccount
}

func New() *Ledger {
	return &Ledger{
		mints:    make(map[solanago.PublicKey]*Mint),
		accounts: make(map[solanago.PublicKey]*TokenAccount),
	}
}

// AssociatedTokenAddress derives the deterministic account address for a
// (wallet, mint) pair.
func AssociatedTokenAddress(wallet, mint solanago.PublicKey) solanago.PublicKey {
	addr, _, err := solanago.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		panic(err) // derivation only fails for off-curve inputs solana-go rejects earlier
	}
	return addr
}

// CreateMint registers a new mint.
func (l *Ledger) CreateMint(address, authority solanago.PublicKey, decimals uint8) (*Mint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.mints[address]; ok {
		return nil, ErrMintExists
	}
	mint := &Mint{Address: address, Authority: authority, Decimals: decimals}
	l.mints[address] = mint
	return mint, nil
}

// Mint returns mint metadata.
func (l *Ledger) Mint(address solanago.PublicKey) (*Mint, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	mint, ok := l.mints[address]
	if !ok {
		return nil, ErrUnknownMint
	}
	out := *mint
	return &out, nil
}

// MintTo credits freshly minted tokens to the owner's associated account,
// creating it if needed.
func (l *Ledger) MintTo(mint, authority, owner solanago.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.mints[mint]
	if !ok {
		return ErrUnknownMint
	}
	if m.Authority != authority {
		return ErrUnauthorized
	}
	supply := m.Supply + amount
	if supply < m.Supply {
		return ErrSupplyOverflow
	}
	account := l.ensureAccountLocked(owner, mint)
	m.Supply = supply
	account.Amount += amount
	return nil
}

// Transfer moves amount between the associated accounts of two wallets.
// The authority must own the source account. The destination account is
// created on first use.
func (l *Ledger) Transfer(mint, from, to, authority solanago.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.mints[mint]; !ok {
		return ErrUnknownMint
	}
	source, ok := l.accounts[AssociatedTokenAddress(from, mint)]
	if !ok {
		return ErrUnknownAccount
	}
	if source.Owner != authority {
		return ErrUnauthorized
	}
	if source.Amount < amount {
		return ErrInsufficientFunds
	}
	dest := l.ensureAccountLocked(to, mint)
	if dest.Mint != source.Mint {
		return ErrMintMismatch
	}
	source.Amount -= amount
	dest.Amount += amount
	return nil
}

// Balance returns the wallet's balance of mint, zero if the account does
// not exist.
func (l *Ledger) Balance(wallet, mint solanago.PublicKey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[AssociatedTokenAddress(wallet, mint)]
	if !ok {
		return 0
	}
	return account.Amount
}

// Account returns a copy of the wallet's associated token account.
func (l *Ledger) Account(wallet, mint solanago.PublicKey) (*TokenAccount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	account, ok := l.accounts[AssociatedTokenAddress(wallet, mint)]
	if !ok {
		return nil, ErrUnknownAccount
	}
	out := *account
	return &out, nil
}

func (l *Ledger) ensureAccountLocked(owner, mint solanago.PublicKey) *TokenAccount {
	address := AssociatedTokenAddress(owner, mint)
	account, ok := l.accounts[address]
	if !ok {
		account = &TokenAccount{Address: address, Mint: mint, Owner: owner}
		l.accounts[address] = account
	}
	return account
}
