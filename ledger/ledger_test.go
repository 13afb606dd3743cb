package ledger

import (
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestCreateMint(t *testing.T) {
	l := New()
	mintAddr := solanago.NewWallet().PublicKey()
	authority := solanago.NewWallet().PublicKey()

	mint, err := l.CreateMint(mintAddr, authority, 9)
	require.NoError(t, err)
	require.Equal(t, uint8(9), mint.Decimals)
	require.Equal(t, uint64(0), mint.Supply)

	_, err = l.CreateMint(mintAddr, authority, 9)
	require.ErrorIs(t, err, ErrMintExists)

	_, err = l.Mint(solanago.NewWallet().PublicKey())
	require.ErrorIs(t, err, ErrUnknownMint)
}

func TestMintTo(t *testing.T) {
	l := New()
	mintAddr := solanago.NewWallet().PublicKey()
	authority := solanago.NewWallet().PublicKey()
	owner := solanago.NewWallet().PublicKey()

	_, err := l.CreateMint(mintAddr, authority, 6)
	require.NoError(t, err)

	require.NoError(t, l.MintTo(mintAddr, authority, owner, 1_000))
	require.Equal(t, uint64(1_000), l.Balance(owner, mintAddr))

	mint, err := l.Mint(mintAddr)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), mint.Supply)

	// Only the mint authority can mint.
	err = l.MintTo(mintAddr, owner, owner, 1)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, uint64(1_000), l.Balance(owner, mintAddr))
}

func TestTransfer(t *testing.T) {
	l := New()
	mintAddr := solanago.NewWallet().PublicKey()
	authority := solanago.NewWallet().PublicKey()
	alice := solanago.NewWallet().PublicKey()
	bob := solanago.NewWallet().PublicKey()

	_, err := l.CreateMint(mintAddr, authority, 9)
	require.NoError(t, err)
	require.NoError(t, l.MintTo(mintAddr, authority, alice, 500))

	require.NoError(t, l.Transfer(mintAddr, alice, bob, alice, 200))
	require.Equal(t, uint64(300), l.Balance(alice, mintAddr))
	require.Equal(t, uint64(200), l.Balance(bob, mintAddr))

	// Destination account was created on first use.
	account, err := l.Account(bob, mintAddr)
	require.NoError(t, err)
	require.Equal(t, bob, account.Owner)
	require.Equal(t, mintAddr, account.Mint)
}

func TestTransferRejections(t *testing.T) {
	l := New()
	mintAddr := solanago.NewWallet().PublicKey()
	authority := solanago.NewWallet().PublicKey()
	alice := solanago.NewWallet().PublicKey()
	bob := solanago.NewWallet().PublicKey()

	_, err := l.CreateMint(mintAddr, authority, 9)
	require.NoError(t, err)
	require.NoError(t, l.MintTo(mintAddr, authority, alice, 100))

	err = l.Transfer(solanago.NewWallet().PublicKey(), alice, bob, alice, 1)
	require.ErrorIs(t, err, ErrUnknownMint)

	err = l.Transfer(mintAddr, bob, alice, bob, 1)
	require.ErrorIs(t, err, ErrUnknownAccount)

	err = l.Transfer(mintAddr, alice, bob, bob, 1)
	require.ErrorIs(t, err, ErrUnauthorized)

	err = l.Transfer(mintAddr, alice, bob, alice, 101)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	require.Equal(t, uint64(100), l.Balance(alice, mintAddr))
	require.Equal(t, uint64(0), l.Balance(bob, mintAddr))
}

func TestAssociatedTokenAddressDeterministic(t *testing.T) {
	wallet := solanago.NewWallet().PublicKey()
	mint := solanago.NewWallet().PublicKey()

	require.Equal(t, AssociatedTokenAddress(wallet, mint), AssociatedTokenAddress(wallet, mint))
	require.NotEqual(t, AssociatedTokenAddress(wallet, mint), AssociatedTokenAddress(mint, wallet))
}
