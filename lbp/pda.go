package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
)

// DeriveOwnerConfigAddress returns the singleton config address.
func DeriveOwnerConfigAddress() (solanago.PublicKey, uint8) {
	pub, bump, _ := solanago.FindProgramAddress([][]byte{[]byte(ownerConfigSeed)}, ProgramID)
	return pub, bump
}

// DeriveTreasuryAddress returns the singleton treasury address.
func DeriveTreasuryAddress() (solanago.PublicKey, uint8) {
	pub, bump, _ := solanago.FindProgramAddress([][]byte{[]byte(treasurySeed)}, ProgramID)
	return pub, bump
}

// DerivePoolAddress keys a pool by its token pair, creator, and salt. The
// salt lets one creator run several sales for the same pair. The salt is
// caller-supplied, so derivation can fail; it must fit in one seed.
func DerivePoolAddress(shareMint, assetMint, creator solanago.PublicKey, salt string) (solanago.PublicKey, uint8, error) {
	pub, bump, err := solanago.FindProgramAddress([][]byte{
		shareMint.Bytes(),
		assetMint.Bytes(),
		creator.Bytes(),
		[]byte(salt),
	}, ProgramID)
	if err != nil {
		return solanago.PublicKey{}, 0, ErrInvalidSalt
	}
	return pub, bump, nil
}

// DeriveUserStateAddress keys a participant's (or referrer's) state in a
// pool.
func DeriveUserStateAddress(user, pool solanago.PublicKey) (solanago.PublicKey, uint8) {
	pub, bump, _ := solanago.FindProgramAddress([][]byte{
		user.Bytes(),
		pool.Bytes(),
	}, ProgramID)
	return pub, bump
}
