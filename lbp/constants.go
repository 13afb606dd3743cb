package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
)

// ProgramID anchors all program-derived addresses.
var ProgramID = solanago.MustPublicKeyFromBase58("7UTvQUzE1iThaXhXDg1FsVoqcv3MBAgwUCW7PEKzNbPH")

const (
	OneDaySeconds int64 = 60 * 60 * 24

	// MaxFeeBips is 100% in basis points. Fee rates and recipient splits
	// are bounded by it.
	MaxFeeBips uint16 = 10_000

	// Start/end weights must stay inside [1%, 99%].
	MinWeightBasisPoints uint16 = 100
	MaxWeightBasisPoints uint16 = 9_900
)

const (
	ownerConfigSeed = "owner_config"
	treasurySeed    = "treasury"
)
