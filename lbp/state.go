package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
)

// OwnerConfig is the singleton, owner-controlled fee configuration.
// Mutated only through owner-signed calls; ownership moves via a two-step
// nominate/accept handshake.
type OwnerConfig struct {
	Owner        solanago.PublicKey
	PendingOwner *solanago.PublicKey `bin:"optional"`
	Treasury     solanago.PublicKey
	PlatformFee  uint16
	ReferralFee  uint16
	SwapFee      uint16
	Bump         uint8
}

// FeeMapping assigns a recipient its slice of the platform fee, in basis
// points.
type FeeMapping struct {
	User       solanago.PublicKey
	Percentage uint16
}

// Treasury is the singleton fee-routing record. Recipient percentages sum
// to at most 10000.
type Treasury struct {
	SwapFeeRecipient solanago.PublicKey
	FeeRecipients    []FeeMapping
	Bump             uint8
}

// LiquidityBootstrappingPool is the per-sale state machine.
type LiquidityBootstrappingPool struct {
	AssetToken solanago.PublicKey
	ShareToken solanago.PublicKey
	Creator    solanago.PublicKey
	Salt       string

	VirtualAssets uint64
	VirtualShares uint64
	MaxSharePrice uint64
	MaxSharesOut  uint64
	MaxAssetsIn   uint64

	StartWeightBasisPoints uint16
	EndWeightBasisPoints   uint16

	SaleStartTime int64
	SaleEndTime   int64
	VestCliff     int64
	VestEnd       int64

	WhitelistMerkleRoot [32]uint8
	SellingAllowed      bool

	TotalPurchased     uint64
	TotalReferred      uint64
	TotalSwapFeesAsset uint64
	TotalSwapFeesShare uint64

	Closed bool
	Paused bool
	Bump   uint8
}

// Whitelisted reports whether the pool gates participation behind a
// Merkle root.
func (p *LiquidityBootstrappingPool) Whitelisted() bool {
	return p.WhitelistMerkleRoot != [32]uint8{}
}

// UserStateInPool is the per-(user, pool) ledger. The same record shape
// tracks a referrer's accrued assets.
type UserStateInPool struct {
	PurchasedShares uint64
	RedeemedShares  uint64
	ReferredAssets  uint64
}
