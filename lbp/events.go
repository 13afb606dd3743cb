package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
)

// Event is a notification emitted after an operation commits.
type Event interface {
	EventName() string
}

// PoolCreatedEvent is emitted when a pool is created.
type PoolCreatedEvent struct {
	Pool solanago.PublicKey
}

func (PoolCreatedEvent) EventName() string { return "PoolCreated" }

// BuyEvent is emitted when assets are swapped for shares.
type BuyEvent struct {
	Pool    solanago.PublicKey
	User    solanago.PublicKey
	Assets  uint64
	Shares  uint64
	SwapFee uint64
}

func (BuyEvent) EventName() string { return "Buy" }

// SellEvent is emitted when shares are swapped for assets.
type SellEvent struct {
	Pool    solanago.PublicKey
	User    solanago.PublicKey
	Shares  uint64
	Assets  uint64
	SwapFee uint64
}

func (SellEvent) EventName() string { return "Sell" }

// FeeSetEvent is emitted when the global fee rates change.
type FeeSetEvent struct {
	PlatformFee uint16
	ReferralFee uint16
	SwapFee     uint16
}

func (FeeSetEvent) EventName() string { return "FeeSet" }

// TreasuryFeeRecipientsSetEvent is emitted when fee routing changes.
type TreasuryFeeRecipientsSetEvent struct {
	SwapFeeRecipient solanago.PublicKey
	FeeRecipients    []FeeMapping
}

func (TreasuryFeeRecipientsSetEvent) EventName() string { return "TreasuryFeeRecipientsSet" }

// OwnerNominatedEvent is emitted when a successor is nominated.
type OwnerNominatedEvent struct {
	PendingOwner solanago.PublicKey
}

func (OwnerNominatedEvent) EventName() string { return "OwnerNominated" }

// OwnerAcceptedEvent is emitted when the pending owner accepts.
type OwnerAcceptedEvent struct {
	Owner solanago.PublicKey
}

func (OwnerAcceptedEvent) EventName() string { return "OwnerAccepted" }

// PoolClosedEvent is emitted once per pool when it settles.
type PoolClosedEvent struct {
	Pool          solanago.PublicKey
	PlatformFees  uint64
	SwapFeesAsset uint64
	SwapFeesShare uint64
}

func (PoolClosedEvent) EventName() string { return "PoolClosed" }

// RedeemedEvent is emitted when a user claims shares or referral assets.
type RedeemedEvent struct {
	Pool           solanago.PublicKey
	User           solanago.PublicKey
	Shares         uint64
	ReferredAssets uint64
}

func (RedeemedEvent) EventName() string { return "Redeemed" }

// Preview events mirror the read-only simulation entry points.
type PreviewSharesOutEvent struct{ SharesOut uint64 }

func (PreviewSharesOutEvent) EventName() string { return "PreviewSharesOut" }

type PreviewAssetsInEvent struct{ AssetsIn uint64 }

func (PreviewAssetsInEvent) EventName() string { return "PreviewAssetsIn" }

type PreviewAssetsOutEvent struct{ AssetsOut uint64 }

func (PreviewAssetsOutEvent) EventName() string { return "PreviewAssetsOut" }

type PreviewSharesInEvent struct{ SharesIn uint64 }

func (PreviewSharesInEvent) EventName() string { return "PreviewSharesIn" }

// ReservesAndWeightsEvent reports the interpolated pool state.
type ReservesAndWeightsEvent struct {
	AssetReserve uint64
	ShareReserve uint64
	AssetWeight  uint64
	ShareWeight  uint64
}

func (ReservesAndWeightsEvent) EventName() string { return "ReservesAndWeights" }
