package lbp

import "errors"

// Pool creation errors.
var (
	ErrInvalidAssetOrShare = errors.New("asset and share token mints must be different")
	ErrSalePeriodLow       = errors.New("sale period is too low")
	ErrInvalidVestCliff    = errors.New("vesting cliff must not precede sale end")
	ErrInvalidVestEnd      = errors.New("vesting end must be greater than vesting cliff")
	ErrInvalidWeightConfig = errors.New("invalid start or end weight")
	ErrInvalidAssetValue   = errors.New("assets and virtual assets cannot both be zero")
	ErrInvalidShareValue   = errors.New("shares and virtual shares cannot both be zero")
	ErrInvalidSharePrice   = errors.New("max share price cannot be zero")
	ErrInvalidMaxSharesOut = errors.New("max shares out cannot be zero")
	ErrInvalidMaxAssetsIn  = errors.New("max assets in cannot be zero")
	ErrInsufficientAssets  = errors.New("insufficient assets to transfer")
	ErrInsufficientShares  = errors.New("insufficient shares to transfer")
	ErrDuplicatePool       = errors.New("pool already exists for these seeds")
	ErrInvalidSalt         = errors.New("salt exceeds the maximum seed length")
)

// Trade errors.
var (
	ErrPoolPaused        = errors.New("pool is paused")
	ErrTradingDisallowed = errors.New("trading is outside the sale window")
	ErrSellingDisallowed = errors.New("selling is not allowed in this pool")
	ErrWhitelistProof    = errors.New("whitelist proof verification failed")
	ErrSlippageExceeded  = errors.New("slippage bound exceeded")
	ErrZeroSlippage      = errors.New("slippage minimum cannot be zero")
	ErrAssetsInExceeded  = errors.New("pool assets-in cap exceeded")
	ErrSharesOutExceeded = errors.New("pool shares-out cap exceeded")
)

// Lifecycle errors.
var (
	ErrClosingDisallowed   = errors.New("pool cannot be closed")
	ErrRedeemingDisallowed = errors.New("pool is not closed yet")
	ErrNothingToRedeem     = errors.New("nothing to redeem")
)

// Access control and configuration errors.
var (
	ErrUnauthorized         = errors.New("caller is not authorized")
	ErrMaxFeeExceeded       = errors.New("fee exceeds maximum basis points")
	ErrInvalidFeeRecipients = errors.New("fee recipients and percentages mismatch")
	ErrConfigInitialized    = errors.New("owner config already initialized")
	ErrConfigMissing        = errors.New("owner config not initialized")
	ErrPoolNotFound         = errors.New("pool not found")
)
