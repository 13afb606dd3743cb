package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// PoolParams carries every initialize_pool argument.
type PoolParams struct {
	Salt       string
	AssetToken solanago.PublicKey
	ShareToken solanago.PublicKey

	// Deposits moved from the creator into the pool at creation.
	Assets uint64
	Shares uint64

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

	WhitelistMerkleRoot [32]byte
	SellingAllowed      bool
}

// InitializePool validates the sale parameters, deposits the creator's
// tokens into pool-owned accounts, and persists the pool record. Returns
// the new pool's address.
func (e *Engine) InitializePool(creator solanago.PublicKey, params PoolParams) (solanago.PublicKey, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if params.AssetToken == params.ShareToken {
		return solanago.PublicKey{}, ErrInvalidAssetOrShare
	}

	now := e.clock.Now()
	if now+OneDaySeconds > params.SaleEndTime || params.SaleEndTime-params.SaleStartTime < OneDaySeconds {
		return solanago.PublicKey{}, ErrSalePeriodLow
	}
	if params.SaleEndTime < params.VestEnd {
		if params.SaleEndTime > params.VestCliff {
			return solanago.PublicKey{}, ErrInvalidVestCliff
		}
		if params.VestCliff >= params.VestEnd {
			return solanago.PublicKey{}, ErrInvalidVestEnd
		}
	}
	if params.StartWeightBasisPoints < MinWeightBasisPoints || params.StartWeightBasisPoints > MaxWeightBasisPoints ||
		params.EndWeightBasisPoints < MinWeightBasisPoints || params.EndWeightBasisPoints > MaxWeightBasisPoints {
		return solanago.PublicKey{}, ErrInvalidWeightConfig
	}
	if params.Assets == 0 && params.VirtualAssets == 0 {
		return solanago.PublicKey{}, ErrInvalidAssetValue
	}
	if params.Shares == 0 && params.VirtualShares == 0 {
		return solanago.PublicKey{}, ErrInvalidShareValue
	}
	if params.MaxSharePrice == 0 {
		return solanago.PublicKey{}, ErrInvalidSharePrice
	}
	if params.MaxSharesOut == 0 {
		return solanago.PublicKey{}, ErrInvalidMaxSharesOut
	}
	if params.MaxAssetsIn == 0 {
		return solanago.PublicKey{}, ErrInvalidMaxAssetsIn
	}

	poolAddress, bump, err := DerivePoolAddress(params.ShareToken, params.AssetToken, creator, params.Salt)
	if err != nil {
		return solanago.PublicKey{}, err
	}
	if e.store.has(poolAddress) {
		return solanago.PublicKey{}, ErrDuplicatePool
	}

	if _, err := e.ledger.Mint(params.AssetToken); err != nil {
		return solanago.PublicKey{}, err
	}
	if _, err := e.ledger.Mint(params.ShareToken); err != nil {
		return solanago.PublicKey{}, err
	}
	if e.ledger.Balance(creator, params.AssetToken) < params.Assets {
		return solanago.PublicKey{}, ErrInsufficientAssets
	}
	if e.ledger.Balance(creator, params.ShareToken) < params.Shares {
		return solanago.PublicKey{}, ErrInsufficientShares
	}

	if err := e.ledger.Transfer(params.AssetToken, creator, poolAddress, creator, params.Assets); err != nil {
		return solanago.PublicKey{}, err
	}
	if err := e.ledger.Transfer(params.ShareToken, creator, poolAddress, creator, params.Shares); err != nil {
		return solanago.PublicKey{}, err
	}

	pool := LiquidityBootstrappingPool{
		AssetToken:             params.AssetToken,
		ShareToken:             params.ShareToken,
		Creator:                creator,
		Salt:                   params.Salt,
		VirtualAssets:          params.VirtualAssets,
		VirtualShares:          params.VirtualShares,
		MaxSharePrice:          params.MaxSharePrice,
		MaxSharesOut:           params.MaxSharesOut,
		MaxAssetsIn:            params.MaxAssetsIn,
		StartWeightBasisPoints: params.StartWeightBasisPoints,
		EndWeightBasisPoints:   params.EndWeightBasisPoints,
		SaleStartTime:          params.SaleStartTime,
		SaleEndTime:            params.SaleEndTime,
		VestCliff:              params.VestCliff,
		VestEnd:                params.VestEnd,
		WhitelistMerkleRoot:    params.WhitelistMerkleRoot,
		SellingAllowed:         params.SellingAllowed,
		Bump:                   bump,
	}
	if err := e.store.set(poolAddress, &pool); err != nil {
		return solanago.PublicKey{}, err
	}

	e.logger.Info("pool created",
		zap.Stringer("pool", poolAddress),
		zap.Stringer("creator", creator),
		zap.Uint64("assets", params.Assets),
		zap.Uint64("shares", params.Shares),
		zap.Int64("sale_start", params.SaleStartTime),
		zap.Int64("sale_end", params.SaleEndTime),
	)
	e.emit(PoolCreatedEvent{Pool: poolAddress})
	return poolAddress, nil
}
