package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/openfjord/fjord-lbp-go/lbp/math"
	"github.com/openfjord/fjord-lbp-go/merkle"
)

// beforeTokenSwap runs the common trade preconditions in order: pause
// flag, sale window, sell permission, whitelist gate. Each failure is a
// distinct terminal error.
func (e *Engine) beforeTokenSwap(pool *LiquidityBootstrappingPool, user solanago.PublicKey, proof merkle.Proof, isSell bool) error {
	if pool.Paused {
		return ErrPoolPaused
	}
	now := e.clock.Now()
	if now < pool.SaleStartTime || now >= pool.SaleEndTime {
		return ErrTradingDisallowed
	}
	if isSell && !pool.SellingAllowed {
		return ErrSellingDisallowed
	}
	if pool.Whitelisted() {
		if proof == nil || !merkle.Verify(proof, pool.WhitelistMerkleRoot, merkle.Leaf(user)) {
			return ErrWhitelistProof
		}
	}
	return nil
}

// previewArgs snapshots the pool for the pricing math.
func (e *Engine) previewArgs(pool *LiquidityBootstrappingPool, poolAddress solanago.PublicKey) (*math.PreviewAmountArgs, error) {
	assetMint, err := e.ledger.Mint(pool.AssetToken)
	if err != nil {
		return nil, err
	}
	shareMint, err := e.ledger.Mint(pool.ShareToken)
	if err != nil {
		return nil, err
	}
	return &math.PreviewAmountArgs{
		Assets:                 e.ledger.Balance(poolAddress, pool.AssetToken),
		VirtualAssets:          pool.VirtualAssets,
		AssetTokenDecimals:     assetMint.Decimals,
		Shares:                 e.ledger.Balance(poolAddress, pool.ShareToken),
		VirtualShares:          pool.VirtualShares,
		ShareTokenDecimals:     shareMint.Decimals,
		TotalPurchased:         pool.TotalPurchased,
		MaxSharePrice:          pool.MaxSharePrice,
		CurrentTime:            e.clock.Now(),
		SaleStartTime:          pool.SaleStartTime,
		SaleEndTime:            pool.SaleEndTime,
		StartWeightBasisPoints: pool.StartWeightBasisPoints,
		EndWeightBasisPoints:   pool.EndWeightBasisPoints,
	}, nil
}

// SwapExactAssetsForShares swaps an exact asset input for at least
// minSharesOut shares. Returns the realized share amount.
func (e *Engine) SwapExactAssetsForShares(user, poolAddress solanago.PublicKey, assetsIn, minSharesOut uint64, proof merkle.Proof, referrer *solanago.PublicKey) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return 0, err
	}
	if err := e.beforeTokenSwap(pool, user, proof, false); err != nil {
		return 0, err
	}
	if minSharesOut == 0 {
		return 0, ErrZeroSlippage
	}
	config, err := e.loadConfig()
	if err != nil {
		return 0, err
	}
	args, err := e.previewArgs(pool, poolAddress)
	if err != nil {
		return 0, err
	}

	swapFees := math.CalculateFee(assetsIn, config.SwapFee)
	netIn, err := math.SafeSub(assetsIn, swapFees)
	if err != nil {
		return 0, err
	}
	sharesOut, err := math.PreviewSharesOut(args, netIn)
	if err != nil {
		return 0, err
	}
	if sharesOut < minSharesOut {
		return 0, ErrSlippageExceeded
	}

	if err := e.commitBuy(pool, poolAddress, user, config, assetsIn, sharesOut, swapFees, referrer); err != nil {
		return 0, err
	}
	return sharesOut, nil
}

// SwapAssetsForExactShares swaps at most maxAssetsIn assets for an exact
// share output. Returns the realized gross asset amount.
func (e *Engine) SwapAssetsForExactShares(user, poolAddress solanago.PublicKey, sharesOut, maxAssetsIn uint64, proof merkle.Proof, referrer *solanago.PublicKey) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return 0, err
	}
	if err := e.beforeTokenSwap(pool, user, proof, false); err != nil {
		return 0, err
	}
	config, err := e.loadConfig()
	if err != nil {
		return 0, err
	}
	args, err := e.previewArgs(pool, poolAddress)
	if err != nil {
		return 0, err
	}

	assetsIn, err := math.PreviewAssetsIn(args, sharesOut)
	if err != nil {
		return 0, err
	}
	swapFees := math.CalculateFee(assetsIn, config.SwapFee)
	assetsIn, err = math.SafeAdd(assetsIn, swapFees)
	if err != nil {
		return 0, err
	}
	if assetsIn > maxAssetsIn {
		return 0, ErrSlippageExceeded
	}

	if err := e.commitBuy(pool, poolAddress, user, config, assetsIn, sharesOut, swapFees, referrer); err != nil {
		return 0, err
	}
	return assetsIn, nil
}

// SwapExactSharesForAssets swaps an exact share input for at least
// minAssetsOut assets. Returns the realized asset amount.
func (e *Engine) SwapExactSharesForAssets(user, poolAddress solanago.PublicKey, sharesIn, minAssetsOut uint64, proof merkle.Proof) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return 0, err
	}
	if err := e.beforeTokenSwap(pool, user, proof, true); err != nil {
		return 0, err
	}
	if minAssetsOut == 0 {
		return 0, ErrZeroSlippage
	}
	config, err := e.loadConfig()
	if err != nil {
		return 0, err
	}
	args, err := e.previewArgs(pool, poolAddress)
	if err != nil {
		return 0, err
	}

	swapFees := math.CalculateFee(sharesIn, config.SwapFee)
	netIn, err := math.SafeSub(sharesIn, swapFees)
	if err != nil {
		return 0, err
	}
	assetsOut, err := math.PreviewAssetsOut(args, netIn)
	if err != nil {
		return 0, err
	}
	if assetsOut < minAssetsOut {
		return 0, ErrSlippageExceeded
	}

	if err := e.commitSell(pool, poolAddress, user, assetsOut, sharesIn, swapFees); err != nil {
		return 0, err
	}
	return assetsOut, nil
}

// SwapSharesForExactAssets swaps at most maxSharesIn shares for an exact
// asset output. Returns the realized gross share amount.
func (e *Engine) SwapSharesForExactAssets(user, poolAddress solanago.PublicKey, assetsOut, maxSharesIn uint64, proof merkle.Proof) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return 0, err
	}
	if err := e.beforeTokenSwap(pool, user, proof, true); err != nil {
		return 0, err
	}
	config, err := e.loadConfig()
	if err != nil {
		return 0, err
	}
	args, err := e.previewArgs(pool, poolAddress)
	if err != nil {
		return 0, err
	}

	sharesIn, err := math.PreviewSharesIn(args, assetsOut)
	if err != nil {
		return 0, err
	}
	swapFees := math.CalculateFee(sharesIn, config.SwapFee)
	sharesIn, err = math.SafeAdd(sharesIn, swapFees)
	if err != nil {
		return 0, err
	}
	if sharesIn > maxSharesIn {
		return 0, ErrSlippageExceeded
	}

	if err := e.commitSell(pool, poolAddress, user, assetsOut, sharesIn, swapFees); err != nil {
		return 0, err
	}
	return sharesIn, nil
}

// commitBuy applies a validated buy: cap checks, referral accrual, the
// asset transfer, and the state writes, in that order. assetsIn is gross
// of swapFees.
func (e *Engine) commitBuy(pool *LiquidityBootstrappingPool, poolAddress, user solanago.PublicKey, config *OwnerConfig, assetsIn, sharesOut, swapFees uint64, referrer *solanago.PublicKey) error {
	assets := e.ledger.Balance(poolAddress, pool.AssetToken)
	shares := e.ledger.Balance(poolAddress, pool.ShareToken)

	netIn := assetsIn - swapFees
	assetsAfter, err := math.SafeAdd(assets, netIn)
	if err != nil {
		return err
	}
	if assetsAfter >= pool.MaxAssetsIn {
		return ErrAssetsInExceeded
	}
	totalPurchasedAfter, err := math.SafeAdd(pool.TotalPurchased, sharesOut)
	if err != nil {
		return err
	}
	if totalPurchasedAfter >= pool.MaxSharesOut || totalPurchasedAfter >= shares {
		return ErrSharesOutExceeded
	}

	userState, userStateAddress, err := e.loadUserState(user, poolAddress)
	if err != nil {
		return err
	}

	var referrerState *UserStateInPool
	var referrerStateAddress solanago.PublicKey
	if referrer != nil && config.ReferralFee != 0 {
		referrerState, referrerStateAddress, err = e.loadUserState(*referrer, poolAddress)
		if err != nil {
			return err
		}
		if referrerStateAddress == userStateAddress {
			referrerState = userState
		}
		assetsReferred := math.CalculateFee(assetsIn, config.ReferralFee)
		pool.TotalReferred, err = math.SafeAdd(pool.TotalReferred, assetsReferred)
		if err != nil {
			return err
		}
		referrerState.ReferredAssets, err = math.SafeAdd(referrerState.ReferredAssets, assetsReferred)
		if err != nil {
			return err
		}
	}

	if err := e.ledger.Transfer(pool.AssetToken, user, poolAddress, user, assetsIn); err != nil {
		return err
	}

	pool.TotalSwapFeesAsset, err = math.SafeAdd(pool.TotalSwapFeesAsset, swapFees)
	if err != nil {
		return err
	}
	pool.TotalPurchased = totalPurchasedAfter
	userState.PurchasedShares, err = math.SafeAdd(userState.PurchasedShares, sharesOut)
	if err != nil {
		return err
	}

	if err := e.store.set(poolAddress, pool); err != nil {
		return err
	}
	if err := e.store.set(userStateAddress, userState); err != nil {
		return err
	}
	if referrerState != nil && referrerStateAddress != userStateAddress {
		if err := e.store.set(referrerStateAddress, referrerState); err != nil {
			return err
		}
	}

	e.logger.Debug("buy executed",
		zap.Stringer("pool", poolAddress),
		zap.Stringer("user", user),
		zap.Uint64("assets_in", assetsIn),
		zap.Uint64("shares_out", sharesOut),
		zap.Uint64("swap_fee", swapFees),
	)
	e.emit(BuyEvent{Pool: poolAddress, User: user, Assets: assetsIn, Shares: sharesOut, SwapFee: swapFees})
	return nil
}

// commitSell applies a validated sell. sharesIn is gross of swapFees and
// is burned from the seller's purchased balance; only assets move on the
// ledger.
func (e *Engine) commitSell(pool *LiquidityBootstrappingPool, poolAddress, user solanago.PublicKey, assetsOut, sharesIn, swapFees uint64) error {
	assets := e.ledger.Balance(poolAddress, pool.AssetToken)
	shares := e.ledger.Balance(poolAddress, pool.ShareToken)

	if assets >= pool.MaxAssetsIn {
		return ErrAssetsInExceeded
	}
	if pool.TotalPurchased >= pool.MaxSharesOut || pool.TotalPurchased >= shares {
		return ErrSharesOutExceeded
	}

	userState, userStateAddress, err := e.loadUserState(user, poolAddress)
	if err != nil {
		return err
	}
	if userState.PurchasedShares < sharesIn {
		return ErrInsufficientShares
	}
	if pool.TotalPurchased < sharesIn {
		return ErrInsufficientShares
	}

	if err := e.ledger.Transfer(pool.AssetToken, poolAddress, user, poolAddress, assetsOut); err != nil {
		return err
	}

	userState.PurchasedShares -= sharesIn
	pool.TotalPurchased -= sharesIn
	pool.TotalSwapFeesShare, err = math.SafeAdd(pool.TotalSwapFeesShare, swapFees)
	if err != nil {
		return err
	}

	if err := e.store.set(poolAddress, pool); err != nil {
		return err
	}
	if err := e.store.set(userStateAddress, userState); err != nil {
		return err
	}

	e.logger.Debug("sell executed",
		zap.Stringer("pool", poolAddress),
		zap.Stringer("user", user),
		zap.Uint64("shares_in", sharesIn),
		zap.Uint64("assets_out", assetsOut),
		zap.Uint64("swap_fee", swapFees),
	)
	e.emit(SellEvent{Pool: poolAddress, User: user, Shares: sharesIn, Assets: assetsOut, SwapFee: swapFees})
	return nil
}
