package lbp

import (
	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/openfjord/fjord-lbp-go/lbp/math"
)

// TogglePause flips the pool's pause flag. Only the pool creator may
// call it. Returns the new paused state.
func (e *Engine) TogglePause(signer, poolAddress solanago.PublicKey) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return false, err
	}
	if signer != pool.Creator {
		return false, ErrUnauthorized
	}
	pool.Paused = !pool.Paused
	if err := e.store.set(poolAddress, pool); err != nil {
		return false, err
	}
	e.logger.Info("pool pause toggled",
		zap.Stringer("pool", poolAddress),
		zap.Bool("paused", pool.Paused),
	)
	return pool.Paused, nil
}

// ClosePool settles a pool after its sale window has elapsed. Anyone may
// call it, once. Swap fees go to the treasury's swap fee recipient, the
// platform fee is split across the treasury recipients, and the creator
// receives the raised assets and unsold shares. Purchased shares and
// accrued referral assets remain in the pool for redemption.
func (e *Engine) ClosePool(poolAddress solanago.PublicKey) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return err
	}
	if pool.Closed {
		return ErrClosingDisallowed
	}
	if e.clock.Now() < pool.SaleEndTime {
		return ErrClosingDisallowed
	}
	config, err := e.loadConfig()
	if err != nil {
		return err
	}
	treasury, err := e.loadTreasury()
	if err != nil {
		return err
	}

	assetBalance := e.ledger.Balance(poolAddress, pool.AssetToken)
	shareBalance := e.ledger.Balance(poolAddress, pool.ShareToken)

	raisedAssets, err := math.SafeSub(assetBalance, pool.TotalSwapFeesAsset)
	if err != nil {
		return err
	}
	platformFees := math.CalculateFee(raisedAssets, config.PlatformFee)

	creatorAssets, err := math.SafeSub(raisedAssets, platformFees)
	if err != nil {
		return err
	}
	creatorAssets, err = math.SafeSub(creatorAssets, pool.TotalReferred)
	if err != nil {
		return err
	}
	creatorShares, err := math.SafeSub(shareBalance, pool.TotalPurchased)
	if err != nil {
		return err
	}
	creatorShares, err = math.SafeSub(creatorShares, pool.TotalSwapFeesShare)
	if err != nil {
		return err
	}

	// Platform fee splits by recipient percentage; the rounding
	// remainder rides along with the swap fees.
	distributed := uint64(0)
	for _, recipient := range treasury.FeeRecipients {
		cut, err := math.MulDiv(platformFees, uint64(recipient.Percentage), math.BasisPointMax)
		if err != nil {
			return err
		}
		if cut == 0 {
			continue
		}
		if err := e.ledger.Transfer(pool.AssetToken, poolAddress, recipient.User, poolAddress, cut); err != nil {
			return err
		}
		distributed += cut
	}
	remainder := platformFees - distributed

	swapFeesAsset, err := math.SafeAdd(pool.TotalSwapFeesAsset, remainder)
	if err != nil {
		return err
	}
	if swapFeesAsset > 0 {
		if err := e.ledger.Transfer(pool.AssetToken, poolAddress, treasury.SwapFeeRecipient, poolAddress, swapFeesAsset); err != nil {
			return err
		}
	}
	if pool.TotalSwapFeesShare > 0 {
		if err := e.ledger.Transfer(pool.ShareToken, poolAddress, treasury.SwapFeeRecipient, poolAddress, pool.TotalSwapFeesShare); err != nil {
			return err
		}
	}
	if creatorAssets > 0 {
		if err := e.ledger.Transfer(pool.AssetToken, poolAddress, pool.Creator, poolAddress, creatorAssets); err != nil {
			return err
		}
	}
	if creatorShares > 0 {
		if err := e.ledger.Transfer(pool.ShareToken, poolAddress, pool.Creator, poolAddress, creatorShares); err != nil {
			return err
		}
	}

	pool.Closed = true
	if err := e.store.set(poolAddress, pool); err != nil {
		return err
	}

	e.logger.Info("pool closed",
		zap.Stringer("pool", poolAddress),
		zap.Uint64("raised_assets", raisedAssets),
		zap.Uint64("platform_fees", platformFees),
		zap.Uint64("creator_assets", creatorAssets),
		zap.Uint64("creator_shares", creatorShares),
	)
	e.emit(PoolClosedEvent{
		Pool:          poolAddress,
		PlatformFees:  platformFees,
		SwapFeesAsset: pool.TotalSwapFeesAsset,
		SwapFeesShare: pool.TotalSwapFeesShare,
	})
	return nil
}

// Redeem pays out a user's vested purchased shares and, when referred is
// set, the user's accrued referral assets. Only valid once the pool is
// closed. Returns the share and asset amounts released.
func (e *Engine) Redeem(user, poolAddress solanago.PublicKey, referred bool) (uint64, uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return 0, 0, err
	}
	if !pool.Closed {
		return 0, 0, ErrRedeemingDisallowed
	}
	userState, userStateAddress, err := e.loadUserState(user, poolAddress)
	if err != nil {
		return 0, 0, err
	}

	vested, err := vestedShares(pool, userState.PurchasedShares, e.clock.Now())
	if err != nil {
		return 0, 0, err
	}
	claimShares, err := math.SafeSub(vested, userState.RedeemedShares)
	if err != nil {
		return 0, 0, err
	}
	var claimAssets uint64
	if referred {
		claimAssets = userState.ReferredAssets
	}
	if claimShares == 0 && claimAssets == 0 {
		return 0, 0, ErrNothingToRedeem
	}

	if claimShares > 0 {
		if err := e.ledger.Transfer(pool.ShareToken, poolAddress, user, poolAddress, claimShares); err != nil {
			return 0, 0, err
		}
	}
	if claimAssets > 0 {
		if err := e.ledger.Transfer(pool.AssetToken, poolAddress, user, poolAddress, claimAssets); err != nil {
			return 0, 0, err
		}
		userState.ReferredAssets = 0
	}

	userState.RedeemedShares += claimShares
	if err := e.store.set(userStateAddress, userState); err != nil {
		return 0, 0, err
	}

	e.logger.Debug("redeemed",
		zap.Stringer("pool", poolAddress),
		zap.Stringer("user", user),
		zap.Uint64("shares", claimShares),
		zap.Uint64("referred_assets", claimAssets),
	)
	e.emit(RedeemedEvent{Pool: poolAddress, User: user, Shares: claimShares, ReferredAssets: claimAssets})
	return claimShares, claimAssets, nil
}

// vestedShares applies the pool's vesting schedule to a purchased
// balance. Pools without a schedule past the sale end vest everything at
// close.
func vestedShares(pool *LiquidityBootstrappingPool, purchased uint64, now int64) (uint64, error) {
	if pool.VestEnd <= pool.SaleEndTime || now >= pool.VestEnd {
		return purchased, nil
	}
	if now < pool.VestCliff {
		return 0, nil
	}
	duration := uint64(pool.VestEnd - pool.VestCliff)
	elapsed := uint64(now - pool.VestCliff)
	return math.MulDiv(purchased, elapsed, duration)
}
