package lbp

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/openfjord/fjord-lbp-go/lbp/math"
)

// PreviewSharesOut quotes the share output for an exact asset input,
// net of the swap fee. No state is mutated.
func (e *Engine) PreviewSharesOut(poolAddress solanago.PublicKey, assetsIn uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	args, config, err := e.previewState(poolAddress)
	if err != nil {
		return 0, err
	}
	netIn, err := math.SafeSub(assetsIn, math.CalculateFee(assetsIn, config.SwapFee))
	if err != nil {
		return 0, err
	}
	sharesOut, err := math.PreviewSharesOut(args, netIn)
	if err != nil {
		return 0, err
	}
	e.emit(PreviewSharesOutEvent{SharesOut: sharesOut})
	return sharesOut, nil
}

// PreviewAssetsIn quotes the asset input required for an exact share
// output, gross of the swap fee.
func (e *Engine) PreviewAssetsIn(poolAddress solanago.PublicKey, sharesOut uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	args, config, err := e.previewState(poolAddress)
	if err != nil {
		return 0, err
	}
	assetsIn, err := math.PreviewAssetsIn(args, sharesOut)
	if err != nil {
		return 0, err
	}
	assetsIn, err = math.SafeAdd(assetsIn, math.CalculateFee(assetsIn, config.SwapFee))
	if err != nil {
		return 0, err
	}
	e.emit(PreviewAssetsInEvent{AssetsIn: assetsIn})
	return assetsIn, nil
}

// PreviewAssetsOut quotes the asset output for an exact share input,
// net of the swap fee.
func (e *Engine) PreviewAssetsOut(poolAddress solanago.PublicKey, sharesIn uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	args, config, err := e.previewState(poolAddress)
	if err != nil {
		return 0, err
	}
	netIn, err := math.SafeSub(sharesIn, math.CalculateFee(sharesIn, config.SwapFee))
	if err != nil {
		return 0, err
	}
	assetsOut, err := math.PreviewAssetsOut(args, netIn)
	if err != nil {
		return 0, err
	}
	e.emit(PreviewAssetsOutEvent{AssetsOut: assetsOut})
	return assetsOut, nil
}

// PreviewSharesIn quotes the share input required for an exact asset
// output, gross of the swap fee.
func (e *Engine) PreviewSharesIn(poolAddress solanago.PublicKey, assetsOut uint64) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	args, config, err := e.previewState(poolAddress)
	if err != nil {
		return 0, err
	}
	sharesIn, err := math.PreviewSharesIn(args, assetsOut)
	if err != nil {
		return 0, err
	}
	sharesIn, err = math.SafeAdd(sharesIn, math.CalculateFee(sharesIn, config.SwapFee))
	if err != nil {
		return 0, err
	}
	e.emit(PreviewSharesInEvent{SharesIn: sharesIn})
	return sharesIn, nil
}

// ReservesAndWeights reports the pool's effective reserves and the
// time-interpolated weights at the current clock.
func (e *Engine) ReservesAndWeights(poolAddress solanago.PublicKey) (math.ReservesAndWeights, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	args, _, err := e.previewState(poolAddress)
	if err != nil {
		return math.ReservesAndWeights{}, err
	}
	rw, err := math.ComputeReservesAndWeights(args)
	if err != nil {
		return math.ReservesAndWeights{}, err
	}
	e.emit(ReservesAndWeightsEvent{
		AssetReserve: rw.AssetReserve,
		ShareReserve: rw.ShareReserve,
		AssetWeight:  rw.AssetWeight,
		ShareWeight:  rw.ShareWeight,
	})
	return rw, nil
}

func (e *Engine) previewState(poolAddress solanago.PublicKey) (*math.PreviewAmountArgs, *OwnerConfig, error) {
	pool, err := e.loadPool(poolAddress)
	if err != nil {
		return nil, nil, err
	}
	config, err := e.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	args, err := e.previewArgs(pool, poolAddress)
	if err != nil {
		return nil, nil, err
	}
	return args, config, nil
}
