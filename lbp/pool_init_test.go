package lbp

import (
	"strings"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/openfjord/fjord-lbp-go/lbp/math"
	"github.com/openfjord/fjord-lbp-go/ledger"
)

func TestInitializePool(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()
	params := env.defaultPoolParams()

	pool := env.createPool(params)

	record, err := env.engine.Pool(pool)
	require.NoError(t, err)
	require.Equal(t, env.creator, record.Creator)
	require.Equal(t, env.assetMint, record.AssetToken)
	require.Equal(t, env.shareMint, record.ShareToken)
	require.False(t, record.Closed)
	require.False(t, record.Paused)

	// Deposits moved from the creator into the pool.
	require.Equal(t, uint64(0), env.ledger.Balance(env.creator, env.assetMint))
	require.Equal(t, uint64(0), env.ledger.Balance(env.creator, env.shareMint))
	require.Equal(t, params.Assets, env.ledger.Balance(pool, env.assetMint))
	require.Equal(t, params.Shares, env.ledger.Balance(pool, env.shareMint))
}

func TestInitializePoolDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()
	params := env.defaultPoolParams()
	env.createPool(params)

	// Same (shares, assets, creator, salt) key.
	require.NoError(t, env.ledger.MintTo(env.assetMint, env.authority, env.creator, params.Assets))
	require.NoError(t, env.ledger.MintTo(env.shareMint, env.authority, env.creator, params.Shares))
	_, err := env.engine.InitializePool(env.creator, params)
	require.ErrorIs(t, err, ErrDuplicatePool)

	// A different salt keys a different pool.
	params.Salt = "second"
	_, err = env.engine.InitializePool(env.creator, params)
	require.NoError(t, err)
}

func TestInitializePoolValidation(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()

	tests := []struct {
		name   string
		mutate func(*PoolParams)
		want   error
	}{
		{"same mints", func(p *PoolParams) { p.ShareToken = p.AssetToken }, ErrInvalidAssetOrShare},
		{"sale ends too soon", func(p *PoolParams) { p.SaleEndTime = testStartTime + 3_600 }, ErrSalePeriodLow},
		{"sale too short", func(p *PoolParams) { p.SaleStartTime = p.SaleEndTime - 3_600 }, ErrSalePeriodLow},
		{"vest cliff inside sale", func(p *PoolParams) {
			p.VestEnd = p.SaleEndTime + 1_000
			p.VestCliff = p.SaleEndTime - 1
		}, ErrInvalidVestCliff},
		{"vest cliff past vest end", func(p *PoolParams) {
			p.VestEnd = p.SaleEndTime + 1_000
			p.VestCliff = p.SaleEndTime + 1_000
		}, ErrInvalidVestEnd},
		{"start weight too low", func(p *PoolParams) { p.StartWeightBasisPoints = 99 }, ErrInvalidWeightConfig},
		{"end weight too high", func(p *PoolParams) { p.EndWeightBasisPoints = 9_901 }, ErrInvalidWeightConfig},
		{"no assets", func(p *PoolParams) { p.Assets = 0; p.VirtualAssets = 0 }, ErrInvalidAssetValue},
		{"no shares", func(p *PoolParams) { p.Shares = 0; p.VirtualShares = 0 }, ErrInvalidShareValue},
		{"zero max share price", func(p *PoolParams) { p.MaxSharePrice = 0 }, ErrInvalidSharePrice},
		{"zero max shares out", func(p *PoolParams) { p.MaxSharesOut = 0 }, ErrInvalidMaxSharesOut},
		{"zero max assets in", func(p *PoolParams) { p.MaxAssetsIn = 0 }, ErrInvalidMaxAssetsIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := env.defaultPoolParams()
			tt.mutate(&params)
			_, err := env.engine.InitializePool(env.creator, params)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestInitializePoolSaltTooLong(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()

	params := env.defaultPoolParams()
	params.Salt = strings.Repeat("a", 40)
	require.NoError(t, env.ledger.MintTo(env.assetMint, env.authority, env.creator, params.Assets))
	require.NoError(t, env.ledger.MintTo(env.shareMint, env.authority, env.creator, params.Shares))

	_, err := env.engine.InitializePool(env.creator, params)
	require.ErrorIs(t, err, ErrInvalidSalt)

	// An oversized salt never lands on a shared fallback address, so a
	// second one fails the same way rather than colliding.
	params.Salt = strings.Repeat("b", 40)
	_, err = env.engine.InitializePool(env.creator, params)
	require.ErrorIs(t, err, ErrInvalidSalt)

	// A salt at the seed-length limit still derives a real pool.
	params.Salt = strings.Repeat("c", 32)
	pool, err := env.engine.InitializePool(env.creator, params)
	require.NoError(t, err)
	require.False(t, pool.IsZero())
}

func TestInitializePoolVirtualReservesOnly(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()

	params := env.defaultPoolParams()
	params.Assets = 0
	params.VirtualAssets = 500 * math.WAD

	pool := env.createPool(params)
	require.Equal(t, uint64(0), env.ledger.Balance(pool, env.assetMint))
	require.Equal(t, params.Shares, env.ledger.Balance(pool, env.shareMint))
}

func TestInitializePoolRequiresFunding(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()
	params := env.defaultPoolParams()

	// Creator holds nothing.
	_, err := env.engine.InitializePool(env.creator, params)
	require.ErrorIs(t, err, ErrInsufficientAssets)

	require.NoError(t, env.ledger.MintTo(env.assetMint, env.authority, env.creator, params.Assets))
	_, err = env.engine.InitializePool(env.creator, params)
	require.ErrorIs(t, err, ErrInsufficientShares)
}

func TestInitializePoolUnknownMint(t *testing.T) {
	env := newTestEnv(t)
	env.initConfig()

	params := env.defaultPoolParams()
	params.AssetToken = solanago.NewWallet().PublicKey()
	_, err := env.engine.InitializePool(env.creator, params)
	require.ErrorIs(t, err, ledger.ErrUnknownMint)
}
