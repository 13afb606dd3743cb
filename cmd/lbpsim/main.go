package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/openfjord/fjord-lbp-go/lbp"
	"github.com/openfjord/fjord-lbp-go/ledger"
	"github.com/openfjord/fjord-lbp-go/merkle"
)

// simClock lets the simulation step through the sale window without
// sleeping.
type simClock struct {
	now int64
}

func (c *simClock) Now() int64 { return c.now }

func main() {
	configPath := flag.String("config", "", "path to a simulation config file")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	if !*verbose {
		logger = logger.WithOptions(zap.IncreaseLevel(zap.InfoLevel))
	}
	defer logger.Sync()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *Config, logger *zap.Logger) error {
	clock := &simClock{now: time.Now().Unix()}

	authority := solanago.NewWallet().PublicKey()
	creator := solanago.NewWallet().PublicKey()
	feeCollector := solanago.NewWallet().PublicKey()
	assetMint := solanago.NewWallet().PublicKey()
	shareMint := solanago.NewWallet().PublicKey()

	buyers := make([]solanago.PublicKey, cfg.Buyers)
	for i := range buyers {
		buyers[i] = solanago.NewWallet().PublicKey()
	}

	tokenLedger := ledger.New()
	if _, err := tokenLedger.CreateMint(assetMint, authority, cfg.AssetDecimals); err != nil {
		return err
	}
	if _, err := tokenLedger.CreateMint(shareMint, authority, cfg.ShareDecimals); err != nil {
		return err
	}
	if err := tokenLedger.MintTo(assetMint, authority, creator, cfg.Assets); err != nil {
		return err
	}
	if err := tokenLedger.MintTo(shareMint, authority, creator, cfg.Shares); err != nil {
		return err
	}
	buyerFunding := cfg.BuyAmount * uint64(cfg.Steps)
	for _, buyer := range buyers {
		if err := tokenLedger.MintTo(assetMint, authority, buyer, buyerFunding); err != nil {
			return err
		}
	}

	engine := lbp.NewEngine(authority, tokenLedger,
		lbp.WithClock(clock),
		lbp.WithLogger(logger),
	)

	if err := engine.InitializeOwnerConfig(authority, lbp.OwnerConfigParams{
		Owner:            authority,
		SwapFeeRecipient: feeCollector,
		FeeRecipients:    []solanago.PublicKey{feeCollector},
		FeePercentages:   []uint16{10_000},
		PlatformFee:      cfg.PlatformFeeBips,
		ReferralFee:      cfg.ReferralFeeBips,
		SwapFee:          cfg.SwapFeeBips,
	}); err != nil {
		return err
	}

	var whitelistRoot [32]byte
	proofs := make(map[solanago.PublicKey]merkle.Proof)
	if cfg.Whitelist {
		participants := buyers
		if cfg.WhitelistFile != "" {
			data, err := os.ReadFile(cfg.WhitelistFile)
			if err != nil {
				return err
			}
			extra, err := merkle.ParticipantsFromJSON(data)
			if err != nil {
				return err
			}
			participants = append(append([]solanago.PublicKey{}, buyers...), extra...)
		}
		tree, err := merkle.NewTree(participants)
		if err != nil {
			return err
		}
		whitelistRoot = tree.Root()
		for _, buyer := range buyers {
			proof, ok := tree.ProofFor(buyer)
			if !ok {
				return fmt.Errorf("no whitelist proof for %s", buyer)
			}
			proofs[buyer] = proof
		}
	}

	saleStart := clock.now
	saleEnd := saleStart + cfg.SaleDurationSeconds
	pool, err := engine.InitializePool(creator, lbp.PoolParams{
		Salt:                   "lbpsim",
		AssetToken:             assetMint,
		ShareToken:             shareMint,
		Assets:                 cfg.Assets,
		Shares:                 cfg.Shares,
		VirtualAssets:          cfg.VirtualAssets,
		VirtualShares:          cfg.VirtualShares,
		MaxSharePrice:          cfg.MaxSharePrice,
		MaxSharesOut:           cfg.MaxSharesOut,
		MaxAssetsIn:            cfg.MaxAssetsIn,
		StartWeightBasisPoints: cfg.StartWeightBasisPoints,
		EndWeightBasisPoints:   cfg.EndWeightBasisPoints,
		SaleStartTime:          saleStart,
		SaleEndTime:            saleEnd,
		WhitelistMerkleRoot:    whitelistRoot,
		SellingAllowed:         cfg.SellingAllowed,
	})
	if err != nil {
		return err
	}
	logger.Info("pool created",
		zap.Stringer("pool", pool),
		zap.Int64("sale_start", saleStart),
		zap.Int64("sale_end", saleEnd),
	)

	referrer := buyers[0]
	for step := 1; step <= cfg.Steps; step++ {
		clock.now = saleStart + cfg.SaleDurationSeconds*int64(step)/int64(cfg.Steps+1)

		rw, err := engine.ReservesAndWeights(pool)
		if err != nil {
			return err
		}
		quote, err := engine.PreviewSharesOut(pool, cfg.BuyAmount)
		if err != nil {
			return err
		}
		logger.Info("sale step",
			zap.Int("step", step),
			zap.Uint64("asset_weight", rw.AssetWeight),
			zap.Uint64("share_weight", rw.ShareWeight),
			zap.Uint64("quoted_shares", quote),
		)

		for i, buyer := range buyers {
			var ref *solanago.PublicKey
			if i != 0 {
				ref = &referrer
			}
			sharesOut, err := engine.SwapExactAssetsForShares(buyer, pool, cfg.BuyAmount, 1, proofs[buyer], ref)
			if err != nil {
				logger.Warn("buy rejected",
					zap.Int("step", step),
					zap.Stringer("buyer", buyer),
					zap.Error(err),
				)
				continue
			}
			logger.Debug("buy filled",
				zap.Stringer("buyer", buyer),
				zap.Uint64("shares_out", sharesOut),
			)
		}
	}

	clock.now = saleEnd
	if err := engine.ClosePool(pool); err != nil {
		return err
	}

	for _, buyer := range buyers {
		shares, assets, err := engine.Redeem(buyer, pool, true)
		if err != nil {
			logger.Warn("redeem rejected", zap.Stringer("buyer", buyer), zap.Error(err))
			continue
		}
		logger.Info("redeemed",
			zap.Stringer("buyer", buyer),
			zap.Uint64("shares", shares),
			zap.Uint64("referral_assets", assets),
		)
	}

	logger.Info("sale settled",
		zap.Uint64("creator_assets", tokenLedger.Balance(creator, assetMint)),
		zap.Uint64("creator_shares", tokenLedger.Balance(creator, shareMint)),
		zap.Uint64("fee_collector_assets", tokenLedger.Balance(feeCollector, assetMint)),
		zap.Uint64("fee_collector_shares", tokenLedger.Balance(feeCollector, shareMint)),
	)
	return nil
}
