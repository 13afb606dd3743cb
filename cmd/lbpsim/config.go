package main

import (
	"errors"

	"github.com/spf13/viper"
)

// Config drives one simulated sale.
type Config struct {
	AssetDecimals uint8 `mapstructure:"asset_decimals"`
	ShareDecimals uint8 `mapstructure:"share_decimals"`

	Assets        uint64 `mapstructure:"assets"`
	Shares        uint64 `mapstructure:"shares"`
	VirtualAssets uint64 `mapstructure:"virtual_assets"`
	VirtualShares uint64 `mapstructure:"virtual_shares"`

	MaxSharePrice uint64 `mapstructure:"max_share_price"`
	MaxSharesOut  uint64 `mapstructure:"max_shares_out"`
	MaxAssetsIn   uint64 `mapstructure:"max_assets_in"`

	StartWeightBasisPoints uint16 `mapstructure:"start_weight_bps"`
	EndWeightBasisPoints   uint16 `mapstructure:"end_weight_bps"`

	SaleDurationSeconds int64 `mapstructure:"sale_duration_seconds"`

	PlatformFeeBips uint16 `mapstructure:"platform_fee_bps"`
	ReferralFeeBips uint16 `mapstructure:"referral_fee_bps"`
	SwapFeeBips     uint16 `mapstructure:"swap_fee_bps"`

	Buyers         int    `mapstructure:"buyers"`
	BuyAmount      uint64 `mapstructure:"buy_amount"`
	Steps          int    `mapstructure:"steps"`
	SellingAllowed bool   `mapstructure:"selling_allowed"`
	Whitelist      bool   `mapstructure:"whitelist"`
	WhitelistFile  string `mapstructure:"whitelist_file"`
}

const (
	defaultAssets        = 1_000_000_000_000     // 1M tokens at 6 decimals
	defaultShares        = 1_000_000_000_000_000 // 1M tokens at 9 decimals
	defaultSaleDuration  = 3 * 86_400
	defaultMaxSharePrice = 10_000_000_000
	defaultBuyers        = 8
	defaultBuyAmount     = 5_000_000_000
	defaultSteps         = 24
)

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"asset_decimals":        6,
		"share_decimals":        9,
		"assets":                defaultAssets,
		"shares":                defaultShares,
		"virtual_assets":        0,
		"virtual_shares":        0,
		"max_share_price":       defaultMaxSharePrice,
		"max_shares_out":        defaultShares,
		"max_assets_in":         defaultAssets * 10,
		"start_weight_bps":      9_000,
		"end_weight_bps":        1_000,
		"sale_duration_seconds": defaultSaleDuration,
		"platform_fee_bps":      100,
		"referral_fee_bps":      50,
		"swap_fee_bps":          30,
		"buyers":                defaultBuyers,
		"buy_amount":            defaultBuyAmount,
		"steps":                 defaultSteps,
		"selling_allowed":       true,
		"whitelist":             false,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.Buyers <= 0 {
		return errors.New("buyers must be positive")
	}
	if cfg.Steps <= 0 {
		return errors.New("steps must be positive")
	}
	if cfg.BuyAmount == 0 {
		return errors.New("buy_amount must be positive")
	}
	if cfg.SaleDurationSeconds < 86_400 {
		return errors.New("sale_duration_seconds must cover at least one day")
	}
	return nil
}
