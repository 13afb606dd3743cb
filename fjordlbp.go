package fjordlbp

import (
	"github.com/openfjord/fjord-lbp-go/lbp"
	"github.com/openfjord/fjord-lbp-go/ledger"
	"github.com/openfjord/fjord-lbp-go/merkle"
)

// NewEngine creates a liquidity bootstrapping pool engine.
//
// Example:
//
// engine := NewEngine(authority, NewLedger(), lbp.WithClock(clock))
//
// engine.InitializePool(creator, params)
//
// engine.SwapExactAssetsForShares(user, pool, assetsIn, minSharesOut, proof, nil)
var NewEngine = lbp.NewEngine

// NewLedger creates an in-memory SPL-style token ledger for the engine
// to settle against.
var NewLedger = ledger.New

// NewWhitelist builds a Merkle tree over participant addresses.
//
// Example:
//
// tree, _ := NewWhitelist(participants)
//
// proof, _ := tree.ProofFor(participant)
var NewWhitelist = merkle.NewTree
