// Package merkle implements the whitelist commitment scheme used by
// liquidity bootstrapping pools: a keccak-256 Merkle tree over participant
// addresses, with sorted-pair hashing so proofs carry no ordering bits.
package merkle

import (
	"bytes"
	"errors"
	"sort"

	solanago "github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/sha3"
)

// Root is a 32-byte tree commitment. An all-zero root means "no whitelist".
type Root = [32]byte

// Proof is the sibling path from a leaf to the root.
type Proof = [][32]byte

var ErrEmptyWhitelist = errors.New("whitelist has no participants")

func keccak256(chunks ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, chunk := range chunks {
		h.Write(chunk)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// Leaf hashes a participant identity. The leaf preimage is the base58
// string form of the address, matching the off-chain tree generator.
func Leaf(participant solanago.PublicKey) [32]byte {
	return keccak256([]byte(participant.String()))
}

// Verify walks proof from leaf to root, hashing each sorted pair, and
// reports whether the computed root matches.
func Verify(proof Proof, root Root, leaf [32]byte) bool {
	computed := leaf
	for _, sibling := range proof {
		if bytes.Compare(computed[:], sibling[:]) <= 0 {
			computed = keccak256(computed[:], sibling[:])
		} else {
			computed = keccak256(sibling[:], computed[:])
		}
	}
	return computed == root
}

// Tree is a full whitelist tree, kept around to produce proofs for
// individual participants.
type Tree struct {
	leaves []([32]byte)
	levels [][][32]byte
}

// NewTree builds a tree over the given participants. Duplicate addresses
// collapse into a single leaf.
func NewTree(participants []solanago.PublicKey) (*Tree, error) {
	if len(participants) == 0 {
		return nil, ErrEmptyWhitelist
	}

	seen := make(map[[32]byte]struct{}, len(participants))
	leaves := make([][32]byte, 0, len(participants))
	for _, p := range participants {
		leaf := Leaf(p)
		if _, ok := seen[leaf]; ok {
			continue
		}
		seen[leaf] = struct{}{}
		leaves = append(leaves, leaf)
	}
	sort.Slice(leaves, func(i, j int) bool {
		return bytes.Compare(leaves[i][:], leaves[j][:]) < 0
	})

	t := &Tree{leaves: leaves}
	level := leaves
	t.levels = append(t.levels, level)
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				// odd node is promoted unchanged
				next = append(next, level[i])
				continue
			}
			next = append(next, hashPair(level[i], level[i+1]))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t, nil
}

func hashPair(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return keccak256(a[:], b[:])
	}
	return keccak256(b[:], a[:])
}

// Root returns the tree commitment.
func (t *Tree) Root() Root {
	return t.levels[len(t.levels)-1][0]
}

// ProofFor returns the sibling path for a participant, or false if the
// participant is not in the tree.
func (t *Tree) ProofFor(participant solanago.PublicKey) (Proof, bool) {
	target := Leaf(participant)
	index := -1
	for i, leaf := range t.leaves {
		if leaf == target {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, false
	}

	// Always non-nil for a member; a one-leaf tree proves membership with
	// an empty path.
	proof := Proof{}
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := index ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		index /= 2
	}
	return proof, true
}
