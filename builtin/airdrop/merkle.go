// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package airdrop

import (
	"bytes"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/lockon-finance/lock-contracts/lockon"
)

// Allocation grants a recipient a fixed claimable amount. Slices of
// allocations feed both the list distributor and the merkle tree.
type Allocation struct {
	Recipient lockon.Address
	Amount    *big.Int
}

// Leaf returns the tree leaf of an allocation: the double keccak of the
// recipient concatenated with the amount as a 32 byte word. The double
// hash keeps leaves from colliding with interior pair hashes.
func Leaf(recipient lockon.Address, amount *big.Int) lockon.Bytes32 {
	word := lockon.BytesToBytes32(amount.Bytes())
	inner := crypto.Keccak256(recipient.Bytes(), word.Bytes())
	return lockon.BytesToBytes32(crypto.Keccak256(inner))
}

// hashPair hashes two nodes in byte order, so a proof carries no
// left/right flags.
func hashPair(a, b lockon.Bytes32) lockon.Bytes32 {
	if bytes.Compare(a.Bytes(), b.Bytes()) > 0 {
		a, b = b, a
	}
	return lockon.BytesToBytes32(crypto.Keccak256(a.Bytes(), b.Bytes()))
}

// VerifyProof folds the sibling path over the leaf and compares the
// result against the root.
func VerifyProof(leaf lockon.Bytes32, proof []lockon.Bytes32, root lockon.Bytes32) bool {
	computed := leaf
	for _, sibling := range proof {
		computed = hashPair(computed, sibling)
	}
	return computed == root
}

// Tree is a merkle tree over a fixed allocation list. An odd node at
// the end of a layer is promoted unhashed to the next one.
type Tree struct {
	layers [][]lockon.Bytes32
	index  map[lockon.Bytes32]int
}

// NewTree builds the tree of an allocation list. Leaves keep the input
// order, the recipient/amount pair must be unique per list.
func NewTree(allocations []Allocation) *Tree {
	leaves := make([]lockon.Bytes32, len(allocations))
	index := make(map[lockon.Bytes32]int, len(allocations))
	for i, a := range allocations {
		leaves[i] = Leaf(a.Recipient, a.Amount)
		if _, ok := index[leaves[i]]; !ok {
			index[leaves[i]] = i
		}
	}

	layers := [][]lockon.Bytes32{leaves}
	for level := leaves; len(level) > 1; {
		next := make([]lockon.Bytes32, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				break
			}
			next = append(next, hashPair(level[i], level[i+1]))
		}
		layers = append(layers, next)
		level = next
	}
	return &Tree{layers: layers, index: index}
}

// Root returns the tree root, zero for an empty tree.
func (t *Tree) Root() lockon.Bytes32 {
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return lockon.Bytes32{}
	}
	return top[0]
}

// Proof returns the sibling path of an allocation, or false when the
// recipient/amount pair is not in the tree.
func (t *Tree) Proof(recipient lockon.Address, amount *big.Int) ([]lockon.Bytes32, bool) {
	idx, ok := t.index[Leaf(recipient, amount)]
	if !ok {
		return nil, false
	}

	proof := []lockon.Bytes32{}
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}
	return proof, true
}
