// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockon-finance/lock-contracts/builtin/airdrop"
	"github.com/lockon-finance/lock-contracts/genesis"
	"github.com/lockon-finance/lock-contracts/lockon"
)

// allocationEntry is one row of the merkle command input, a JSON array
// of these.
type allocationEntry struct {
	Recipient lockon.Address           `json:"recipient"`
	Amount    *genesis.HexOrDecimal256 `json:"amount"`
}

type merkleProof struct {
	Recipient lockon.Address   `json:"recipient"`
	Amount    string           `json:"amount"`
	Proof     []lockon.Bytes32 `json:"proof"`
}

type merkleOutput struct {
	Root   lockon.Bytes32 `json:"root"`
	Proofs []merkleProof  `json:"proofs"`
}

func merkleAction(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return errors.New("no allocations file")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read allocations file")
	}
	var entries []allocationEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return errors.Wrap(err, "parse allocations file")
	}
	if len(entries) == 0 {
		return errors.New("allocation list is empty")
	}

	allocations := make([]airdrop.Allocation, len(entries))
	for i, entry := range entries {
		if entry.Amount == nil {
			return errors.Errorf("%v: amount must be set", entry.Recipient)
		}
		allocations[i] = airdrop.Allocation{Recipient: entry.Recipient, Amount: (*big.Int)(entry.Amount)}
	}
	tree := airdrop.NewTree(allocations)

	var only *lockon.Address
	if name := ctx.String(proofForFlag.Name); name != "" {
		addr, err := resolveAccount(name)
		if err != nil {
			return err
		}
		only = &addr
	}

	out := merkleOutput{Root: tree.Root()}
	for _, alloc := range allocations {
		if only != nil && alloc.Recipient != *only {
			continue
		}
		proof, ok := tree.Proof(alloc.Recipient, alloc.Amount)
		if !ok {
			return errors.Errorf("no leaf for %v", alloc.Recipient)
		}
		if proof == nil {
			proof = []lockon.Bytes32{}
		}
		out.Proofs = append(out.Proofs, merkleProof{alloc.Recipient, alloc.Amount.String(), proof})
	}
	if only != nil && len(out.Proofs) == 0 {
		return errors.Errorf("%v is not in the allocation list", only)
	}

	encoded, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
