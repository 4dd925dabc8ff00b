// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockon-finance/lock-contracts/builtin"
	"github.com/lockon-finance/lock-contracts/builtin/claims"
	"github.com/lockon-finance/lock-contracts/builtin/indexstaking"
	"github.com/lockon-finance/lock-contracts/builtin/lockstaking"
	"github.com/lockon-finance/lock-contracts/genesis"
	"github.com/lockon-finance/lock-contracts/lockon"
)

// signedClaim is the sign command output, everything a claim
// transaction needs.
type signedClaim struct {
	Contract                string         `json:"contract"`
	ChainTag                byte           `json:"chainTag"`
	RequestID               string         `json:"requestId"`
	Beneficiary             lockon.Address `json:"beneficiary"`
	StakeToken              lockon.Address `json:"stakeToken"`
	CumulativePendingReward string         `json:"cumulativePendingReward,omitempty"`
	ClaimAmount             string         `json:"claimAmount"`
	Digest                  lockon.Bytes32 `json:"digest"`
	Signature               string         `json:"signature"`
	Authority               lockon.Address `json:"authority"`
}

func signAction(ctx *cli.Context) error {
	key, err := loadKey(ctx, keyFlag.Name)
	if err != nil {
		return err
	}
	if ctx.String(beneficiaryFlag.Name) == "" {
		return errors.New("no beneficiary, set -beneficiary")
	}
	beneficiary, err := resolveAccount(ctx.String(beneficiaryFlag.Name))
	if err != nil {
		return err
	}
	amount, err := parseAmount(ctx.String(amountFlag.Name))
	if err != nil {
		return errors.Wrap(err, "-amount")
	}
	requestID := ctx.String(requestIDFlag.Name)
	if requestID == "" {
		requestID = uuid.New()
	}
	chainTag := byte(ctx.Uint(chainTagFlag.Name))
	if !ctx.IsSet(chainTagFlag.Name) {
		chainTag = genesis.NewDevnet().ChainTag()
	}

	req := &claims.Request{
		RequestID:   requestID,
		Beneficiary: beneficiary,
		StakeToken:  builtin.LockToken.Address,
		ClaimAmount: amount,
	}
	var auth *claims.Authorizer
	contract := ctx.String(contractFlag.Name)
	switch contract {
	case "lock":
		auth = lockstaking.ClaimAuthorizer(chainTag, builtin.LockStaking.Address)
	case "index":
		cumulative, err := parseAmount(ctx.String(cumulativeFlag.Name))
		if err != nil {
			return errors.Wrap(err, "-cumulative")
		}
		req.CumulativePendingReward = cumulative
		auth = indexstaking.ClaimAuthorizer(chainTag, builtin.IndexStaking.Address)
	default:
		return errors.Errorf("unknown contract %q, want lock or index", contract)
	}

	sig, err := auth.Sign(req, key)
	if err != nil {
		return errors.Wrap(err, "sign request")
	}

	out := signedClaim{
		Contract:    contract,
		ChainTag:    chainTag,
		RequestID:   requestID,
		Beneficiary: req.Beneficiary,
		StakeToken:  req.StakeToken,
		ClaimAmount: req.ClaimAmount.String(),
		Digest:      auth.Digest(req),
		Signature:   fmt.Sprintf("0x%x", sig),
		Authority:   lockon.Address(crypto.PubkeyToAddress(key.PublicKey)),
	}
	if req.CumulativePendingReward != nil {
		out.CumulativePendingReward = req.CumulativePendingReward.String()
	}
	encoded, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(encoded))
	return nil
}
