// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package params implements the governance-owned key/value store shared
// by all contracts. Chain-wide tunables such as the basic rate divider
// live here, changeable only by the executor address.
package params

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

// Params binder of the parameter store contract.
type Params struct {
	sctx *solidity.Context
}

func New(sctx *solidity.Context) *Params {
	return &Params{sctx}
}

// Get reads the parameter value for key. Unset keys read as zero.
func (p *Params) Get(key lockon.Bytes32) (*big.Int, error) {
	value, err := solidity.NewUint256(p.sctx, key).Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get param")
	}
	return value, nil
}

// Set writes the parameter value for key without authorization checks.
// Genesis only, governed changes go through ExecutorSet.
func (p *Params) Set(key lockon.Bytes32, value *big.Int) {
	solidity.NewUint256(p.sctx, key).Set(value)
}

// Executor returns the address entitled to change parameters.
func (p *Params) Executor() (lockon.Address, error) {
	raw, err := p.sctx.State().GetStorage(p.sctx.Address(), lockon.KeyExecutorAddress)
	if err != nil {
		return lockon.Address{}, errors.Wrap(err, "failed to get executor")
	}
	return lockon.BytesToAddress(raw.Bytes()), nil
}

// InitExecutor installs the executor address. Genesis only.
func (p *Params) InitExecutor(executor lockon.Address) {
	p.sctx.State().SetStorage(
		p.sctx.Address(),
		lockon.KeyExecutorAddress,
		lockon.BytesToBytes32(executor.Bytes()),
	)
}

// ExecutorSet applies a parameter change on behalf of caller.
func (p *Params) ExecutorSet(caller lockon.Address, key lockon.Bytes32, value *big.Int) error {
	executor, err := p.Executor()
	if err != nil {
		return err
	}
	if caller != executor {
		return reverts.ErrNotExecutor
	}
	p.Set(key, value)
	return nil
}
