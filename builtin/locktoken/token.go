// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package locktoken implements the fixed-supply LOCK token ledger.
// The whole supply is minted once at genesis, afterwards value only
// moves between accounts. Other contracts consume it through the
// Ledger interface.
package locktoken

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
)

var (
	slotTotalSupply = lockon.BytesToBytes32([]byte("token-supply"))
	slotBalances    = lockon.BytesToBytes32([]byte("token-balances"))
	slotAllowances  = lockon.BytesToBytes32([]byte("token-allowances"))
)

// Ledger is the value-transfer capability the staking, vesting and
// airdrop contracts are handed. They never mint or burn.
type Ledger interface {
	BalanceOf(addr lockon.Address) (*big.Int, error)
	Transfer(from, to lockon.Address, amount *big.Int) error
	Approve(owner, spender lockon.Address, amount *big.Int) error
	Allowance(owner, spender lockon.Address) (*big.Int, error)
	TransferFrom(spender, from, to lockon.Address, amount *big.Int) error
}

// Token binder of the LOCK token contract.
type Token struct {
	sctx       *solidity.Context
	balances   *solidity.Mapping[lockon.Address, *big.Int]
	allowances *solidity.Mapping[lockon.Bytes32, *big.Int]
}

var _ Ledger = (*Token)(nil)

func New(sctx *solidity.Context) *Token {
	return &Token{
		sctx:       sctx,
		balances:   solidity.NewMapping[lockon.Address, *big.Int](sctx, slotBalances),
		allowances: solidity.NewMapping[lockon.Bytes32, *big.Int](sctx, slotAllowances),
	}
}

func allowanceKey(owner, spender lockon.Address) lockon.Bytes32 {
	return lockon.Blake2b(owner.Bytes(), spender.Bytes())
}

// MintGenesis credits the entire supply to the treasury. It can run
// exactly once, genesis construction is the only caller.
func (t *Token) MintGenesis(treasury lockon.Address, supply *big.Int) error {
	existing, err := t.TotalSupply()
	if err != nil {
		return err
	}
	if existing.Sign() != 0 {
		return errors.New("token supply already minted")
	}
	if treasury.IsZero() {
		return errors.New("treasury address is zero")
	}

	solidity.NewUint256(t.sctx, slotTotalSupply).Set(supply)
	if err := t.balances.Set(treasury, supply); err != nil {
		return errors.Wrap(err, "failed to set treasury balance")
	}
	return nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	supply, err := solidity.NewUint256(t.sctx, slotTotalSupply).Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get total supply")
	}
	return supply, nil
}

func (t *Token) BalanceOf(addr lockon.Address) (*big.Int, error) {
	balance, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	return balance, nil
}

// Transfer moves amount from one account to the other.
func (t *Token) Transfer(from, to lockon.Address, amount *big.Int) error {
	if to.IsZero() {
		return reverts.ErrZeroAddress
	}

	fromBalance, err := t.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return reverts.ErrInsufficientFunds
	}

	if err := t.balances.Set(from, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return errors.Wrap(err, "failed to set sender balance")
	}

	// read after the sender write, a transfer to self must net to zero
	toBalance, err := t.BalanceOf(to)
	if err != nil {
		return err
	}
	if err := t.balances.Set(to, new(big.Int).Add(toBalance, amount)); err != nil {
		return errors.Wrap(err, "failed to set receiver balance")
	}
	return nil
}

// Approve lets spender move up to amount of owner's balance. Setting a
// new amount overwrites the previous approval.
func (t *Token) Approve(owner, spender lockon.Address, amount *big.Int) error {
	if spender.IsZero() {
		return reverts.ErrZeroAddress
	}
	if err := t.allowances.Set(allowanceKey(owner, spender), amount); err != nil {
		return errors.Wrap(err, "failed to set allowance")
	}
	return nil
}

func (t *Token) Allowance(owner, spender lockon.Address) (*big.Int, error) {
	allowance, err := t.allowances.Get(allowanceKey(owner, spender))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get allowance")
	}
	return allowance, nil
}

// TransferFrom moves amount from `from` to `to` on behalf of spender,
// consuming spender's allowance.
func (t *Token) TransferFrom(spender, from, to lockon.Address, amount *big.Int) error {
	allowance, err := t.Allowance(from, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return reverts.ErrAllowanceExceeded
	}

	if err := t.Transfer(from, to, amount); err != nil {
		return err
	}
	if err := t.allowances.Set(allowanceKey(from, spender), new(big.Int).Sub(allowance, amount)); err != nil {
		return errors.Wrap(err, "failed to set allowance")
	}
	return nil
}
