// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lockstaking

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockon-finance/lock-contracts/builtin/claims"
	"github.com/lockon-finance/lock-contracts/builtin/locktoken"
	"github.com/lockon-finance/lock-contracts/builtin/params"
	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
	"github.com/lockon-finance/lock-contracts/test/datagen"
)

const testChainTag = byte(0x4c)

func M(a ...any) []any {
	return a
}

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

type escrowDeposit struct {
	beneficiary lockon.Address
	amount      *big.Int
	category    *big.Int
}

// recordingEscrow stands in for the vesting contract. It pulls the
// deposited amount the same way the real escrow does and records the
// call for assertions.
type recordingEscrow struct {
	addr     lockon.Address
	token    locktoken.Ledger
	deposits []escrowDeposit
}

func (e *recordingEscrow) Address() lockon.Address { return e.addr }

func (e *recordingEscrow) Deposit(env *runtime.Environment, beneficiary lockon.Address, amount, category *big.Int) error {
	if err := e.token.TransferFrom(e.addr, env.Caller(), e.addr, amount); err != nil {
		return err
	}
	e.deposits = append(e.deposits, escrowDeposit{beneficiary, amount, category})
	return nil
}

type testChain struct {
	st    *state.State
	rt    *runtime.Runtime
	now   uint64
	prm   *params.Params
	token *locktoken.Token

	staking *Staking
	escrow  *recordingEscrow

	stakingAddr lockon.Address
	tokenAddr   lockon.Address
	owner       lockon.Address
	feeRecv     lockon.Address
}

func newTestChain(t *testing.T) *testChain {
	st := state.New()
	tokenAddr := lockon.BytesToAddress([]byte("test-lock-token"))
	stakingAddr := lockon.BytesToAddress([]byte("test-lock-staking"))
	escrowAddr := lockon.BytesToAddress([]byte("test-vesting"))
	paramsAddr := lockon.BytesToAddress([]byte("test-params"))
	owner := datagen.RandAddress()

	token := locktoken.New(solidity.NewContext(tokenAddr, st))
	require.NoError(t, token.MintGenesis(owner, lockon.InitialSupply))

	prm := params.New(solidity.NewContext(paramsAddr, st))
	escrow := &recordingEscrow{addr: escrowAddr, token: token}
	staking := New(stakingAddr, st, prm, token, escrow)
	staking.gate.InitOwner(owner)

	c := &testChain{
		st:          st,
		now:         1000,
		prm:         prm,
		token:       token,
		staking:     staking,
		escrow:      escrow,
		stakingAddr: stakingAddr,
		tokenAddr:   tokenAddr,
		owner:       owner,
		feeRecv:     datagen.RandAddress(),
	}
	c.rt = runtime.New(st, testChainTag, func() uint64 { return c.now })
	return c
}

func (c *testChain) env(caller lockon.Address, blockTime uint64) *runtime.Environment {
	return runtime.NewEnvironment(c.st, testChainTag, blockTime, caller)
}

func (c *testChain) fund(t *testing.T, to lockon.Address, amount *big.Int) {
	require.NoError(t, c.token.Transfer(c.owner, to, amount))
}

func (c *testChain) addPool(t *testing.T, startTime uint64, bonusRate, penaltyRate, budget *big.Int) {
	env := c.env(c.owner, startTime)
	require.NoError(t, c.staking.AddPool(env, c.tokenAddr, startTime, bonusRate, penaltyRate))
	require.NoError(t, c.staking.SetFeeReceiver(env, c.feeRecv))
	if budget.Sign() > 0 {
		require.NoError(t, c.staking.Allocate(env, c.tokenAddr, budget))
	}
}

func (c *testChain) balance(t *testing.T, addr lockon.Address) *big.Int {
	balance, err := c.token.BalanceOf(addr)
	require.NoError(t, err)
	return balance
}

func findEvent(receipt *runtime.Receipt, name string) any {
	for _, ev := range receipt.Events {
		if ev.Name == name {
			return ev.Data
		}
	}
	return nil
}

func TestAddPool(t *testing.T) {
	c := newTestChain(t)
	env := c.env(c.owner, 1000)

	assert.ErrorIs(t, c.staking.AddPool(c.env(datagen.RandAddress(), 1000), c.tokenAddr, 1000, tokens(1), big.NewInt(3e11)), reverts.ErrNotOwner)
	assert.ErrorIs(t, c.staking.AddPool(env, lockon.Address{}, 1000, tokens(1), big.NewInt(3e11)), reverts.ErrZeroAddress)
	assert.ErrorIs(t, c.staking.AddPool(env, c.tokenAddr, 1000, tokens(1), new(big.Int).Add(lockon.PrecisionFactor, big.NewInt(1))), reverts.ErrRateTooHigh)

	require.NoError(t, c.staking.AddPool(env, c.tokenAddr, 1000, tokens(1), big.NewInt(3e11)))
	assert.ErrorIs(t, c.staking.AddPool(env, c.tokenAddr, 2000, tokens(2), big.NewInt(0)), reverts.ErrPoolExists)

	pool, err := c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), pool.StartTime)
	assert.Equal(t, uint64(1000), pool.LastAccrual)
	assert.Equal(t, tokens(1), pool.BonusRate)
	assert.Equal(t, big.NewInt(3e11), pool.PenaltyRate)
	assert.Equal(t, 0, pool.Budget.Sign())

	_, err = c.staking.GetPool(datagen.RandAddress())
	assert.ErrorIs(t, err, reverts.ErrUnknownPool)
}

func TestDepositFlow(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(1000))

	receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
		return c.staking.Deposit(env, c.tokenAddr, tokens(1000), 200*lockon.Day)
	})
	require.NoError(t, err)
	require.False(t, receipt.Reverted, receipt.RevertReason)

	ev, ok := findEvent(receipt, "Deposited").(*DepositedEvent)
	require.True(t, ok)
	assert.Equal(t, user, ev.User)
	assert.Equal(t, tokens(1000), ev.Amount)
	assert.Equal(t, uint64(1000+200*lockon.Day), ev.LockEnd)
	assert.Equal(t, tokens(1000), ev.Score)

	pos, err := c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(1000), pos.Amount)
	assert.Equal(t, tokens(1000), pos.Score)
	assert.Equal(t, uint64(200*lockon.Day), pos.LockDuration)
	assert.Equal(t, lockon.PrecisionFactor, pos.LastBasicRate)

	pool, err := c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(1000), pool.TotalStaked)
	assert.Equal(t, tokens(1000), pool.TotalScore)

	assert.Equal(t, 0, c.balance(t, user).Sign())
	assert.Equal(t, tokens(1_001_000), c.balance(t, c.stakingAddr))

	// one hour of emission at one token per second
	c.now += 3600
	assert.Equal(t, M(tokens(3600), nil), M(c.staking.PendingReward(user, c.tokenAddr, c.now)))
}

func TestDepositValidation(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(100))

	assert.ErrorIs(t, c.staking.Deposit(c.env(user, 1000), datagen.RandAddress(), tokens(1), 200*lockon.Day), reverts.ErrUnknownPool)
	assert.ErrorIs(t, c.staking.Deposit(c.env(user, 500), c.tokenAddr, tokens(1), 200*lockon.Day), reverts.ErrPoolNotStarted)
	assert.ErrorIs(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, big.NewInt(0), 200*lockon.Day), reverts.ErrZeroAmount)

	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(50), 200*lockon.Day))

	// relocking for less time than is left on the lock
	assert.ErrorIs(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(10), 100*lockon.Day), reverts.ErrInvalidDuration)

	poor := datagen.RandAddress()
	assert.ErrorIs(t, c.staking.Deposit(c.env(poor, 1000), c.tokenAddr, tokens(1), 200*lockon.Day), reverts.ErrInsufficientFunds)
}

func TestScoreGrowsWithPoolAge(t *testing.T) {
	c := newTestChain(t)
	c.prm.Set(lockon.KeyBasicRateDivider, lockon.InitialBasicRateDivider)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))

	early := datagen.RandAddress()
	late := datagen.RandAddress()
	c.fund(t, early, tokens(100))
	c.fund(t, late, tokens(100))

	require.NoError(t, c.staking.Deposit(c.env(early, 1000), c.tokenAddr, tokens(100), 200*lockon.Day))
	require.NoError(t, c.staking.Deposit(c.env(late, 1000+180*lockon.Day), c.tokenAddr, tokens(100), 200*lockon.Day))

	earlyPos, err := c.staking.GetPosition(early, c.tokenAddr)
	require.NoError(t, err)
	latePos, err := c.staking.GetPosition(late, c.tokenAddr)
	require.NoError(t, err)

	// half the divider has elapsed, the same stake scores 1.5x
	assert.Equal(t, tokens(100), earlyPos.Score)
	assert.Equal(t, tokens(150), latePos.Score)
}

func TestExtend(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(100))

	assert.ErrorIs(t, c.staking.Extend(c.env(user, 1000), c.tokenAddr, 300*lockon.Day), reverts.ErrInsufficientStake)

	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(100), 200*lockon.Day))

	assert.ErrorIs(t, c.staking.Extend(c.env(user, 2000), c.tokenAddr, 100*lockon.Day), reverts.ErrInvalidDuration)

	require.NoError(t, c.staking.Extend(c.env(user, 2000), c.tokenAddr, 300*lockon.Day))

	pos, err := c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(100), pos.Amount)
	assert.Equal(t, tokens(350), pos.Score)
	assert.Equal(t, uint64(2000+300*lockon.Day), pos.LockEnd)
	assert.Equal(t, uint64(300*lockon.Day), pos.LockDuration)
	// the 1000 seconds accrued before the extend stay banked
	assert.Equal(t, tokens(1000), pos.Pending)
	assert.Equal(t, M(tokens(1000), nil), M(c.staking.PendingReward(user, c.tokenAddr, 2000)))

	pool, err := c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(350), pool.TotalScore)
	assert.Equal(t, tokens(100), pool.TotalStaked)
}

func TestWithdraw(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(1000))
	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(1000), 200*lockon.Day))

	assert.ErrorIs(t, c.staking.Withdraw(c.env(user, 2000), c.tokenAddr, big.NewInt(0)), reverts.ErrZeroAmount)
	assert.ErrorIs(t, c.staking.Withdraw(c.env(user, 2000), c.tokenAddr, tokens(1001)), reverts.ErrInsufficientStake)

	// early withdrawal, 30% penalty
	require.NoError(t, c.staking.Withdraw(c.env(user, 2000), c.tokenAddr, tokens(500)))
	assert.Equal(t, tokens(350), c.balance(t, user))
	assert.Equal(t, tokens(150), c.balance(t, c.feeRecv))

	pos, err := c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(500), pos.Amount)
	assert.Equal(t, tokens(500), pos.Score)
	assert.Equal(t, tokens(1000), pos.Pending)

	pool, err := c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(500), pool.TotalStaked)
	assert.Equal(t, tokens(500), pool.TotalScore)

	// after the lock end the full amount comes back
	afterLock := uint64(1000 + 200*lockon.Day + 1)
	require.NoError(t, c.staking.Withdraw(c.env(user, afterLock), c.tokenAddr, tokens(500)))
	assert.Equal(t, tokens(850), c.balance(t, user))
	assert.Equal(t, tokens(150), c.balance(t, c.feeRecv))

	pos, err = c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, 0, pos.Amount.Sign())
	assert.Equal(t, 0, pos.Score.Sign())
	// the sole staker ends up owed the entire exhausted budget
	assert.Equal(t, tokens(1_000_000), pos.Pending)

	pool, err = c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Budget.Sign())
	assert.Equal(t, 0, pool.TotalStaked.Sign())
}

func TestEarlyWithdrawPenalty(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(1))
	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(1), 200*lockon.Day))

	// at pool start the basic rate is exactly P, a 200 day lock
	// multiplies by P, so one token scores one token
	pos, err := c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(1), pos.Score)

	// ten days in, 30% of the principal goes to the fee receiver
	require.NoError(t, c.staking.Withdraw(c.env(user, 1000+10*lockon.Day), c.tokenAddr, tokens(1)))
	assert.Equal(t, big.NewInt(7e17), c.balance(t, user))
	assert.Equal(t, big.NewInt(3e17), c.balance(t, c.feeRecv))
}

func TestWithdrawUsesStoredRate(t *testing.T) {
	c := newTestChain(t)
	c.prm.Set(lockon.KeyBasicRateDivider, lockon.InitialBasicRateDivider)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(100))

	// a full divider period into the pool's life the basic rate is 2x
	depositAt := uint64(1000 + 360*lockon.Day)
	require.NoError(t, c.staking.Deposit(c.env(user, depositAt), c.tokenAddr, tokens(100), 200*lockon.Day))

	pos, err := c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(200), pos.Score)

	// the remaining stake is re-scored with the captured rate, not the
	// higher rate of the withdrawal time
	require.NoError(t, c.staking.Withdraw(c.env(user, depositAt+1), c.tokenAddr, tokens(50)))
	pos, err = c.staking.GetPosition(user, c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, tokens(100), pos.Score)
}

func TestSetPoolRates(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(100))
	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(100), 200*lockon.Day))

	assert.ErrorIs(t, c.staking.SetPoolRates(c.env(datagen.RandAddress(), 2000), c.tokenAddr, tokens(2), big.NewInt(3e11)), reverts.ErrNotOwner)
	assert.ErrorIs(t, c.staking.SetPoolRates(c.env(c.owner, 2000), c.tokenAddr, tokens(2), new(big.Int).Add(lockon.PrecisionFactor, big.NewInt(1))), reverts.ErrRateTooHigh)

	require.NoError(t, c.staking.SetPoolRates(c.env(c.owner, 2000), c.tokenAddr, tokens(2), big.NewInt(5e11)))

	// 1000s at the old rate plus 1000s at the new one
	assert.Equal(t, M(tokens(3000), nil), M(c.staking.PendingReward(user, c.tokenAddr, 3000)))
}

func TestAllocateDeallocate(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(10_000))
	user := datagen.RandAddress()
	recipient := datagen.RandAddress()
	c.fund(t, user, tokens(100))
	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(100), 200*lockon.Day))

	assert.ErrorIs(t, c.staking.Allocate(c.env(datagen.RandAddress(), 2000), c.tokenAddr, tokens(1)), reverts.ErrNotOwner)
	assert.ErrorIs(t, c.staking.Allocate(c.env(c.owner, 2000), c.tokenAddr, big.NewInt(0)), reverts.ErrZeroAmount)
	assert.ErrorIs(t, c.staking.Deallocate(c.env(c.owner, 2000), datagen.RandAddress(), recipient, tokens(1)), reverts.ErrUnknownPool)

	// 1000 tokens were emitted before the deallocation settles
	assert.ErrorIs(t, c.staking.Deallocate(c.env(c.owner, 2000), c.tokenAddr, recipient, tokens(9500)), reverts.ErrBudgetExceeded)
	require.NoError(t, c.staking.Deallocate(c.env(c.owner, 2000), c.tokenAddr, recipient, tokens(9000)))

	pool, err := c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	assert.Equal(t, 0, pool.Budget.Sign())
	assert.Equal(t, tokens(9000), c.balance(t, recipient))

	// the emitted rewards stay in custody for the staker
	assert.Equal(t, tokens(1100), c.balance(t, c.stakingAddr))
	assert.Equal(t, M(tokens(1000), nil), M(c.staking.PendingReward(user, c.tokenAddr, 2000)))
}

func TestClaim(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	authority := lockon.Address(crypto.PubkeyToAddress(key.PublicKey))
	adminEnv := c.env(c.owner, 1000)
	require.NoError(t, c.staking.SetAuthority(adminEnv, authority))
	require.NoError(t, c.staking.SetVestingCategory(adminEnv, big.NewInt(2)))

	user := datagen.RandAddress()
	c.fund(t, user, tokens(1000))
	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(1000), 200*lockon.Day))

	c.now = 1000 + 3600
	authorizer := claims.NewAuthorizer(domainName, testChainTag, c.stakingAddr, claims.SchemaLock)
	sign := func(requestID string, beneficiary lockon.Address, amount *big.Int) []byte {
		sig, err := authorizer.Sign(&claims.Request{
			RequestID:   requestID,
			Beneficiary: beneficiary,
			StakeToken:  c.tokenAddr,
			ClaimAmount: amount,
		}, key)
		require.NoError(t, err)
		return sig
	}

	sig := sign("req-001", user, tokens(100))
	receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
		return c.staking.Claim(env, c.tokenAddr, "req-001", tokens(100), sig)
	})
	require.NoError(t, err)
	require.False(t, receipt.Reverted, receipt.RevertReason)

	// one hour of accrual plus the granted amount, vested under category 2
	require.Len(t, c.escrow.deposits, 1)
	assert.Equal(t, user, c.escrow.deposits[0].beneficiary)
	assert.Equal(t, tokens(3700), c.escrow.deposits[0].amount)
	assert.Equal(t, big.NewInt(2), c.escrow.deposits[0].category)
	assert.Equal(t, tokens(3700), c.balance(t, c.escrow.addr))
	assert.Equal(t, tokens(997_300), c.balance(t, c.stakingAddr))

	ev, ok := findEvent(receipt, "RewardClaimed").(*RewardClaimedEvent)
	require.True(t, ok)
	assert.Equal(t, "req-001", ev.RequestID)
	assert.Equal(t, tokens(3700), ev.Amount)

	allowance, err := c.token.Allowance(c.stakingAddr, c.escrow.addr)
	require.NoError(t, err)
	assert.Equal(t, 0, allowance.Sign())

	assert.Equal(t, M(true, nil), M(c.staking.Processed("req-001")))

	t.Run("replay rejected regardless of signature", func(t *testing.T) {
		replaySig := sign("req-001", user, tokens(100))
		receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
			return c.staking.Claim(env, c.tokenAddr, "req-001", tokens(100), replaySig)
		})
		require.NoError(t, err)
		require.True(t, receipt.Reverted)
		assert.Contains(t, receipt.RevertReason, "request already processed")
	})

	t.Run("nothing to claim", func(t *testing.T) {
		sig := sign("req-002", user, big.NewInt(0))
		receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
			return c.staking.Claim(env, c.tokenAddr, "req-002", big.NewInt(0), sig)
		})
		require.NoError(t, err)
		require.True(t, receipt.Reverted)
		assert.Contains(t, receipt.RevertReason, "nothing to claim")
	})

	t.Run("wrong signer", func(t *testing.T) {
		userKey, err := crypto.GenerateKey()
		require.NoError(t, err)
		sig, err := authorizer.Sign(&claims.Request{
			RequestID:   "req-003",
			Beneficiary: user,
			StakeToken:  c.tokenAddr,
			ClaimAmount: tokens(100),
		}, userKey)
		require.NoError(t, err)
		receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
			return c.staking.Claim(env, c.tokenAddr, "req-003", tokens(100), sig)
		})
		require.NoError(t, err)
		require.True(t, receipt.Reverted)
		assert.Contains(t, receipt.RevertReason, "invalid authority signature")
	})

	t.Run("tampered amount", func(t *testing.T) {
		sig := sign("req-004", user, tokens(100))
		receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
			return c.staking.Claim(env, c.tokenAddr, "req-004", tokens(200), sig)
		})
		require.NoError(t, err)
		require.True(t, receipt.Reverted)
		assert.Contains(t, receipt.RevertReason, "invalid authority signature")
	})

	t.Run("beneficiary bound", func(t *testing.T) {
		other := datagen.RandAddress()
		sig := sign("req-005", other, tokens(100))
		receipt, err := c.rt.Transact(user, func(env *runtime.Environment) error {
			return c.staking.Claim(env, c.tokenAddr, "req-005", tokens(100), sig)
		})
		require.NoError(t, err)
		require.True(t, receipt.Reverted)
		assert.Contains(t, receipt.RevertReason, "invalid authority signature")
		// the failed attempt rolled back, the id is still open
		assert.Equal(t, M(false, nil), M(c.staking.Processed("req-005")))
	})
}

func TestCancelClaim(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	authority := lockon.Address(crypto.PubkeyToAddress(key.PublicKey))
	require.NoError(t, c.staking.SetAuthority(c.env(c.owner, 1000), authority))

	user := datagen.RandAddress()
	authorizer := claims.NewAuthorizer(domainName, testChainTag, c.stakingAddr, claims.SchemaLock)
	sig, err := authorizer.Sign(&claims.Request{
		RequestID:   "req-c1",
		Beneficiary: user,
		StakeToken:  c.tokenAddr,
		ClaimAmount: tokens(50),
	}, key)
	require.NoError(t, err)

	// only the beneficiary the signature was issued for can burn it
	receipt, err := c.rt.Transact(datagen.RandAddress(), func(env *runtime.Environment) error {
		return c.staking.CancelClaim(env, c.tokenAddr, "req-c1", tokens(50), sig)
	})
	require.NoError(t, err)
	require.True(t, receipt.Reverted)
	assert.Contains(t, receipt.RevertReason, "invalid authority signature")
	assert.Equal(t, M(false, nil), M(c.staking.Processed("req-c1")))

	receipt, err = c.rt.Transact(user, func(env *runtime.Environment) error {
		return c.staking.CancelClaim(env, c.tokenAddr, "req-c1", tokens(50), sig)
	})
	require.NoError(t, err)
	require.False(t, receipt.Reverted, receipt.RevertReason)
	ev, ok := findEvent(receipt, "ClaimCancelled").(*ClaimCancelledEvent)
	require.True(t, ok)
	assert.Equal(t, "req-c1", ev.RequestID)
	assert.Equal(t, M(true, nil), M(c.staking.Processed("req-c1")))

	// the burned id cannot be claimed anymore
	receipt, err = c.rt.Transact(user, func(env *runtime.Environment) error {
		return c.staking.Claim(env, c.tokenAddr, "req-c1", tokens(50), sig)
	})
	require.NoError(t, err)
	require.True(t, receipt.Reverted)
	assert.Contains(t, receipt.RevertReason, "request already processed")
}

func TestPauseBlocksUserOps(t *testing.T) {
	c := newTestChain(t)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), tokens(1_000_000))
	user := datagen.RandAddress()
	c.fund(t, user, tokens(100))

	require.NoError(t, c.staking.SetPaused(c.env(c.owner, 1000), true))

	assert.ErrorIs(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(10), 200*lockon.Day), reverts.ErrPaused)
	assert.ErrorIs(t, c.staking.Extend(c.env(user, 1000), c.tokenAddr, 200*lockon.Day), reverts.ErrPaused)
	assert.ErrorIs(t, c.staking.Withdraw(c.env(user, 1000), c.tokenAddr, tokens(10)), reverts.ErrPaused)
	assert.ErrorIs(t, c.staking.Claim(c.env(user, 1000), c.tokenAddr, "r", tokens(1), nil), reverts.ErrPaused)
	assert.ErrorIs(t, c.staking.CancelClaim(c.env(user, 1000), c.tokenAddr, "r", tokens(1), nil), reverts.ErrPaused)

	// administration is not suspended
	require.NoError(t, c.staking.SetPoolRates(c.env(c.owner, 1000), c.tokenAddr, tokens(2), big.NewInt(3e11)))

	require.NoError(t, c.staking.SetPaused(c.env(c.owner, 1000), false))
	require.NoError(t, c.staking.Deposit(c.env(user, 1000), c.tokenAddr, tokens(10), 200*lockon.Day))
}

func TestPoolInvariants(t *testing.T) {
	c := newTestChain(t)
	initialBudget := tokens(50_000)
	c.addPool(t, 1000, tokens(1), big.NewInt(3e11), initialBudget)

	users := make([]lockon.Address, 3)
	for i := range users {
		users[i] = datagen.RandAddress()
		c.fund(t, users[i], tokens(10_000))
	}

	now := uint64(1000)
	lastPerUnit := new(big.Int)
	check := func() {
		pool, err := c.staking.GetPool(c.tokenAddr)
		require.NoError(t, err)
		require.True(t, pool.Budget.Sign() >= 0)
		require.True(t, pool.RewardPerUnit.Cmp(lastPerUnit) >= 0)
		lastPerUnit.Set(pool.RewardPerUnit)

		stakedSum := new(big.Int)
		scoreSum := new(big.Int)
		for _, user := range users {
			pos, err := c.staking.GetPosition(user, c.tokenAddr)
			require.NoError(t, err)
			stakedSum.Add(stakedSum, pos.Amount)
			scoreSum.Add(scoreSum, pos.Score)
		}
		require.Equal(t, stakedSum, pool.TotalStaked)
		require.Equal(t, scoreSum, pool.TotalScore)

		total := new(big.Int).Set(c.balance(t, c.owner))
		for _, addr := range append([]lockon.Address{c.stakingAddr, c.feeRecv}, users...) {
			total.Add(total, c.balance(t, addr))
		}
		require.Equal(t, lockon.InitialSupply, total)
	}

	for i := 0; i < 80; i++ {
		user := users[datagen.RandIntN(len(users))]
		pos, err := c.staking.GetPosition(user, c.tokenAddr)
		require.NoError(t, err)

		switch datagen.RandIntN(3) {
		case 0:
			amount := tokens(int64(1 + datagen.RandIntN(100)))
			duration := pos.Remaining(now) + uint64(100+datagen.RandIntN(900))*lockon.Day
			require.NoError(t, c.staking.Deposit(c.env(user, now), c.tokenAddr, amount, duration))
		case 1:
			if pos.Amount.Sign() == 0 {
				continue
			}
			half := new(big.Int).Rsh(pos.Amount, 1)
			if half.Sign() == 0 {
				continue
			}
			require.NoError(t, c.staking.Withdraw(c.env(user, now), c.tokenAddr, half))
		case 2:
			now += uint64(datagen.RandIntN(5000) + 1)
		}
		check()
	}

	// collected rewards never exceed what the pool distributed
	pool, err := c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	distributed := new(big.Int).Sub(initialBudget, pool.Budget)

	collectedSum := new(big.Int)
	for _, user := range users {
		_, _, collected, err := c.staking.service.Collect(user, c.tokenAddr, now)
		require.NoError(t, err)
		collectedSum.Add(collectedSum, collected)
	}
	assert.True(t, collectedSum.Cmp(distributed) <= 0)

	// custody covers the stake, the owed rewards and the leftover budget
	pool, err = c.staking.GetPool(c.tokenAddr)
	require.NoError(t, err)
	owed := new(big.Int).Add(pool.TotalStaked, pool.Budget)
	owed.Add(owed, collectedSum)
	assert.True(t, c.balance(t, c.stakingAddr).Cmp(owed) >= 0)
}

func TestOwnershipHandover(t *testing.T) {
	c := newTestChain(t)
	next := datagen.RandAddress()

	receipt, err := c.rt.Transact(c.owner, func(env *runtime.Environment) error {
		return c.staking.TransferOwnership(env, next)
	})
	require.NoError(t, err)
	require.False(t, receipt.Reverted)
	assert.NotNil(t, findEvent(receipt, "OwnershipTransferStarted"))
	assert.Equal(t, M(c.owner, nil), M(c.staking.Owner()))

	receipt, err = c.rt.Transact(next, func(env *runtime.Environment) error {
		return c.staking.AcceptOwnership(env)
	})
	require.NoError(t, err)
	require.False(t, receipt.Reverted)
	assert.NotNil(t, findEvent(receipt, "OwnershipTransferred"))
	assert.Equal(t, M(next, nil), M(c.staking.Owner()))
}
