// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/state"
	"github.com/lockon-finance/lock-contracts/test/datagen"
)

func M(a ...any) []any {
	return a
}

func newTestRuntime(blockTime uint64) *Runtime {
	return New(state.New(), 0x4c, func() uint64 { return blockTime })
}

func TestTransactCommit(t *testing.T) {
	rt := newTestRuntime(1000)
	addr := datagen.RandAddress()
	key := datagen.RandBytes32()
	value := datagen.RandBytes32()

	receipt, err := rt.Transact(addr, func(env *Environment) error {
		assert.Equal(t, uint64(1000), env.BlockTime())
		assert.Equal(t, byte(0x4c), env.ChainTag())
		assert.Equal(t, addr, env.Origin())
		assert.Equal(t, addr, env.Caller())

		env.State().SetStorage(addr, key, value)
		env.Log(addr, "Stored", key)
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.False(t, receipt.Reverted)
	assert.Len(t, receipt.Events, 1)
	assert.Equal(t, "Stored", receipt.Events[0].Name)
	assert.Equal(t, M(value, nil), M(rt.State().GetStorage(addr, key)))
}

func TestTransactRevert(t *testing.T) {
	rt := newTestRuntime(1000)
	addr := datagen.RandAddress()
	key := datagen.RandBytes32()

	before := rt.State().Digest()

	receipt, err := rt.Transact(addr, func(env *Environment) error {
		env.State().SetStorage(addr, key, datagen.RandBytes32())
		env.Log(addr, "Stored", key)
		return reverts.New("state", "nothing staked")
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.True(t, receipt.Reverted)
	assert.Equal(t, "state: nothing staked", receipt.RevertReason)
	assert.NotEmpty(t, receipt.RevertData)
	assert.Nil(t, receipt.Events)
	assert.Equal(t, before, rt.State().Digest())
}

func TestTransactWrappedRevert(t *testing.T) {
	rt := newTestRuntime(1000)

	receipt, err := rt.Transact(datagen.RandAddress(), func(_ *Environment) error {
		return errors.WithMessage(reverts.ErrZeroAmount, "deposit")
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Reverted)
}

func TestTransactFailure(t *testing.T) {
	rt := newTestRuntime(1000)
	addr := datagen.RandAddress()
	key := datagen.RandBytes32()

	before := rt.State().Digest()

	receipt, err := rt.Transact(addr, func(env *Environment) error {
		env.State().SetStorage(addr, key, datagen.RandBytes32())
		return errors.New("storage backend gone")
	})
	assert.Nil(t, receipt)
	assert.EqualError(t, err, "storage backend gone")
	assert.Equal(t, before, rt.State().Digest())
}

func TestQuery(t *testing.T) {
	rt := newTestRuntime(1000)
	addr := datagen.RandAddress()
	key := datagen.RandBytes32()
	value := datagen.RandBytes32()

	_, err := rt.Transact(addr, func(env *Environment) error {
		env.State().SetStorage(addr, key, value)
		return nil
	})
	require.NoError(t, err)

	err = rt.Query(func(env *Environment) error {
		assert.True(t, env.Origin().IsZero())
		got, err := env.State().GetStorage(addr, key)
		assert.Equal(t, M(value, nil), M(got, err))
		return nil
	})
	assert.NoError(t, err)
}

func TestLatchReentrancy(t *testing.T) {
	rt := newTestRuntime(1000)
	contract := datagen.RandAddress()

	receipt, err := rt.Transact(datagen.RandAddress(), func(env *Environment) error {
		release, err := env.Latch(contract)
		if err != nil {
			return err
		}
		defer release()

		// Nested call into the same contract must trip the latch.
		nested := env.WithCaller(contract)
		if _, err := nested.Latch(contract); err != nil {
			return err
		}
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, receipt)
	assert.True(t, receipt.Reverted)
	assert.Contains(t, receipt.RevertReason, "reentrant")
}

func TestLatchRelease(t *testing.T) {
	rt := newTestRuntime(1000)
	contract := datagen.RandAddress()

	receipt, err := rt.Transact(datagen.RandAddress(), func(env *Environment) error {
		for i := 0; i < 2; i++ {
			release, err := env.Latch(contract)
			if err != nil {
				return err
			}
			release()
		}
		return nil
	})
	require.NoError(t, err)
	assert.False(t, receipt.Reverted)
}

func TestWithCaller(t *testing.T) {
	rt := newTestRuntime(1000)
	origin := datagen.RandAddress()
	contract := datagen.RandAddress()

	receipt, err := rt.Transact(origin, func(env *Environment) error {
		nested := env.WithCaller(contract)
		assert.Equal(t, origin, nested.Origin())
		assert.Equal(t, contract, nested.Caller())
		assert.Equal(t, origin, env.Caller())

		nested.Log(contract, "Nested", nil)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, receipt.Events, 1)
	assert.Equal(t, contract, receipt.Events[0].Address)
}

func TestTransactSerialized(t *testing.T) {
	rt := newTestRuntime(1000)
	addr := datagen.RandAddress()
	key := datagen.RandBytes32()

	const goroutines = 8
	const rounds = 50

	// Racing read-modify-write increments stay lossless only if
	// transactions are fully serialized.
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		origin := datagen.RandAddress()
		wg.Go(func() {
			for j := 0; j < rounds; j++ {
				_, err := rt.Transact(origin, func(env *Environment) error {
					raw, err := env.State().GetStorage(addr, key)
					if err != nil {
						return err
					}
					count := new(big.Int).SetBytes(raw[:])
					count.Add(count, big.NewInt(1))
					env.State().SetStorage(addr, key, lockon.BytesToBytes32(count.Bytes()))
					return nil
				})
				assert.NoError(t, err)
			}
		})
	}
	wg.Wait()

	raw, err := rt.State().GetStorage(addr, key)
	require.NoError(t, err)
	assert.Equal(t, int64(goroutines*rounds), new(big.Int).SetBytes(raw[:]).Int64())
}
