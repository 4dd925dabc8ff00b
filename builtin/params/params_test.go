// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/builtin/solidity"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/state"
	"github.com/lockon-finance/lock-contracts/test/datagen"
)

func M(a ...any) []any {
	return a
}

func newTestParams() *Params {
	sctx := solidity.NewContext(lockon.BytesToAddress([]byte("par")), state.New())
	return New(sctx)
}

func TestParamsGetSet(t *testing.T) {
	p := newTestParams()
	key := lockon.BytesToBytes32([]byte("key"))

	unset, err := p.Get(key)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(0), unset)

	setv := big.NewInt(10)
	p.Set(key, setv)
	assert.Equal(t, M(setv, nil), M(p.Get(key)))
}

func TestExecutorSet(t *testing.T) {
	p := newTestParams()
	executor := datagen.RandAddress()
	key := lockon.KeyBasicRateDivider

	unset, err := p.Executor()
	require.NoError(t, err)
	assert.True(t, unset.IsZero())

	p.InitExecutor(executor)
	assert.Equal(t, M(executor, nil), M(p.Executor()))

	err = p.ExecutorSet(datagen.RandAddress(), key, big.NewInt(100))
	assert.ErrorIs(t, err, reverts.ErrNotExecutor)
	assert.Equal(t, M(big.NewInt(0), nil), M(p.Get(key)))

	require.NoError(t, p.ExecutorSet(executor, key, big.NewInt(100)))
	assert.Equal(t, M(big.NewInt(100), nil), M(p.Get(key)))
}
