// Copyright (c) 2026 The Lockon developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lockon-finance/lock-contracts/lockon"
)

func TestUint256(t *testing.T) {
	ctx := newTestContext()
	cell := NewUint256(ctx, lockon.Bytes32{0x01})

	// empty slot reads as zero
	value, err := cell.Get()
	assert.NoError(t, err)
	assert.Zero(t, value.Sign())

	cell.Set(big.NewInt(1000))
	value, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1000), value)

	assert.NoError(t, cell.Add(big.NewInt(500)))
	value, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1500), value)

	assert.NoError(t, cell.Sub(big.NewInt(200)))
	value, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1300), value)

	// setting zero clears the slot
	cell.Set(new(big.Int))
	raw, err := ctx.State().GetRawStorage(ctx.Address(), lockon.Bytes32{0x01})
	assert.NoError(t, err)
	assert.Zero(t, len(raw))
}

func TestUint256BigValues(t *testing.T) {
	ctx := newTestContext()
	cell := NewUint256(ctx, lockon.Bytes32{0x02})

	big18 := new(big.Int).Mul(big.NewInt(1e9), big.NewInt(1e18))
	cell.Set(big18)
	value, err := cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, big18, value)
}
