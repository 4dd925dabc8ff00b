// Copyright (c) 2026 The Lockon developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/test/datagen"
)

func TestAddressCell(t *testing.T) {
	ctx := newTestContext()
	cell := NewAddress(ctx, lockon.Bytes32{0x01})

	got, err := cell.Get()
	assert.NoError(t, err)
	assert.True(t, got.IsZero())

	addr := datagen.RandAddress()
	cell.Set(&addr)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, addr, got)

	// nil clears
	cell.Set(nil)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBytes32Cell(t *testing.T) {
	ctx := newTestContext()
	cell := NewBytes32(ctx, lockon.Bytes32{0x02})

	h := datagen.RandomHash()
	cell.Set(&h)
	got, err := cell.Get()
	assert.NoError(t, err)
	assert.Equal(t, h, got)

	cell.Set(nil)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestBoolCell(t *testing.T) {
	ctx := newTestContext()
	cell := NewBool(ctx, lockon.Bytes32{0x03})

	got, err := cell.Get()
	assert.NoError(t, err)
	assert.False(t, got)

	cell.Set(true)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.True(t, got)

	cell.Set(false)
	got, err = cell.Get()
	assert.NoError(t, err)
	assert.False(t, got)
}
