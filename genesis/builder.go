// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/runtime"
	"github.com/lockon-finance/lock-contracts/state"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64

	stateProcs []func(st *state.State) error
	calls      []call
	extraData  [28]byte
}

type call struct {
	caller lockon.Address
	proc   func(env *runtime.Environment) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(st *state.State) error) *Builder {
	b.stateProcs = append(b.stateProcs, proc)
	return b
}

// Call add a contract call to run after all state processes, as caller.
func (b *Builder) Call(caller lockon.Address, proc func(env *runtime.Environment) error) *Builder {
	b.calls = append(b.calls, call{caller, proc})
	return b
}

// ExtraData set extra data, which salts the genesis ID.
func (b *Builder) ExtraData(data [28]byte) *Builder {
	b.extraData = data
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (lockon.Bytes32, error) {
	st, err := b.Build()
	if err != nil {
		return lockon.Bytes32{}, err
	}
	digest := st.Digest()

	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], b.timestamp)
	return lockon.Blake2b(ts[:], b.extraData[:], digest[:]), nil
}

// Build builds genesis state according to presets.
func (b *Builder) Build() (*state.State, error) {
	st := state.New()

	for _, proc := range b.stateProcs {
		if err := proc(st); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}

	for _, call := range b.calls {
		// Genesis calls run before any chain tag exists. The tag is
		// derived from the genesis ID, which covers the state these
		// calls produce.
		env := runtime.NewEnvironment(st, 0, b.timestamp, call.caller)
		if err := call.proc(env); err != nil {
			return nil, errors.Wrap(err, "call process")
		}
	}

	st.Commit()
	return st, nil
}
