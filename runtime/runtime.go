// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes contract operations against a state with
// transactional semantics. A transaction either commits every write it
// made or reverts all of them.
package runtime

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lockon-finance/lock-contracts/builtin/reverts"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/state"
)

var logger = log.WithContext("pkg", "runtime")

// Clock reports the current unix time in seconds.
type Clock func() uint64

// SystemClock follows the wall clock.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Runtime serializes transactions over a shared state.
type Runtime struct {
	mu       sync.RWMutex
	state    *state.State
	chainTag byte
	now      Clock
}

// New creates a runtime over the given state.
// The chain tag scopes signed claim requests to this deployment.
func New(st *state.State, chainTag byte, now Clock) *Runtime {
	if now == nil {
		now = SystemClock
	}
	return &Runtime{
		state:    st,
		chainTag: chainTag,
		now:      now,
	}
}

func (rt *Runtime) State() *state.State { return rt.state }
func (rt *Runtime) ChainTag() byte { return rt.chainTag }

// Now reports the block time the next transaction would execute at.
func (rt *Runtime) Now() uint64 { return rt.now() }

// Transact runs fn against a checkpointed state.
// A revert error rolls every write back and yields a receipt with the
// reason, any other error aborts without a receipt. On success the writes
// are committed and the receipt carries the logged events.
func (rt *Runtime) Transact(origin lockon.Address, fn func(env *Environment) error) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	env := &Environment{
		state:     rt.state,
		chainTag:  rt.chainTag,
		blockTime: rt.now(),
		origin:    origin,
		caller:    origin,
		latches:   make(map[lockon.Address]struct{}),
		receipt:   &Receipt{},
	}

	checkpoint := rt.state.NewCheckpoint()
	if err := fn(env); err != nil {
		rt.state.RevertTo(checkpoint)

		var revertErr *reverts.RevertError
		if !errors.As(err, &revertErr) {
			metricTxCounter().AddWithLabel(1, map[string]string{"status": "failed"})
			logger.Error("transaction failed", "origin", env.origin, "err", err)
			return nil, err
		}

		env.receipt.Reverted = true
		env.receipt.RevertReason = revertErr.Error()
		env.receipt.RevertData = revertErr.Bytes()
		env.receipt.Events = nil
		metricTxCounter().AddWithLabel(1, map[string]string{"status": "reverted"})
		logger.Debug("transaction reverted", "origin", env.origin, "reason", env.receipt.RevertReason)
		return env.receipt, nil
	}

	rt.state.Commit()
	metricTxCounter().AddWithLabel(1, map[string]string{"status": "committed"})
	metricTxDuration().Observe(time.Since(start).Milliseconds())
	return env.receipt, nil
}

// Query runs fn against the current state without a write barrier.
// Queries run concurrently, fn must not write.
func (rt *Runtime) Query(fn func(env *Environment) error) error {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	env := &Environment{
		state:     rt.state,
		chainTag:  rt.chainTag,
		blockTime: rt.now(),
		latches:   make(map[lockon.Address]struct{}),
		receipt:   &Receipt{},
	}
	return fn(env)
}

// NewEnvironment builds a bare environment outside any transaction.
// Genesis construction uses it to run allocation procs directly.
func NewEnvironment(st *state.State, chainTag byte, blockTime uint64, origin lockon.Address) *Environment {
	return &Environment{
		state:     st,
		chainTag:  chainTag,
		blockTime: blockTime,
		origin:    origin,
		caller:    origin,
		latches:   make(map[lockon.Address]struct{}),
		receipt:   &Receipt{},
	}
}
