// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockon-finance/lock-contracts/builtin"
	"github.com/lockon-finance/lock-contracts/genesis"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
)

// actor drives random operations as one dev account. Reverts count as
// useful work, the workload probes rule enforcement as much as the
// happy paths.
type actor struct {
	addr      lockon.Address
	peers     []lockon.Address
	rng       *rand.Rand
	committed int
	reverted  int
}

func lockWei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18))
}

func (a *actor) run(ctx context.Context, sim *simulation, ops int) error {
	durations := []uint64{0, 50 * lockon.Day, 100 * lockon.Day, 300 * lockon.Day, 600 * lockon.Day, 1000 * lockon.Day}
	token := builtin.LockToken.Address

	for i := 0; i < ops; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		sim.tick(uint64(1 + a.rng.Intn(3600)))

		var (
			receipt *runtime.Receipt
			err     error
		)
		switch p := a.rng.Intn(100); {
		case p < 25:
			amount := lockWei(int64(1 + a.rng.Intn(1000)))
			duration := durations[a.rng.Intn(len(durations))]
			receipt, err = sim.transact(a.addr, "lock-deposit", func(env *runtime.Environment) error {
				return builtin.LockStaking.WithState(env.State()).Deposit(env, token, amount, duration)
			})
		case p < 35:
			amount := lockWei(int64(1 + a.rng.Intn(500)))
			receipt, err = sim.transact(a.addr, "lock-withdraw", func(env *runtime.Environment) error {
				return builtin.LockStaking.WithState(env.State()).Withdraw(env, token, amount)
			})
		case p < 43:
			duration := durations[1+a.rng.Intn(len(durations)-1)]
			receipt, err = sim.transact(a.addr, "lock-extend", func(env *runtime.Environment) error {
				return builtin.LockStaking.WithState(env.State()).Extend(env, token, duration)
			})
		case p < 63:
			amount := lockWei(int64(1 + a.rng.Intn(1000)))
			receipt, err = sim.transact(a.addr, "index-deposit", func(env *runtime.Environment) error {
				return builtin.IndexStaking.WithState(env.State()).Deposit(env, token, amount)
			})
		case p < 73:
			amount := lockWei(int64(1 + a.rng.Intn(500)))
			receipt, err = sim.transact(a.addr, "index-withdraw", func(env *runtime.Environment) error {
				return builtin.IndexStaking.WithState(env.State()).Withdraw(env, token, amount)
			})
		case p < 83:
			to := a.peers[a.rng.Intn(len(a.peers))]
			amount := lockWei(int64(1 + a.rng.Intn(100)))
			receipt, err = sim.transact(a.addr, "transfer", func(env *runtime.Environment) error {
				return builtin.LockToken.WithState(env.State()).Transfer(env.Caller(), to, amount)
			})
		case p < 89:
			receipt, err = sim.lockClaim(a.addr, lockWei(int64(1+a.rng.Intn(10))))
		case p < 95:
			receipt, err = sim.indexClaim(a.addr, lockWei(int64(a.rng.Intn(5))))
		default:
			category := big.NewInt(int64(1 + a.rng.Intn(4)))
			receipt, err = sim.transact(a.addr, "vesting-claim", func(env *runtime.Environment) error {
				return builtin.Vesting.WithState(env.State()).Claim(env, category)
			})
		}
		if err != nil {
			return err
		}
		if receipt.Reverted {
			a.reverted++
		} else {
			a.committed++
		}
	}
	return nil
}

func stressAction(ctx *cli.Context) error {
	initLogger(ctx)

	gene, err := selectGenesis(ctx)
	if err != nil {
		return err
	}
	authorityKey, err := loadKey(ctx, authorityKeyFlag.Name)
	if err != nil {
		return err
	}
	stopMetrics, err := startMetrics(ctx)
	if err != nil {
		return err
	}
	defer stopMetrics()

	sim, err := newSimulation(gene, authorityKey)
	if err != nil {
		return err
	}
	devnet := ctx.String(genesisFlag.Name) == ""
	printStartupMessage(gene, devnet)

	seed := ctx.Int64(seedFlag.Name)
	if !ctx.IsSet(seedFlag.Name) {
		seed = time.Now().UnixNano()
	}
	ops := ctx.Int(opsFlag.Name)
	accs := genesis.DevAccounts()
	n := ctx.Int(actorsFlag.Name)
	// The treasury account stays out of the workload, it keeps the
	// fee receiver balance auditable.
	if limit := len(accs) - 1; n > limit {
		log.Warn("capping actors to the dev account count", "actors", limit)
		n = limit
	}
	if n <= 0 {
		return errors.New("no actors")
	}

	peers := make([]lockon.Address, n)
	for i := range peers {
		peers[i] = accs[i+1].Address
	}
	actors := make([]*actor, n)
	for i := range actors {
		actors[i] = &actor{
			addr:  peers[i],
			peers: peers,
			rng:   rand.New(rand.NewSource(seed + int64(i))),
		}
	}

	log.Info("starting workload", "actors", n, "ops", ops, "seed", seed)
	start := time.Now()
	group, groupCtx := errgroup.WithContext(handleExitSignal())
	for _, a := range actors {
		group.Go(func() error {
			return a.run(groupCtx, sim, ops)
		})
	}
	if err := group.Wait(); err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		log.Info("workload interrupted")
	}
	elapsed := time.Since(start)

	var committed, reverted int
	for _, a := range actors {
		committed += a.committed
		reverted += a.reverted
	}
	log.Info("workload done",
		"elapsed", elapsed,
		"committed", committed,
		"reverted", reverted,
		"virtualTime", time.Duration(sim.now.Load()-gene.Timestamp())*time.Second,
	)

	named := make([]namedAccount, 0, len(accs))
	for i, acc := range accs {
		named = append(named, namedAccount{fmt.Sprintf("dev%d", i), acc.Address})
	}
	entries, total, err := sim.holdings(named)
	if err != nil {
		return err
	}
	if devnet && total.Cmp(lockon.InitialSupply) != 0 {
		fmt.Fprint(os.Stderr, spew.Sdump(entries))
		return errors.Errorf("supply leak: %v held of %v minted", total, lockon.InitialSupply)
	}
	log.Info("supply audited", "held", total, "supply", lockon.InitialSupply)
	return nil
}
