// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/lockon-finance/lock-contracts/builtin"
	"github.com/lockon-finance/lock-contracts/builtin/airdrop"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/runtime"
)

// Scenario is a replayable sequence of timed contract interactions.
//
//	name: first staker
//	steps:
//	  - {at: 60, caller: treasury, action: transfer, to: dev1, amount: 1000000000000000000000}
//	  - {at: 120, caller: dev1, action: lock-deposit, amount: 500000000000000000000, duration: 8640000}
//	  - {at: 8640120, caller: dev1, action: lock-claim, amount: 0}
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one interaction. At is the offset in seconds from the launch
// time, Caller a dev account alias or a hex address. The remaining
// fields apply per action.
type Step struct {
	At       uint64 `yaml:"at"`
	Caller   string `yaml:"caller"`
	Action   string `yaml:"action"`
	To       string `yaml:"to,omitempty"`
	Amount   string `yaml:"amount,omitempty"`
	Duration uint64 `yaml:"duration,omitempty"`
	Category int64  `yaml:"category,omitempty"`
}

func loadScenario(path string) (*Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario file")
	}
	var scen Scenario
	if err := yaml.Unmarshal(content, &scen); err != nil {
		return nil, errors.Wrap(err, "parse scenario file")
	}
	if len(scen.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &scen, nil
}

// executeStep advances the clock to the step offset and performs the
// action as the resolved caller.
func (sim *simulation) executeStep(step *Step) error {
	caller, err := resolveAccount(step.Caller)
	if err != nil {
		return err
	}
	if err := sim.advanceTo(step.At); err != nil {
		return err
	}

	switch step.Action {
	case "lock-claim":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return err
		}
		_, err = sim.lockClaim(caller, amount)
		return err
	case "index-claim":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return err
		}
		_, err = sim.indexClaim(caller, amount)
		return err
	}

	fn, err := stepFn(step)
	if err != nil {
		return err
	}
	_, err = sim.transact(caller, step.Action, fn)
	return err
}

// stepFn builds the transaction body of a plain step.
func stepFn(step *Step) (func(env *runtime.Environment) error, error) {
	token := builtin.LockToken.Address
	switch step.Action {
	case "transfer":
		to, err := resolveAccount(step.To)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return nil, err
		}
		return func(env *runtime.Environment) error {
			return builtin.LockToken.WithState(env.State()).Transfer(env.Caller(), to, amount)
		}, nil
	case "lock-deposit":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return nil, err
		}
		return func(env *runtime.Environment) error {
			return builtin.LockStaking.WithState(env.State()).Deposit(env, token, amount, step.Duration)
		}, nil
	case "lock-extend":
		return func(env *runtime.Environment) error {
			return builtin.LockStaking.WithState(env.State()).Extend(env, token, step.Duration)
		}, nil
	case "lock-withdraw":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return nil, err
		}
		return func(env *runtime.Environment) error {
			return builtin.LockStaking.WithState(env.State()).Withdraw(env, token, amount)
		}, nil
	case "index-deposit":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return nil, err
		}
		return func(env *runtime.Environment) error {
			return builtin.IndexStaking.WithState(env.State()).Deposit(env, token, amount)
		}, nil
	case "index-withdraw":
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return nil, err
		}
		return func(env *runtime.Environment) error {
			return builtin.IndexStaking.WithState(env.State()).Withdraw(env, token, amount)
		}, nil
	case "vesting-claim":
		return func(env *runtime.Environment) error {
			return builtin.Vesting.WithState(env.State()).Claim(env, big.NewInt(step.Category))
		}, nil
	case "airdrop-grant":
		to, err := resolveAccount(step.To)
		if err != nil {
			return nil, err
		}
		amount, err := parseAmount(step.Amount)
		if err != nil {
			return nil, err
		}
		return func(env *runtime.Environment) error {
			return builtin.Airdrop.WithState(env.State()).SetAllocations(env, []airdrop.Allocation{{Recipient: to, Amount: amount}})
		}, nil
	case "airdrop-claim":
		return func(env *runtime.Environment) error {
			return builtin.Airdrop.WithState(env.State()).Claim(env)
		}, nil
	default:
		return nil, errors.Errorf("unknown action %q", step.Action)
	}
}

// scenarioAccounts resolves the distinct account names of a scenario in
// first-seen order.
func scenarioAccounts(scen *Scenario) ([]namedAccount, error) {
	var accounts []namedAccount
	seen := make(map[string]bool)
	for _, step := range scen.Steps {
		for _, name := range []string{step.Caller, step.To} {
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			addr, err := resolveAccount(name)
			if err != nil {
				return nil, err
			}
			accounts = append(accounts, namedAccount{name, addr})
		}
	}
	return accounts, nil
}

func runAction(ctx *cli.Context) error {
	initLogger(ctx)

	path := ctx.String(scenarioFlag.Name)
	if path == "" {
		path = ctx.Args().First()
	}
	if path == "" {
		return errors.New("no scenario file, pass one as argument or via --scenario")
	}
	scen, err := loadScenario(path)
	if err != nil {
		return err
	}
	accounts, err := scenarioAccounts(scen)
	if err != nil {
		return err
	}

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
	printStartupMessage(gene, ctx.String(genesisFlag.Name) == "")

	log.Info("replaying scenario", "name", scen.Name, "steps", len(scen.Steps))
	for i := range scen.Steps {
		if err := sim.executeStep(&scen.Steps[i]); err != nil {
			return errors.Wrapf(err, "step %d", i)
		}
	}

	entries, total, err := sim.holdings(accounts)
	if err != nil {
		return err
	}
	fmt.Printf("Holdings at %v\n", time.Unix(int64(sim.now.Load()), 0).UTC())
	for _, entry := range entries {
		fmt.Printf("    %-14s [ %v ]\n", entry.Name, entry.Balance)
	}
	fmt.Printf("    %-14s [ %v ]\n", "visible", total)
	fmt.Printf("    %-14s [ %v ]\n", "supply", lockon.InitialSupply)
	return nil
}
