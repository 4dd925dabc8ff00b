// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockon-finance/lock-contracts/genesis"
	"github.com/lockon-finance/lock-contracts/lockon"
	"github.com/lockon-finance/lock-contracts/log"
	"github.com/lockon-finance/lock-contracts/metrics"
)

func initLogger(ctx *cli.Context) {
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(os.Stdout, level)
	} else {
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		handler = log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)
	}
	log.SetDefault(log.NewLogger(handler))
}

// selectGenesis picks the devnet genesis or loads a custom one from
// the file the genesis flag points to.
func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var custom genesis.CustomGenesis
	if err := json.Unmarshal(raw, &custom); err != nil {
		return nil, errors.Wrap(err, "parse genesis file")
	}
	return genesis.NewCustomNet(&custom)
}

func loadKey(ctx *cli.Context, flagName string) (*ecdsa.PrivateKey, error) {
	keyHex := ctx.String(flagName)
	if keyHex == "" {
		return genesis.DevAccounts()[0].PrivateKey, nil
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(keyHex, "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "-%s", flagName)
	}
	return key, nil
}

// resolveAccount accepts a dev account alias (treasury, dev0..dev9) or
// a hex address.
func resolveAccount(name string) (lockon.Address, error) {
	if name == "treasury" {
		return genesis.DevAccounts()[0].Address, nil
	}
	if rest, ok := strings.CutPrefix(name, "dev"); ok {
		if i, err := strconv.Atoi(rest); err == nil {
			accs := genesis.DevAccounts()
			if i < 0 || i >= len(accs) {
				return lockon.Address{}, errors.Errorf("no dev account %q", name)
			}
			return accs[i].Address, nil
		}
	}
	addr, err := lockon.ParseAddress(name)
	if err != nil {
		return lockon.Address{}, errors.Wrapf(err, "account %q", name)
	}
	return *addr, nil
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("amount not set")
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, errors.Errorf("negative amount %q", s)
	}
	return v, nil
}

func startMetrics(ctx *cli.Context) (func(), error) {
	if !ctx.Bool(enableMetricsFlag.Name) {
		return func() {}, nil
	}
	metrics.InitializePrometheusMetrics()
	url, closeFunc, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "start metrics server")
	}
	log.Info("metrics server started", "url", url)
	return closeFunc, nil
}

func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}

func printStartupMessage(gene *genesis.Genesis, devAccounts bool) {
	fmt.Printf(`Starting %v
    Network    [ %v %v ]
    Chain tag  [ 0x%02x ]
    Launched   [ %v ]
`,
		fmt.Sprintf("Lockup/v%s/%s/%s", fullVersion(), runtime.GOOS, runtime.Version()),
		gene.ID(), gene.Name(),
		gene.ChainTag(),
		time.Unix(int64(gene.Timestamp()), 0).UTC())

	if !devAccounts {
		return
	}
	for i, acc := range genesis.DevAccounts() {
		fmt.Printf("    dev%-6d [ %v 0x%x ]\n", i, acc.Address, crypto.FromECDSA(acc.PrivateKey))
	}
}
