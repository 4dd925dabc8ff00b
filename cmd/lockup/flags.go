// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/lockon-finance/lock-contracts/log"
)

var (
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a genesis file, if not set, the devnet genesis will be used",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	scenarioFlag = cli.StringFlag{
		Name:  "scenario",
		Usage: "path to a YAML scenario file",
	}
	authorityKeyFlag = cli.StringFlag{
		Name:  "authority-key",
		Usage: "reward authority private key as hex (first dev key if not set)",
	}
	actorsFlag = cli.IntFlag{
		Name:  "actors",
		Value: 8,
		Usage: "number of concurrent actors",
	}
	opsFlag = cli.IntFlag{
		Name:  "ops",
		Value: 200,
		Usage: "operations per actor",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "workload seed (random if not set)",
	}
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "authority private key as hex",
	}
	contractFlag = cli.StringFlag{
		Name:  "contract",
		Value: "lock",
		Usage: "claim contract (lock|index)",
	}
	beneficiaryFlag = cli.StringFlag{
		Name:  "beneficiary",
		Usage: "beneficiary address of the claim",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "claim amount in wei, decimal or 0x hex",
	}
	cumulativeFlag = cli.StringFlag{
		Name:  "cumulative",
		Usage: "cumulative pending reward in wei (index claims only)",
	}
	requestIDFlag = cli.StringFlag{
		Name:  "request-id",
		Usage: "claim request id (a fresh UUID if not set)",
	}
	chainTagFlag = cli.UintFlag{
		Name:  "chain-tag",
		Usage: "chain tag of the target network (devnet tag if not set)",
	}
	proofForFlag = cli.StringFlag{
		Name:  "proof-for",
		Usage: "print the proof of this recipient only",
	}
)
