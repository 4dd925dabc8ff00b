// Copyright (c) 2026 The Lockon developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// lockup is the operational tool of the LOCK token economy. It replays
// scenarios against an in-memory deployment, drives stress workloads,
// signs claim grants as the reward authority and builds airdrop
// distribution trees.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "Lockup",
		Usage:     "tooling for the LOCK token economy contracts",
		Copyright: "2026 Lockon developers",
		Commands: []cli.Command{
			{
				Name:      "run",
				Usage:     "replay a YAML scenario against a fresh genesis",
				ArgsUsage: "[scenario file]",
				Flags: []cli.Flag{
					genesisFlag,
					scenarioFlag,
					authorityKeyFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: runAction,
			},
			{
				Name:  "stress",
				Usage: "drive a concurrent random workload against a fresh genesis",
				Flags: []cli.Flag{
					genesisFlag,
					authorityKeyFlag,
					actorsFlag,
					opsFlag,
					seedFlag,
					verbosityFlag,
					jsonLogsFlag,
					enableMetricsFlag,
					metricsAddrFlag,
				},
				Action: stressAction,
			},
			{
				Name:  "sign",
				Usage: "sign a claim grant as the reward authority",
				Flags: []cli.Flag{
					keyFlag,
					contractFlag,
					beneficiaryFlag,
					amountFlag,
					cumulativeFlag,
					requestIDFlag,
					chainTagFlag,
				},
				Action: signAction,
			},
			{
				Name:      "merkle",
				Usage:     "build the distribution tree of an allocation list",
				ArgsUsage: "[allocations file]",
				Flags: []cli.Flag{
					proofForFlag,
				},
				Action: merkleAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
