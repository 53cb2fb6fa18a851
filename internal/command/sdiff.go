// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drvctl/drvctl/internal/config"
	"github.com/drvctl/drvctl/internal/derivation"
	"github.com/drvctl/drvctl/internal/differ"
	"github.com/drvctl/drvctl/internal/meta"
)

// sdiffCommandAction is the action handler for the "sdiff" subcommand. It
// compares both derivations under the smart normalization and prints either
// the equivalence summary or the first point of divergence.
func sdiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "sdiff"
	applyStoreRoot(cmd)

	first, second, err := diffArgs(cmd)
	if err != nil {
		return err
	}
	if first == "" {
		// Interactive selection aborted.
		return nil
	}

	a, err := derivation.ParseFile(first)
	if err != nil {
		return err
	}
	b, err := derivation.ParseFile(second)
	if err != nil {
		return err
	}

	summary, divergence, err := differ.Smart(a, b)
	if err != nil {
		return err
	}

	if divergence == nil {
		fmt.Fprintln(os.Stdout, summary)
		return nil
	}

	fmt.Fprintf(os.Stdout, "%s differs:\n", divergence.Description)
	fmt.Fprintln(os.Stdout, "Left:")
	fmt.Fprintln(os.Stdout, divergence.Left)
	fmt.Fprintln(os.Stdout, "Right:")
	fmt.Fprintln(os.Stdout, divergence.Right)
	return nil
}

// sdiffCommandBuilder constructs the cli.Command for "sdiff", wiring
// metadata, flags, and the action handler.
func sdiffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "sdiff",
		Usage:     "diff two derivations smartly",
		UsageText: "drvctl sdiff <first> <second> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  NewGlobalFlags("sdiff"),
		Action: sdiffCommandAction,
	}
}
