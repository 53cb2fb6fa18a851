// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/drvctl/drvctl/internal/config"
	"github.com/drvctl/drvctl/internal/derivation"
	"github.com/drvctl/drvctl/internal/differ"
	"github.com/drvctl/drvctl/internal/meta"
)

// diffCommandAction is the action handler for the "diff" subcommand. It
// parses both derivations and prints the naive structural report. With a
// single directory argument, the derivations to compare are picked
// interactively.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "diff"
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

	if cmd.Bool("unified") {
		out, err := differ.Unified(a, b)
		if err != nil {
			return err
		}
		if out == "" {
			fmt.Fprintln(os.Stdout, "The derivations are identical.")
			return nil
		}
		fmt.Fprintln(os.Stdout, out)
		return nil
	}

	report := differ.Diff(a, b)
	if report.Identical() {
		fmt.Fprintln(os.Stdout, "The derivations are identical.")
		return nil
	}

	differ.Render(report, cmd, os.Stdout)
	return nil
}

// diffCommandBuilder constructs the cli.Command for "diff", wiring metadata,
// flags, and the action handler.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "diff two derivations",
		UsageText: "drvctl diff <first> <second> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "unified",
				Aliases: []string{"u"},
				Usage:   "print a unified diff instead of a table",
				Value:   false,
			},
		}, NewGlobalFlags("diff")...),
		Action: diffCommandAction,
	}
}

// diffArgs resolves the positional arguments of diff/sdiff to two
// derivation paths. A single directory argument opens an interactive picker
// over the .drv files inside it; empty results mean the user backed out.
func diffArgs(cmd *cli.Command) (string, string, error) {
	args := cmd.Args().Slice()

	if len(args) == 1 {
		info, err := os.Stat(args[0])
		if err == nil && info.IsDir() {
			return pickTwo(args[0])
		}
	}

	if len(args) != 2 {
		return "", "", fmt.Errorf("expected two derivation paths, got %d", len(args))
	}

	return args[0], args[1], nil
}

// pickTwo lists the .drv files in dir and lets the user select two.
func pickTwo(dir string) (string, string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.drv"))
	if err != nil {
		return "", "", fmt.Errorf("failed to list derivations in %s: %w", dir, err)
	}
	if len(paths) < 2 {
		return "", "", fmt.Errorf("%s holds %d derivation files, need at least 2", dir, len(paths))
	}

	selected := differ.SelectDerivations(paths)
	if len(selected) != 2 {
		return "", "", nil
	}
	return selected[0], selected[1], nil
}
