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
	"github.com/drvctl/drvctl/internal/display"
	"github.com/drvctl/drvctl/internal/meta"
)

// showCommandAction is the action handler for the "show" subcommand. It
// parses the derivation at the positional path and prints the whole record
// or the selected attribute/environment variable.
func showCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	config.Config.Namespace = "show"
	applyStoreRoot(cmd)

	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("missing derivation path argument")
	}

	d, err := derivation.ParseFile(path)
	if err != nil {
		return err
	}

	out, err := display.Render(d, display.Options{
		Attribute: cmd.String("attribute"),
		EnvVar:    cmd.String("env-var"),
		Format:    selectedFormat(cmd),
		Pretty:    cmd.Bool("pretty"),
	})
	if err != nil {
		return fmt.Errorf("failed to display %s: %w", d.Path, err)
	}

	fmt.Fprintln(os.Stdout, out)
	return nil
}

// showCommandBuilder constructs the cli.Command for "show", wiring metadata,
// flags, and the action handler.
func showCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show a derivation",
		UsageText: "drvctl show <path> [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			jsonFlag,
			yamlFlag,
			prettyFlag,
			attributeFlag,
			envVarFlag,
		}, NewGlobalFlags("show")...),
		Action: showCommandAction,
	}
}
