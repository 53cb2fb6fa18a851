// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/drvctl/drvctl/internal/display"
)

var (
	jsonFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "json",
		Usage:       "JSON format",
		HideDefault: true,
	}

	yamlFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "yaml",
		Usage:       "YAML format",
		HideDefault: true,
	}

	prettyFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:    "pretty",
		Aliases: []string{"p"},
		Usage:   "pretty-print, and emit selected strings bare",
		Value:   false,
	}

	attributeFlag *cli.StringFlag = &cli.StringFlag{
		Name:    "attribute",
		Aliases: []string{"A"},
		Usage:   "attribute to show, one of: " + strings.Join(display.Attributes, ", "),
	}

	envVarFlag *cli.StringFlag = &cli.StringFlag{
		Name:    "env-var",
		Aliases: []string{"e"},
		Usage:   "environment variable to show",
	}
)

// NewGlobalFlags returns the flags shared by every subcommand.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.IntFlag{
			Name:   "padding",
			Hidden: true,
			Usage:  "column padding for table output",
			Value:  2,
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with table output",
			Value:   false,
		},
		NewStoreFlag(ns),
	}

	return
}

// NewStoreFlag constructs the "store" flag, resolving its value from the
// NIX_STORE environment variable and then the config file (namespaced and
// global store.root keys).
func NewStoreFlag(ns string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "store",
		Usage: "store root used to resolve relative derivation paths",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NIX_STORE"),
		),
	}

	return NameSpacedValueChainFlagFromConfigFile(ns, "store.root", flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources for key to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, key string, flag *cli.StringFlag) *cli.StringFlag {
	path := configFilePath()
	if path == "" {
		return flag
	}

	src := yaml.YAML(ns+"."+key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(key, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
