// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"

	"github.com/urfave/cli/v3"

	"github.com/drvctl/drvctl/internal/config"
	"github.com/drvctl/drvctl/internal/log"
	"github.com/drvctl/drvctl/internal/meta"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// applyStoreRoot publishes the resolved --store value so that path
// resolution sees it, including during input closure resolution. The
// flag's value chain already prefers an explicit flag over NIX_STORE over
// the config file.
func applyStoreRoot(cmd *cli.Command) {
	if root := cmd.String("store"); root != "" {
		log.Debugf("store root: %s", root)
		_ = os.Setenv("NIX_STORE", root)
	}
}

// selectedFormat resolves the display format for show: an explicit format
// flag wins, then the (namespaced) format config key, then json.
func selectedFormat(cmd *cli.Command) string {
	switch {
	case cmd.Bool("yaml"):
		return "yaml"
	case cmd.Bool("json"):
		return "json"
	}

	format, _ := config.GetString("format", "json")
	return format
}

// configFilePath returns the path of the loaded config file, or "" when no
// config file was found.
func configFilePath() string {
	return config.Config.Source
}
