// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"os"
	"path/filepath"

	"github.com/drvctl/drvctl/internal/config"
)

// Dir returns the store root directory. The NIX_STORE environment variable
// wins, then the store.root config key. An empty string means no root is
// known and relative paths are left alone.
func Dir() string {
	if dir := os.Getenv("NIX_STORE"); dir != "" {
		return dir
	}

	dir, err := config.GetString("store.root", "")
	if err != nil {
		return ""
	}
	return dir
}

// Resolve makes a derivation path usable for reading. A relative path is
// joined with the store root when one is known; absolute paths and relative
// paths without a root pass through unchanged. This rule applies both to
// paths given on the command line and to every derivation path referenced
// during input closure resolution.
func Resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	if dir := Dir(); dir != "" {
		return filepath.Join(dir, path)
	}

	return path
}
