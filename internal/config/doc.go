// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads and serves drvctl.yaml values with dotted-key lookups
// and optional per-command namespacing.
package config
