// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the drvctl CLI surface: the app shell and the
// show, diff, and sdiff subcommands.
package command
