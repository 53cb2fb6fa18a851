// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package display converts a derivation, or a selected part of one, into a
// display string in json or yaml form.
package display
