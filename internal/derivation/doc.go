// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package derivation parses build-step description files into an immutable
// in-memory model and resolves their input closures.
package derivation
