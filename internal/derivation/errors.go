// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package derivation

import "fmt"

// ParseError reports a malformed derivation literal. It always carries the
// path of the offending source file so callers never see a bare scanner
// error without context.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse derivation at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports an absent field, attribute, or environment
// variable that the caller expected to exist.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("derivation has no %q field", e.Field)
}

// UnresolvedInputError reports an input derivation that could not be read,
// or one that does not define a requested output name.
type UnresolvedInputError struct {
	Path   string
	Output string
	Err    error
}

func (e *UnresolvedInputError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("input derivation %s does not define output %q", e.Path, e.Output)
	}
	return fmt.Sprintf("could not resolve input derivation %s: %v", e.Path, e.Err)
}

func (e *UnresolvedInputError) Unwrap() error {
	return e.Err
}
