// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package derivation

// Output is one declared product of a derivation. The two cases are decided
// at parse time by the hash-algorithm field of the output tuple: an empty
// algorithm means a plain store path, anything else means a fixed-output
// (content-addressed) product.
type Output interface {
	// StorePath is the store path the output materializes at.
	StorePath() string
	// Display is the wire-shaped value used for rendering: a bare string
	// for simple outputs, a three-element list for fixed outputs.
	Display() interface{}
}

// SimpleOutput is an output whose path is derived from the build recipe.
type SimpleOutput struct {
	Path string
}

func (o SimpleOutput) StorePath() string { return o.Path }

func (o SimpleOutput) Display() interface{} { return o.Path }

// FixedOutput is a content-addressed output with a declared expected hash.
type FixedOutput struct {
	Path          string
	HashAlgorithm string
	Hash          string
}

func (o FixedOutput) StorePath() string { return o.Path }

func (o FixedOutput) Display() interface{} {
	return []string{o.Path, o.HashAlgorithm, o.Hash}
}
