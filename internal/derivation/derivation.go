// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package derivation

import (
	"reflect"
	"sort"
)

// Derivation is one build step as read from a derivation file. It is
// constructed by the parser and never mutated afterward; the derived views
// (Name, OutputNames, InputPaths) are recomputed on demand.
type Derivation struct {
	// Path is the file this record was parsed from. It identifies the
	// record but is not part of its content: two derivations read from
	// different files may still be field-wise equal.
	Path string

	// Outputs maps output name (e.g. "out") to its declared product.
	Outputs map[string]Output

	// InputDerivations maps a derivation file path to the output names of
	// that derivation consumed by this one. Key order carries no meaning.
	InputDerivations map[string][]string

	// InputFiles are store paths of direct, non-derivation inputs. The
	// slice has set semantics; element order carries no meaning.
	InputFiles []string

	// System is the architecture/OS tuple, e.g. "x86_64-linux".
	System string

	// Builder is the store path of the executable performing the build.
	Builder string

	// BuilderArgs are positional arguments for the builder; order matters.
	BuilderArgs []string

	// Environment is passed to the builder process. Every well-formed
	// derivation carries a "name" key.
	Environment map[string]string
}

// Name returns the derivation's name from its environment. A missing "name"
// key is a data-integrity fault and yields MissingFieldError, never a
// default.
func (d *Derivation) Name() (string, error) {
	name, ok := d.Environment["name"]
	if !ok {
		return "", &MissingFieldError{Field: "name"}
	}
	return name, nil
}

// OutputNames returns the sorted names of the outputs this derivation
// produces.
func (d *Derivation) OutputNames() []string {
	names := make([]string, 0, len(d.Outputs))
	for name := range d.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InputPaths returns every store path needed to build the derivation: each
// input file verbatim, plus the resolved store path of every consumed output
// of every input derivation. Each call resolves from scratch with a fresh
// Resolver.
func (d *Derivation) InputPaths() ([]string, error) {
	return NewResolver().InputPaths(d)
}

// ToMap converts the derivation's content to a plain mapping suitable for
// serialization. Set-valued fields are normalized to sorted sequences so
// output is deterministic. Path is identity metadata and is not included.
func (d *Derivation) ToMap() map[string]interface{} {
	outputs := make(map[string]interface{}, len(d.Outputs))
	for name, out := range d.Outputs {
		outputs[name] = out.Display()
	}

	inputDerivations := make(map[string][]string, len(d.InputDerivations))
	for path, names := range d.InputDerivations {
		inputDerivations[path] = sortedCopy(names)
	}

	return map[string]interface{}{
		"outputs":           outputs,
		"input_derivations": inputDerivations,
		"input_files":       sortedCopy(d.InputFiles),
		"system":            d.System,
		"builder":           d.Builder,
		"builder_args":      append([]string{}, d.BuilderArgs...),
		"environment":       d.Environment,
	}
}

// Equal reports field-wise equality of content. Path is excluded, and the
// unordered fields (input files, consumed output names) are compared as
// sets.
func (d *Derivation) Equal(other *Derivation) bool {
	if d == nil || other == nil {
		return d == other
	}
	return reflect.DeepEqual(d.ToMap(), other.ToMap())
}

// sortedCopy returns a sorted copy, leaving the receiver's field untouched.
func sortedCopy(in []string) []string {
	out := append([]string{}, in...)
	sort.Strings(out)
	return out
}
