// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package derivation

import (
	"sort"

	"github.com/drvctl/drvctl/internal/log"
)

// Resolver computes input closures. Every resolution run gets its own
// Resolver so the parse cache never outlives a call; there is no module-
// level state, which keeps resolution side-effect-free and testable in
// isolation.
type Resolver struct {
	// cache holds parsed input derivations keyed by referenced path. A
	// store path referenced through several input derivations is parsed
	// once per run; results are identical to re-parsing every time.
	cache map[string]*Derivation
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]*Derivation)}
}

// InputPaths returns the sorted set of store paths needed to build d: each
// input file verbatim, plus the store path of every consumed output of
// every input derivation. Input derivation files are read and parsed on
// demand; an unreadable file or an undefined output name yields
// UnresolvedInputError.
func (r *Resolver) InputPaths(d *Derivation) ([]string, error) {
	paths := make(map[string]struct{}, len(d.InputFiles))
	for _, file := range d.InputFiles {
		paths[file] = struct{}{}
	}

	// Iterate input derivations in path order so failures are stable when
	// more than one entry is broken.
	for _, drvPath := range sortedKeys(d.InputDerivations) {
		input, err := r.load(drvPath)
		if err != nil {
			return nil, &UnresolvedInputError{Path: drvPath, Err: err}
		}

		for _, name := range d.InputDerivations[drvPath] {
			output, ok := input.Outputs[name]
			if !ok {
				return nil, &UnresolvedInputError{Path: drvPath, Output: name}
			}
			paths[output.StorePath()] = struct{}{}
		}
	}

	result := make([]string, 0, len(paths))
	for path := range paths {
		result = append(result, path)
	}
	sort.Strings(result)
	return result, nil
}

// load returns the parsed derivation at path, reading the file only on the
// first request per run.
func (r *Resolver) load(path string) (*Derivation, error) {
	if d, ok := r.cache[path]; ok {
		log.Tracef("resolver cache hit: path=%s", path)
		return d, nil
	}

	d, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	r.cache[path] = d
	return d, nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
