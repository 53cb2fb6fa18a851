// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package derivation

import (
	"fmt"
	"os"
	"strings"

	"github.com/drvctl/drvctl/internal/log"
	"github.com/drvctl/drvctl/internal/store"
)

// ParseFile reads and parses the derivation file at path. A relative path is
// resolved against the store root first. Any failure, including a read
// failure, surfaces as a ParseError carrying the resolved path.
func ParseFile(path string) (*Derivation, error) {
	resolved := store.Resolve(path)
	log.Debugf("parsing derivation file: path=%s resolved=%s", path, resolved)

	text, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &ParseError{Path: resolved, Err: err}
	}

	return Parse(string(text), resolved)
}

// Parse parses a derivation literal into a Derivation. The literal is an
// optional Derive( ... ) wrapper around a 7-element tuple; see the scanner
// below for the value grammar. sourcePath is recorded on the result and on
// any error.
func Parse(text string, sourcePath string) (*Derivation, error) {
	elems, err := parseLiteral(text)
	if err != nil {
		return nil, &ParseError{Path: sourcePath, Err: err}
	}

	d, err := fromLiteral(elems)
	if err != nil {
		return nil, &ParseError{Path: sourcePath, Err: err}
	}

	d.Path = sourcePath
	return d, nil
}

// value is one node of the parsed literal: a string, or a list/tuple of
// further values.
type value interface{}

// parseLiteral scans the whole text and returns the top-level elements.
func parseLiteral(text string) ([]value, error) {
	s := &scanner{src: text}
	s.skipSpace()

	wrapped := s.consume("Derive(")

	var elems []value
	for {
		s.skipSpace()
		if s.eof() {
			if wrapped {
				return nil, fmt.Errorf("unexpected end of input, missing closing %q", ")")
			}
			break
		}
		if wrapped && s.peek() == ')' {
			s.pos++
			s.skipSpace()
			if !s.eof() {
				return nil, fmt.Errorf("trailing data at offset %d", s.pos)
			}
			break
		}

		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)

		s.skipSpace()
		if !s.eof() && s.peek() == ',' {
			s.pos++
		}
	}

	return elems, nil
}

// fromLiteral folds the 7 top-level elements into a Derivation.
func fromLiteral(elems []value) (*Derivation, error) {
	// A literal without the Derive( prefix may still parenthesize the
	// tuple; unwrap it so both spellings fold the same way.
	if len(elems) == 1 {
		if inner, ok := elems[0].([]value); ok {
			elems = inner
		}
	}

	if len(elems) != 7 {
		return nil, fmt.Errorf("expected 7 top-level elements, got %d", len(elems))
	}

	outputs, err := foldOutputs(elems[0])
	if err != nil {
		return nil, err
	}
	if len(outputs) == 0 {
		return nil, fmt.Errorf("derivation declares no outputs")
	}

	inputDerivations, err := foldInputDerivations(elems[1])
	if err != nil {
		return nil, err
	}

	inputFiles, err := asStringList(elems[2], "input files")
	if err != nil {
		return nil, err
	}

	system, err := asString(elems[3], "system")
	if err != nil {
		return nil, err
	}

	builder, err := asString(elems[4], "builder")
	if err != nil {
		return nil, err
	}

	builderArgs, err := asStringList(elems[5], "builder args")
	if err != nil {
		return nil, err
	}

	environment, err := foldEnvironment(elems[6])
	if err != nil {
		return nil, err
	}

	return &Derivation{
		Outputs:          outputs,
		InputDerivations: inputDerivations,
		InputFiles:       inputFiles,
		System:           system,
		Builder:          builder,
		BuilderArgs:      builderArgs,
		Environment:      environment,
	}, nil
}

// foldOutputs folds the list of (name, path, hashAlgorithm, hash) tuples
// into the outputs map. An empty hash algorithm marks a plain output.
func foldOutputs(v value) (map[string]Output, error) {
	list, err := asList(v, "outputs")
	if err != nil {
		return nil, err
	}

	outputs := make(map[string]Output, len(list))
	for _, item := range list {
		tuple, err := asTuple(item, 4, "output")
		if err != nil {
			return nil, err
		}
		name, path, algo, hash := tuple[0], tuple[1], tuple[2], tuple[3]
		if algo == "" {
			outputs[name] = SimpleOutput{Path: path}
		} else {
			outputs[name] = FixedOutput{Path: path, HashAlgorithm: algo, Hash: hash}
		}
	}
	return outputs, nil
}

// foldInputDerivations folds the list of (path, outputNames) tuples into a
// map. Well-formed inputs never repeat a key; if one does, the last entry
// wins.
func foldInputDerivations(v value) (map[string][]string, error) {
	list, err := asList(v, "input derivations")
	if err != nil {
		return nil, err
	}

	inputs := make(map[string][]string, len(list))
	for _, item := range list {
		pair, err := asList(item, "input derivation")
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("input derivation entry has %d elements, expected 2", len(pair))
		}
		path, err := asString(pair[0], "input derivation path")
		if err != nil {
			return nil, err
		}
		names, err := asStringList(pair[1], "input derivation outputs")
		if err != nil {
			return nil, err
		}
		inputs[path] = names
	}
	return inputs, nil
}

// foldEnvironment folds the list of (name, value) tuples into the
// environment map, last entry winning on a duplicate key.
func foldEnvironment(v value) (map[string]string, error) {
	list, err := asList(v, "environment")
	if err != nil {
		return nil, err
	}

	env := make(map[string]string, len(list))
	for _, item := range list {
		pair, err := asTuple(item, 2, "environment entry")
		if err != nil {
			return nil, err
		}
		env[pair[0]] = pair[1]
	}
	return env, nil
}

func asString(v value, what string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s is not a string", what)
	}
	return s, nil
}

func asList(v value, what string) ([]value, error) {
	list, ok := v.([]value)
	if !ok {
		return nil, fmt.Errorf("%s is not a list", what)
	}
	return list, nil
}

func asStringList(v value, what string) ([]string, error) {
	list, err := asList(v, what)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s element %d is not a string", what, i)
		}
		out[i] = s
	}
	return out, nil
}

// asTuple converts v to a tuple of exactly n strings.
func asTuple(v value, n int, what string) ([]string, error) {
	list, err := asList(v, what)
	if err != nil {
		return nil, err
	}
	if len(list) != n {
		return nil, fmt.Errorf("%s tuple has %d elements, expected %d", what, len(list), n)
	}
	out := make([]string, n)
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s tuple element %d is not a string", what, i)
		}
		out[i] = s
	}
	return out, nil
}

// scanner is a single-pass cursor over the literal text. Delimiters inside
// quoted strings never terminate a token; splitting on delimiters naively
// would corrupt values containing commas or brackets.
type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) peek() byte {
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

// consume advances past lit if the input starts with it at the cursor.
func (s *scanner) consume(lit string) bool {
	if strings.HasPrefix(s.src[s.pos:], lit) {
		s.pos += len(lit)
		return true
	}
	return false
}

// parseValue parses one value: a quoted string, or a bracketed list/tuple
// of further values.
func (s *scanner) parseValue() (value, error) {
	if s.eof() {
		return nil, fmt.Errorf("unexpected end of input")
	}

	switch s.peek() {
	case '"':
		return s.parseString()
	case '[':
		return s.parseSeq('[', ']')
	case '(':
		return s.parseSeq('(', ')')
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", s.peek(), s.pos)
	}
}

// parseString parses a double-quoted string. Backslash escapes a quote, a
// backslash, or one of n/t/r; any other escaped byte is taken literally.
func (s *scanner) parseString() (string, error) {
	start := s.pos
	s.pos++ // opening quote

	var b strings.Builder
	for !s.eof() {
		c := s.src[s.pos]
		s.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if s.eof() {
				return "", fmt.Errorf("unterminated escape at offset %d", s.pos)
			}
			e := s.src[s.pos]
			s.pos++
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}

	return "", fmt.Errorf("unterminated string starting at offset %d", start)
}

// parseSeq parses a comma-separated sequence of values between open and
// close. Lists and tuples share this shape and both come back as []value.
func (s *scanner) parseSeq(open, close byte) (value, error) {
	start := s.pos
	s.pos++ // opening bracket

	elems := []value{}
	for {
		s.skipSpace()
		if s.eof() {
			return nil, fmt.Errorf("unbalanced %q starting at offset %d", open, start)
		}
		if s.peek() == close {
			s.pos++
			return elems, nil
		}

		v, err := s.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)

		s.skipSpace()
		if s.eof() {
			return nil, fmt.Errorf("unbalanced %q starting at offset %d", open, start)
		}
		switch s.peek() {
		case ',':
			s.pos++
		case close:
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", s.peek(), s.pos)
		}
	}
}
