// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/drvctl/drvctl/internal/derivation"
	"github.com/drvctl/drvctl/internal/log"
)

// Divergence names the first point at which two derivations differ, with a
// printable form of each side.
type Divergence struct {
	Description string
	Left        string
	Right       string
}

// Smart compares two derivations after normalization. When they are judged
// equivalent it returns a single summary string; otherwise it returns a
// Divergence. Exactly one of the two results is non-zero on success.
func Smart(a, b *derivation.Derivation) (string, *Divergence, error) {
	leftDoc, err := json.Marshal(comparisonMap(a))
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode %s for comparison: %w", a.Path, err)
	}
	rightDoc, err := json.Marshal(comparisonMap(b))
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode %s for comparison: %w", b.Path, err)
	}

	delta, err := gojsondiff.New().Compare(leftDoc, rightDoc)
	if err != nil {
		return "", nil, fmt.Errorf("failed to compare derivations: %w", err)
	}

	if !delta.Modified() {
		return fmt.Sprintf("%s and %s are equivalent", a.Path, b.Path), nil, nil
	}

	field := firstDivergentField(delta)
	return "", &Divergence{
		Description: field,
		Left:        sideValue(leftDoc, field),
		Right:       sideValue(rightDoc, field),
	}, nil
}

// Unified renders the full delta between two derivations in unified ascii
// form, or an empty string when nothing differs.
func Unified(a, b *derivation.Derivation) (string, error) {
	leftDoc, err := json.Marshal(comparisonMap(a))
	if err != nil {
		return "", fmt.Errorf("failed to encode %s for comparison: %w", a.Path, err)
	}
	rightDoc, err := json.Marshal(comparisonMap(b))
	if err != nil {
		return "", fmt.Errorf("failed to encode %s for comparison: %w", b.Path, err)
	}

	delta, err := gojsondiff.New().Compare(leftDoc, rightDoc)
	if err != nil {
		return "", fmt.Errorf("failed to compare derivations: %w", err)
	}

	if !delta.Modified() {
		return "", nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(leftDoc, &jdoc); err != nil {
		return "", fmt.Errorf("failed to decode comparison document: %w", err)
	}

	cfg := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       true,
	}

	return formatter.NewAsciiFormatter(jdoc, cfg).Format(delta)
}

// firstDivergentField returns the name of the lexically first top-level
// field the delta touches.
func firstDivergentField(delta gojsondiff.Diff) string {
	var fields []string
	for _, d := range delta.Deltas() {
		switch d := d.(type) {
		case gojsondiff.PostDelta:
			fields = append(fields, d.PostPosition().String())
		case gojsondiff.PreDelta:
			fields = append(fields, d.PrePosition().String())
		}
	}

	if len(fields) == 0 {
		log.Warnf("modified delta with no positions")
		return "unknown"
	}

	sort.Strings(fields)
	return fields[0]
}

// sideValue extracts a printable form of one side's value for the field.
func sideValue(doc []byte, field string) string {
	result := gjson.GetBytes(doc, field)
	if !result.Exists() {
		return "(absent)"
	}
	return result.Raw
}
