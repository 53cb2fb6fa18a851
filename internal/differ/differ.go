// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/dustin/go-humanize/english"

	"github.com/drvctl/drvctl/internal/derivation"
)

// comparedFields is the fixed comparison order of the report.
var comparedFields = []string{
	"outputs",
	"input_derivations",
	"input_files",
	"system",
	"builder",
	"builder_args",
	"environment",
}

// FieldDiff is one differing field with a rendition of each side.
type FieldDiff struct {
	Field string
	Left  string
	Right string
}

// Report is the naive structural comparison of two derivations.
type Report struct {
	Fields []FieldDiff
}

// Identical reports whether no field differed.
func (r Report) Identical() bool {
	return len(r.Fields) == 0
}

// Summary returns a one-line count of differing fields.
func (r Report) Summary() string {
	return english.Plural(len(r.Fields), "field differs", "fields differ")
}

// Diff compares two derivations field by field over their normalized
// comparison mappings. Outputs are reduced to sorted output names before
// comparing; concrete output paths always differ between two otherwise-
// identical derivations and carry no diagnostic value.
func Diff(a, b *derivation.Derivation) Report {
	left := comparisonMap(a)
	right := comparisonMap(b)

	var report Report
	for _, field := range comparedFields {
		if reflect.DeepEqual(left[field], right[field]) {
			continue
		}
		report.Fields = append(report.Fields, FieldDiff{
			Field: field,
			Left:  renderValue(left[field]),
			Right: renderValue(right[field]),
		})
	}
	return report
}

// comparisonMap builds the normalized comparison mapping of a derivation.
// Ordered fields (builder args) keep their order; set-like fields come back
// sorted from ToMap so element order alone never registers as a difference.
func comparisonMap(d *derivation.Derivation) map[string]interface{} {
	m := d.ToMap()

	names := make([]string, 0, len(d.Outputs))
	for name := range d.Outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	m["outputs"] = names

	return m
}

// renderValue returns a compact printable form of a comparison value.
func renderValue(value interface{}) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
