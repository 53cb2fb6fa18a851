// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package display

import (
	"bytes"
	"encoding/json"
	"fmt"

	yamlv2 "gopkg.in/yaml.v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/drvctl/drvctl/internal/derivation"
)

// Attributes enumerates the selectable field names, matching the keys of
// Derivation.ToMap. Selection by name only ever works against this set;
// anything else is a MissingFieldError.
var Attributes = []string{
	"builder",
	"builder_args",
	"environment",
	"input_derivations",
	"input_files",
	"outputs",
	"system",
}

// Options control what Render emits.
type Options struct {
	// Attribute, when set, selects a single field by name.
	Attribute string
	// EnvVar, when set, selects a single environment variable.
	EnvVar string
	// Format is "json" or "yaml".
	Format string
	// Pretty indents the encoded output, and returns selected plain
	// strings bare rather than encoded.
	Pretty bool
}

// Render returns the string form of a derivation, or of one selected
// attribute or environment variable, in the requested format.
func Render(d *derivation.Derivation, opts Options) (string, error) {
	value, err := selectValue(d, opts)
	if err != nil {
		return "", err
	}

	// A selected plain string is handed back unwrapped in pretty mode so
	// it can be consumed without stripping quotes.
	if s, ok := value.(string); ok && opts.Pretty {
		return s, nil
	}

	switch opts.Format {
	case "json":
		return renderJSON(value, opts.Pretty)
	case "yaml":
		return renderYAML(value, opts.Pretty)
	default:
		return "", &UnsupportedFormatError{Format: opts.Format}
	}
}

// selectValue applies the selection policy: the whole record, one
// attribute, or one environment variable.
func selectValue(d *derivation.Derivation, opts Options) (interface{}, error) {
	switch {
	case opts.Attribute == "" && opts.EnvVar == "":
		return d.ToMap(), nil
	case opts.Attribute != "":
		value, ok := d.ToMap()[opts.Attribute]
		if !ok {
			return nil, &derivation.MissingFieldError{Field: opts.Attribute}
		}
		return value, nil
	default:
		value, ok := d.Environment[opts.EnvVar]
		if !ok {
			return nil, &derivation.MissingFieldError{Field: opts.EnvVar}
		}
		return value, nil
	}
}

func renderJSON(value interface{}, pretty bool) (string, error) {
	var (
		encoded []byte
		err     error
	)
	if pretty {
		encoded, err = json.MarshalIndent(value, "", "  ")
	} else {
		encoded, err = json.Marshal(value)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode as json: %w", err)
	}
	return string(encoded), nil
}

func renderYAML(value interface{}, pretty bool) (string, error) {
	if pretty {
		var buf bytes.Buffer
		enc := yamlv3.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(value); err != nil {
			return "", fmt.Errorf("failed to encode as yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("failed to encode as yaml: %w", err)
		}
		return buf.String(), nil
	}

	encoded, err := yamlv2.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to encode as yaml: %w", err)
	}
	return string(encoded), nil
}
