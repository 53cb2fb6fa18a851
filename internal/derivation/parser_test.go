// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package derivation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleLiteral = `Derive([("out","/store/abc-foo","","")],[],["/store/src-bar"],` +
	`"x86_64-linux","/bin/sh",["-c","echo hi"],[("name","foo")])`

func TestParse(t *testing.T) {
	d, err := Parse(simpleLiteral, "/store/foo.drv")
	require.NoError(t, err)

	assert.Equal(t, "/store/foo.drv", d.Path)
	assert.Equal(t, map[string]Output{"out": SimpleOutput{Path: "/store/abc-foo"}}, d.Outputs)
	assert.Empty(t, d.InputDerivations)
	assert.Equal(t, []string{"/store/src-bar"}, d.InputFiles)
	assert.Equal(t, "x86_64-linux", d.System)
	assert.Equal(t, "/bin/sh", d.Builder)
	assert.Equal(t, []string{"-c", "echo hi"}, d.BuilderArgs)
	assert.Equal(t, map[string]string{"name": "foo"}, d.Environment)

	name, err := d.Name()
	require.NoError(t, err)
	assert.Equal(t, "foo", name)
}

func TestParse_Deterministic(t *testing.T) {
	first, err := Parse(simpleLiteral, "/store/foo.drv")
	require.NoError(t, err)
	second, err := Parse(simpleLiteral, "/store/foo.drv")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestParse_FixedOutput(t *testing.T) {
	text := `Derive([("out","/store/fo","sha256","0f00ba")],[],[],"x86_64-linux",` +
		`"/bin/sh",[],[("name","fo")])`

	d, err := Parse(text, "/store/fo.drv")
	require.NoError(t, err)

	assert.Equal(t, FixedOutput{
		Path:          "/store/fo",
		HashAlgorithm: "sha256",
		Hash:          "0f00ba",
	}, d.Outputs["out"])
}

func TestParse_InputDerivations(t *testing.T) {
	text := `Derive([("out","/store/a","","")],[("/store/b.drv",["out","dev"])],[],` +
		`"x86_64-linux","/bin/sh",[],[("name","a")])`

	d, err := Parse(text, "/store/a.drv")
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"/store/b.drv": {"out", "dev"}}, d.InputDerivations)
}

func TestParse_EscapedStrings(t *testing.T) {
	// Delimiters inside quoted strings must not terminate tokens, and
	// escaped quotes/backslashes must round-trip.
	text := `Derive([("out","/store/a","","")],[],[],"x86_64-linux","/bin/sh",` +
		`["-c","echo \"a,b\" [c] (d) \\ \n done"],[("name","tricky")])`

	d, err := Parse(text, "/store/a.drv")
	require.NoError(t, err)

	assert.Equal(t, []string{"-c", "echo \"a,b\" [c] (d) \\ \n done"}, d.BuilderArgs)
}

func TestParse_WithoutWrapper(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "bare tuple elements",
			text: `[("out","/store/a","","")],[],[],"x86_64-linux","/bin/sh",[],[("name","a")]`,
		},
		{
			name: "parenthesized tuple",
			text: `([("out","/store/a","","")],[],[],"x86_64-linux","/bin/sh",[],[("name","a")])`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Parse(tt.text, "/store/a.drv")
			require.NoError(t, err)
			assert.Equal(t, "x86_64-linux", d.System)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "unterminated string",
			text: `Derive([("out","/store/a`,
		},
		{
			name: "unbalanced bracket",
			text: `Derive([("out","/store/a","","")],[],[,"x86_64-linux","/bin/sh",[],[("name","a")])`,
		},
		{
			name: "missing closing paren",
			text: `Derive([("out","/store/a","","")],[],[],"x86_64-linux","/bin/sh",[],[("name","a")]`,
		},
		{
			name: "trailing data after wrapper",
			text: simpleLiteral + ` junk`,
		},
		{
			name: "too few elements",
			text: `Derive([("out","/store/a","","")],[],[])`,
		},
		{
			name: "output tuple arity",
			text: `Derive([("out","/store/a","")],[],[],"x86_64-linux","/bin/sh",[],[("name","a")])`,
		},
		{
			name: "environment tuple arity",
			text: `Derive([("out","/store/a","","")],[],[],"x86_64-linux","/bin/sh",[],[("name","a","x")])`,
		},
		{
			name: "system not a string",
			text: `Derive([("out","/store/a","","")],[],[],["x86_64-linux"],"/bin/sh",[],[("name","a")])`,
		},
		{
			name: "no outputs",
			text: `Derive([],[],[],"x86_64-linux","/bin/sh",[],[("name","a")])`,
		},
		{
			name: "unexpected character",
			text: `Derive(foo)`,
		},
		{
			name: "empty input",
			text: ``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, "/store/broken.drv")
			require.Error(t, err)

			// Every failure carries the offending source path.
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "/store/broken.drv", parseErr.Path)
			assert.Contains(t, err.Error(), "/store/broken.drv")
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "foo.drv")
	require.NoError(t, os.WriteFile(path, []byte(simpleLiteral), 0600))

	d, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, d.Path)
	assert.Equal(t, "x86_64-linux", d.System)
}

func TestParseFile_RelativeToStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.drv"), []byte(simpleLiteral), 0600))
	t.Setenv("NIX_STORE", dir)

	d, err := ParseFile("foo.drv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "foo.drv"), d.Path)
}

func TestParseFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.drv")

	_, err := ParseFile(path)
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, path, parseErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
