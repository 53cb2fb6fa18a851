// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets DRVCTL_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("DRVCTL_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "yaml", cfg.Data["format"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				store, ok := cfg.Data["store"].(map[string]interface{})
				assert.True(t, ok, "store should be a map")
				assert.Equal(t, "/custom/store", store["root"])
			},
		},
		{
			name:     "mixed types",
			testFile: "mixed-types.yaml",
			wantErr:  false,
			checkFunc: func(t *testing.T, cfg Type) {
				assert.Equal(t, "test-project", cfg.Data["name"])
				assert.Equal(t, 1, cfg.Data["version"])
				assert.Equal(t, true, cfg.Data["enabled"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("DRVCTL_CFG_FILE", "/nonexistent/path/drvctl.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("DRVCTL_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "format",
			want:     "yaml",
			wantErr:  false,
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "store.root",
			want:     "/custom/store",
			wantErr:  false,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
			wantErr:      false,
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			want:     "",
			wantErr:  true,
		},
		{
			name:     "non-string value",
			testFile: "mixed-types.yaml",
			key:      "version",
			want:     "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{
			name:     "int value",
			testFile: "mixed-types.yaml",
			key:      "version",
			want:     1,
			wantErr:  false,
		},
		{
			name:     "float value converted to int",
			testFile: "mixed-types.yaml",
			key:      "timeout",
			want:     30,
			wantErr:  false,
		},
		{
			name:     "nested int value",
			testFile: "nested.yaml",
			key:      "diff.padding",
			want:     4,
			wantErr:  false,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []int{60},
			want:         60,
			wantErr:      false,
		},
		{
			name:     "non-int value",
			testFile: "simple.yaml",
			key:      "format",
			want:     0,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_GetWithNamespace(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()
	_, _ = Load()

	// A namespaced key is preferred over the bare key.
	Config.Namespace = "show"
	val, err := Config.get("format")
	assert.NoError(t, err)
	assert.Equal(t, "yaml", val)

	// Namespace fallback in the typed getter.
	Config.Namespace = "diff"
	pad, err := GetInt("padding")
	assert.NoError(t, err)
	assert.Equal(t, 4, pad)
}
