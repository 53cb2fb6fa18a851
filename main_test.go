// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"reflect"
	"testing"
)

func TestHandleNakedCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "no command gets help",
			args:     []string{"drvctl"},
			expected: []string{"drvctl", "--help"},
		},
		{
			name:     "command present untouched",
			args:     []string{"drvctl", "show", "/store/a.drv"},
			expected: []string{"drvctl", "show", "/store/a.drv"},
		},
		{
			name:     "flag counts as a command",
			args:     []string{"drvctl", "--help"},
			expected: []string{"drvctl", "--help"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := handleNakedCommand(tt.args)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("handleNakedCommand(%v) = %v, want %v", tt.args, result, tt.expected)
			}
		})
	}
}

func TestHandleVersionPassthrough(t *testing.T) {
	if handleVersion([]string{"drvctl", "show", "x.drv"}) {
		t.Error("handleVersion claimed args without --version")
	}
}
