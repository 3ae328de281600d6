package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
		contains    string
	}{
		{"version", []string{"version"}, false, "raytracer"},
		{"tiny render to stdout", []string{"render", "--config", "missing.toml", "--width", "4", "--height", "2", "--spp", "1", "--depth", "2"}, false, "P3\n4 2\n255\n"},
		{"unknown command", []string{"paint"}, true, ""},
		{"invalid scatter mode", []string{"render", "--config", "missing.toml", "--scatter", "phong"}, true, ""},
		{"stray argument", []string{"render", "extra"}, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(context.Background(), tt.args, &out)

			if tt.expectError && err == nil {
				t.Errorf("Expected error for %v, but got none", tt.args)
			}
			if !tt.expectError && err != nil {
				t.Errorf("Unexpected error for %v: %v", tt.args, err)
			}
			if tt.contains != "" && !strings.Contains(out.String(), tt.contains) {
				t.Errorf("Expected output to contain %q, got %q", tt.contains, out.String())
			}
		})
	}
}
