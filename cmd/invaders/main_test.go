package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/opd-ai/go-invaders/pkg/config"
)

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	badJSON := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(badJSON, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	missing := filepath.Join(dir, "missing.json")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown flag", []string{"-frames", "x"}, 2},
		{"unreadable config", []string{"-config", badJSON}, 1},
		{"unknown renderer", []string{"-config", missing, "-renderer", "svg"}, 1},
		{"unwritable log", []string{"-config", missing, "-log", filepath.Join(dir, "no", "such", "dir.log")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(config.EnvRenderer, "")
			if got := run(tt.args); got != tt.want {
				t.Errorf("run(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
