package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"clean run", []string{"-rows", "3", "-cols", "4", "-ticks", "120", "-exclusion", "none"}, 0},
		{"single cell", []string{"-rows", "1", "-cols", "1", "-ticks", "30"}, 0},
		{"bad exclusion", []string{"-exclusion", "sometimes"}, 1},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "missing.yaml")}, 1},
		{"unknown flag", []string{"-bogus"}, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tc.args, &stdout, &stderr); got != tc.want {
				t.Errorf("run(%v) = %d, want %d\nstderr: %s", tc.args, got, tc.want, stderr.String())
			}
		})
	}
}

func TestRunReportsAndClosesOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	var stdout, stderr bytes.Buffer
	args := []string{"-rows", "3", "-cols", "3", "-ticks", "600", "-output-dir", dir}
	if got := run(args, &stdout, &stderr); got != 0 {
		t.Fatalf("run = %d, want 0\nstderr: %s", got, stderr.String())
	}
	if !strings.Contains(stdout.String(), "OK: 600 ticks") {
		t.Errorf("missing summary line in output:\n%s", stdout.String())
	}

	// Output files are closed once run returns, so the directory can be removed
	for _, name := range []string{"config.yaml", "telemetry.csv", "perf.csv", "bookmarks.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines < 2 {
		t.Errorf("telemetry.csv has %d lines, want header plus at least one window", lines)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Errorf("RemoveAll after run: %v", err)
	}
}
