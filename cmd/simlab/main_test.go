package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/storage"
)

// swapGlobals points the package-level data dir and logger at test values
// for the duration of t.
func swapGlobals(t *testing.T, dir string) *bytes.Buffer {
	t.Helper()
	oldDir, oldLogger := dataDir, logger
	t.Cleanup(func() { dataDir, logger = oldDir, oldLogger })
	var buf bytes.Buffer
	dataDir = dir
	logger = slog.New(slog.NewTextHandler(&buf, nil))
	return &buf
}

func writeCorruptPrefs(t *testing.T, dir string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, storage.PrefsFile), []byte("- [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPrefsCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	logs := swapGlobals(t, dir)
	writeCorruptPrefs(t, dir)

	prefs := loadPrefs()
	if prefs == nil {
		t.Fatal("loadPrefs returned nil")
	}
	if prefs.Theme() != storage.DefaultTheme {
		t.Errorf("theme %q, want %s", prefs.Theme(), storage.DefaultTheme)
	}
	if !strings.Contains(logs.String(), "level=WARN") || !strings.Contains(logs.String(), "ignoring saved preferences") {
		t.Errorf("no warning logged: %q", logs.String())
	}
}

func TestOpenSketchWithCorruptPrefs(t *testing.T) {
	dir := t.TempDir()
	swapGlobals(t, dir)
	writeCorruptPrefs(t, dir)

	cmd := &cobra.Command{}
	cmd.Flags().StringVar(&theme, "theme", "", "")
	cfg := config.ForSketch(config.SketchBall)
	cfg.Theme = "dark"
	ctx, err := openSketch(cmd, cfg, logger, nil)
	if err != nil {
		t.Fatalf("corrupt prefs blocked startup: %v", err)
	}
	if ctx.Theme.Name != "dark" {
		t.Errorf("theme %q, want the config theme", ctx.Theme.Name)
	}
}

func TestCloseLogReleasesFile(t *testing.T) {
	oldFile, oldLogger := logFile, logger
	t.Cleanup(func() { logFile, logger = oldFile, oldLogger })

	logFile = filepath.Join(t.TempDir(), "simlab.log")
	if err := setupLogger(); err != nil {
		t.Fatal(err)
	}
	if logOut == nil {
		t.Fatal("log file handle not kept")
	}
	logger.Info("hello")
	closeLog()
	if logOut != nil {
		t.Error("handle still set after closeLog")
	}
	closeLog()
	logger.Info("after close")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "msg=hello") || strings.Contains(string(data), "after close") {
		t.Errorf("log contents %q", data)
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		in   string
		name string
		want []float64
		ok   bool
	}{
		{"restitution=0:1:3", "restitution", []float64{0, 0.5, 1}, true},
		{"gravity=1.62,9.8", "gravity", []float64{1.62, 9.8}, true},
		{"drag=0", "drag", []float64{0}, true},
		{"drag", "", nil, false},
		{"=1,2", "", nil, false},
		{"drag=0:1:0", "", nil, false},
		{"drag=a,b", "", nil, false},
	}
	for _, tt := range tests {
		name, vals, err := parseRange(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseRange(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.ok {
			continue
		}
		if name != tt.name || len(vals) != len(tt.want) {
			t.Errorf("parseRange(%q) = %s %v", tt.in, name, vals)
			continue
		}
		for i := range vals {
			if vals[i] != tt.want[i] {
				t.Errorf("parseRange(%q)[%d] = %v, want %v", tt.in, i, vals[i], tt.want[i])
			}
		}
	}
}
