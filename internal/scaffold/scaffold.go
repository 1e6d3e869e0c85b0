// Package scaffold creates new sketch directories from the embedded
// template.
package scaffold

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	SketchesDir = "sketches"
	ConfigFile  = "sketch.yaml"
	IndexFile   = "index.md"
	// IndexMarker is the line in the index that new links go above.
	IndexMarker = "<!-- new sketches are added here -->"

	templateTitle = `title: "Basic Sketch"`
)

//go:embed template/sketch.yaml
var template string

var (
	ErrUsage   = errors.New("usage: simlab new <name>")
	ErrExists  = errors.New("sketch already exists")
	ErrBadName = errors.New("invalid sketch name")
)

var writeFile = os.WriteFile

type Result struct {
	Dir          string
	Config       string
	IndexUpdated bool
}

// Title is the window title written into a new sketch.
func Title(name string) string { return name + " - Simulation Lab" }

func validName(name string) error {
	if strings.TrimSpace(name) != name || strings.HasPrefix(name, ".") ||
		strings.ContainsAny(name, `/\"`+"\n\t") {
		return fmt.Errorf("%w: %q", ErrBadName, name)
	}
	return nil
}

// New creates root/sketches/<name>/sketch.yaml with the title filled in
// and links it from root/sketches/index.md when that file carries the
// marker. A missing index is not an error.
func New(root, name string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if name == "" {
		return nil, ErrUsage
	}
	if err := validName(name); err != nil {
		return nil, err
	}

	dir := filepath.Join(root, SketchesDir, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, dir)
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	body := strings.Replace(template, templateTitle, "title: "+strconv.Quote(Title(name)), 1)
	res := &Result{Dir: dir, Config: filepath.Join(dir, ConfigFile)}
	if err := writeFile(res.Config, []byte(body), 0644); err != nil {
		// A half-made sketch would block every retry with ErrExists.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			logger.Warn("cleanup failed", "dir", dir, "err", rmErr)
		}
		return nil, err
	}
	logger.Debug("sketch created", "dir", dir)

	updated, err := link(filepath.Join(root, SketchesDir, IndexFile), name)
	if err != nil {
		return res, fmt.Errorf("update index: %w", err)
	}
	res.IndexUpdated = updated
	return res, nil
}

func link(index, name string) (bool, error) {
	data, err := os.ReadFile(index)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	text := string(data)
	if !strings.Contains(text, IndexMarker) {
		return false, nil
	}
	entry := fmt.Sprintf("- [%s](./%s/%s)\n", name, name, ConfigFile)
	text = strings.Replace(text, IndexMarker, entry+IndexMarker, 1)
	return true, os.WriteFile(index, []byte(text), 0644)
}
