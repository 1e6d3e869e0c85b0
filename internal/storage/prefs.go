package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	PrefsFile = "prefs.yaml"
	// ThemeKey is the only preference the interactive hosts persist.
	ThemeKey     = "sim_theme"
	DefaultTheme = "light"
)

// Prefs is a small string map persisted as YAML.
type Prefs struct {
	path   string
	values map[string]string
}

// OpenPrefs loads dir/prefs.yaml. A missing file yields empty prefs. On a
// read or parse error the returned Prefs is still usable: it is empty and
// the next Set overwrites the broken file.
func OpenPrefs(dir string) (*Prefs, error) {
	p := &Prefs{path: filepath.Join(dir, PrefsFile), values: map[string]string{}}
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, err
	}
	var values map[string]string
	if err := yaml.Unmarshal(data, &values); err != nil {
		return p, fmt.Errorf("prefs %s: %w", p.path, err)
	}
	if values != nil {
		p.values = values
	}
	return p, nil
}

func (p *Prefs) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Set stores key and rewrites the file through a temp file and rename.
func (p *Prefs) Set(key, value string) error {
	p.values[key] = value
	data, err := yaml.Marshal(p.values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return err
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path)
}

// Theme returns the stored theme, or light when unset or unrecognised.
func (p *Prefs) Theme() string {
	switch v, _ := p.Get(ThemeKey); v {
	case "light", "dark":
		return v
	}
	return DefaultTheme
}

func (p *Prefs) SaveTheme(name string) error {
	return p.Set(ThemeKey, name)
}
