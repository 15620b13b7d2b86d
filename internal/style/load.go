package style

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed builtin/*.toml
var builtinFS embed.FS

// BuiltinSource marks styles that ship with the binary
const BuiltinSource = "builtin"

// LoadStyle loads a frame style from a TOML file
func LoadStyle(path string) (*Style, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("style file not found: %s", path)
	}

	var s Style
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	if s.ID == "" {
		s.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	s.Source = path
	return &s, nil
}

// Builtin returns one of the styles compiled into the binary
func Builtin(id string) (*Style, error) {
	data, err := builtinFS.ReadFile("builtin/" + id + ".toml")
	if err != nil {
		return nil, fmt.Errorf("no builtin style named %q", id)
	}

	var s Style
	if _, err := toml.Decode(string(data), &s); err != nil {
		return nil, fmt.Errorf("error parsing builtin style %s: %w", id, err)
	}
	s.Source = BuiltinSource
	return &s, nil
}

// BuiltinIDs lists the builtin style ids in sorted order
func BuiltinIDs() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(ids)
	return ids
}

// Find resolves a style by name. A style in the library directory shadows a
// builtin of the same id; anything else is treated as a file path.
func Find(name, libraryDir string) (*Style, error) {
	if libraryDir != "" {
		candidate := filepath.Join(libraryDir, name+".toml")
		if _, err := os.Stat(candidate); err == nil {
			return LoadStyle(candidate)
		}
	}
	if s, err := Builtin(name); err == nil {
		return s, nil
	}
	if _, err := os.Stat(name); err == nil {
		return LoadStyle(name)
	}
	return nil, fmt.Errorf("style not found: %s", name)
}

// List returns the builtin styles followed by the valid styles in libraryDir.
// Library files that fail to parse are skipped.
func List(libraryDir string) ([]*Style, error) {
	var styles []*Style
	shadowed := make(map[string]bool)

	if libraryDir != "" {
		entries, err := os.ReadDir(libraryDir)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading style library: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
				continue
			}
			s, err := LoadStyle(filepath.Join(libraryDir, entry.Name()))
			if err != nil {
				continue
			}
			shadowed[s.ID] = true
			styles = append(styles, s)
		}
	}

	var builtins []*Style
	for _, id := range BuiltinIDs() {
		if shadowed[id] {
			continue
		}
		s, err := Builtin(id)
		if err != nil {
			return nil, err
		}
		builtins = append(builtins, s)
	}
	return append(builtins, styles...), nil
}
