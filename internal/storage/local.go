// Package storage saves art files either to a local directory or to a remote
// image server.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrUnsafePath is returned for subdirectories or filenames that would
// escape the storage root.
var ErrUnsafePath = errors.New("unsafe path")

// Local writes files below Root/Prefix and returns BaseURL/Prefix/... refs
type Local struct {
	Root    string
	Prefix  string
	BaseURL string
}

// NewLocal creates a Local store
func NewLocal(root, prefix, baseURL string) *Local {
	return &Local{
		Root:    root,
		Prefix:  strings.Trim(prefix, "/"),
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Save writes data atomically through a temporary file
func (l *Local) Save(_ context.Context, data []byte, subdir, filename string) (string, error) {
	rel, err := CleanRel(path.Join(subdir, filename))
	if err != nil {
		return "", err
	}
	dest := filepath.Join(l.Root, filepath.FromSlash(path.Join(l.Prefix, rel)))
	if err := WriteAtomic(dest, data); err != nil {
		return "", fmt.Errorf("error saving %s: %v", rel, err)
	}
	return l.ref(rel), nil
}

// Lookup reports whether the file was saved before
func (l *Local) Lookup(_ context.Context, subdir, filename string) (string, bool) {
	rel, err := CleanRel(path.Join(subdir, filename))
	if err != nil {
		return "", false
	}
	info, err := os.Stat(filepath.Join(l.Root, filepath.FromSlash(path.Join(l.Prefix, rel))))
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return l.ref(rel), true
}

func (l *Local) ref(rel string) string {
	p := path.Join("/", l.Prefix, rel)
	if l.BaseURL == "" {
		return filepath.Join(l.Root, filepath.FromSlash(path.Join(l.Prefix, rel)))
	}
	return l.BaseURL + p
}

// CleanRel normalizes a slash-separated relative path and rejects paths that
// leave their root.
func CleanRel(p string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(p, `\`, "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrUnsafePath, p)
		}
	}
	return clean, nil
}

// WriteAtomic writes data to a uniquely named sibling of dest and renames it
// into place.
func WriteAtomic(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(filepath.Dir(dest), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
