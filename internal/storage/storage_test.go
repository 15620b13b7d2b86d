package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveAndLookup(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root, "/images/", "http://localhost:4242/")
	ctx := context.Background()

	_, ok := store.Lookup(ctx, "original", "elf.jpg")
	assert.False(t, ok)

	ref, err := store.Save(ctx, []byte("jpeg"), "original", "elf.jpg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:4242/images/original/elf.jpg", ref)

	data, err := os.ReadFile(filepath.Join(root, "images", "original", "elf.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	found, ok := store.Lookup(ctx, "original", "elf.jpg")
	assert.True(t, ok)
	assert.Equal(t, ref, found)

	entries, err := os.ReadDir(filepath.Join(root, "images", "original"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestLocalWithoutBaseURLReturnsPath(t *testing.T) {
	root := t.TempDir()
	ref, err := NewLocal(root, "", "").Save(context.Background(), []byte("x"), "a", "b.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b.png"), ref)
}

func TestCleanRel(t *testing.T) {
	for _, tt := range []struct {
		in, want string
		ok       bool
	}{
		{"original/elf.jpg", "original/elf.jpg", true},
		{"/original//elf.jpg", "original/elf.jpg", true},
		{"../etc/passwd", "", false},
		{"original/../../x", "", false},
		{"", "", false},
	} {
		got, err := CleanRel(tt.in)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrUnsafePath, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRemote(t *testing.T) {
	var mu sync.Mutex
	files := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.Method {
		case http.MethodPut:
			data, _ := io.ReadAll(r.Body)
			files[r.URL.Path] = data
			w.WriteHeader(http.StatusCreated)
		case http.MethodHead:
			if _, ok := files[r.URL.Path]; !ok {
				w.WriteHeader(http.StatusNotFound)
			}
		}
	}))
	defer srv.Close()

	store := NewRemote(srv.Client(), srv.URL, "images")
	ctx := context.Background()

	_, ok := store.Lookup(ctx, "original", "elf.jpg")
	assert.False(t, ok)

	ref, err := store.Save(ctx, []byte("jpeg"), "original", "elf.jpg")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/images/original/elf.jpg", ref)
	assert.Equal(t, []byte("jpeg"), files["/images/original/elf.jpg"])

	found, ok := store.Lookup(ctx, "original", "elf.jpg")
	assert.True(t, ok)
	assert.Equal(t, ref, found)

	_, err = store.Save(ctx, nil, "..", "x")
	assert.ErrorIs(t, err, ErrUnsafePath)
}
