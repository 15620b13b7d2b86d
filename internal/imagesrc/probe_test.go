package imagesrc

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProbeRaster(t *testing.T) {
	img, err := Probe(pngBytes(t, 626, 457))
	require.NoError(t, err)
	assert.Equal(t, 626.0, img.Width)
	assert.Equal(t, 457.0, img.Height)
	assert.Equal(t, "image/png", img.MIME)
	assert.Equal(t, ".png", img.Ext())
}

func TestProbeSVG(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		w, h float64
	}{
		{"viewBox", `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 32 24"></svg>`, 32, 24},
		{"comma viewBox", `<?xml version="1.0"?><svg viewBox="0,0,100.5,50"/>`, 100.5, 50},
		{"viewBox wins", `<svg width="10" height="10" viewBox="0 0 64 32"/>`, 64, 32},
		{"width and height", `<svg width="120px" height="80"/>`, 120, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := Probe([]byte(tt.svg))
			require.NoError(t, err)
			assert.Equal(t, tt.w, img.Width)
			assert.Equal(t, tt.h, img.Height)
			assert.Equal(t, "image/svg+xml", img.MIME)
		})
	}
}

func TestProbeErrors(t *testing.T) {
	for name, data := range map[string]string{
		"empty":        "",
		"not an image": "hello world",
		"bad viewBox":  `<svg viewBox="0 0 32"/>`,
		"no size":      `<svg/>`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Probe([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestFetchLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 4, 3), 0o644))

	img, err := New(nil, nil).Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 4.0, img.Width)
	assert.Equal(t, 3.0, img.Height)
}

func TestFetchHTTP(t *testing.T) {
	data := pngBytes(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	src := New(srv.Client(), nil)
	img, err := src.Fetch(context.Background(), srv.URL+"/art.png")
	require.NoError(t, err)
	assert.Equal(t, 8.0, img.Width)

	_, err = src.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.Error(t, err)
}

func TestFetchRejectsOversizedDownloads(t *testing.T) {
	data := pngBytes(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	limit := maxImageSize
	t.Cleanup(func() { maxImageSize = limit })

	src := New(srv.Client(), nil)

	maxImageSize = int64(len(data))
	_, err := src.Fetch(context.Background(), srv.URL+"/art.png")
	require.NoError(t, err)

	maxImageSize = int64(len(data)) - 1
	_, err = src.Fetch(context.Background(), srv.URL+"/art.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetchLimitsCatalogHostsOnly(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(pngBytes(t, 2, 2))
	}))
	defer srv.Close()

	// an exhausted limiter would block limited hosts until the context ends
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	require.True(t, limiter.Allow())

	src := New(srv.Client(), limiter, "scryfall.io")
	assert.False(t, src.limited(srv.URL+"/a.png"))
	assert.True(t, src.limited("https://cards.scryfall.io/art_crop/a.jpg"))

	_, err := src.Fetch(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = src.Fetch(ctx, "https://cards.scryfall.io/art_crop/a.jpg")
	assert.Error(t, err)
}
