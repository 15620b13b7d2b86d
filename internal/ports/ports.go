// Package ports declares the collaborators the assembler depends on. The
// adapters live in scryfall, imagesrc, storage and upscale.
package ports

import (
	"context"

	"github.com/arcanaland/framesmith/internal/card"
)

// Catalog looks up card records by name
type Catalog interface {
	Lookup(ctx context.Context, name string) (card.Attributes, error)
}

// Image is a fetched image with its natural dimensions
type Image struct {
	Data   []byte
	Width  float64
	Height float64
	MIME   string
}

// Ext returns the file extension matching the MIME type, or "" when unknown
func (i Image) Ext() string {
	switch i.MIME {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	case "image/tiff":
		return ".tiff"
	case "image/svg+xml":
		return ".svg"
	}
	return ""
}

// ImageSource fetches images by URL or local path
type ImageSource interface {
	Fetch(ctx context.Context, ref string) (Image, error)
}

// Store persists images and returns the reference they are served under
type Store interface {
	Save(ctx context.Context, data []byte, subdir, filename string) (string, error)
	// Lookup returns the reference of an already stored file
	Lookup(ctx context.Context, subdir, filename string) (string, bool)
}

// Upscaler enlarges art by a fixed factor
type Upscaler interface {
	Upscale(ctx context.Context, data []byte) ([]byte, error)
	Factor() int
	Model() string
}
