package imagesrc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/arcanaland/framesmith/internal/ports"
)

const svgMIME = "image/svg+xml"

var formatMIME = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// Probe reads the natural dimensions and MIME type of an encoded image
func Probe(data []byte) (ports.Image, error) {
	if len(data) == 0 {
		return ports.Image{}, errors.New("empty image")
	}
	if isSVG(data) {
		w, h, err := svgSize(data)
		if err != nil {
			return ports.Image{}, err
		}
		return ports.Image{Data: data, Width: w, Height: h, MIME: svgMIME}, nil
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ports.Image{}, fmt.Errorf("error decoding image header: %w", err)
	}
	mime, ok := formatMIME[format]
	if !ok {
		mime = http.DetectContentType(data)
	}
	return ports.Image{
		Data:   data,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		MIME:   mime,
	}, nil
}

func isSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

type svgRoot struct {
	XMLName xml.Name `xml:"svg"`
	ViewBox string   `xml:"viewBox,attr"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
}

var (
	viewBoxSep = regexp.MustCompile(`[,\s]+`)
	lengthNum  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// svgSize prefers the viewBox and falls back to the width and height
// attributes.
func svgSize(data []byte) (float64, float64, error) {
	var root svgRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return 0, 0, fmt.Errorf("error parsing SVG: %w", err)
	}

	if vb := strings.TrimSpace(root.ViewBox); vb != "" {
		parts := viewBoxSep.Split(vb, -1)
		if len(parts) != 4 {
			return 0, 0, fmt.Errorf("could not parse viewBox %q", root.ViewBox)
		}
		w, errW := strconv.ParseFloat(parts[2], 64)
		h, errH := strconv.ParseFloat(parts[3], 64)
		if errW != nil || errH != nil {
			return 0, 0, fmt.Errorf("could not parse viewBox %q", root.ViewBox)
		}
		return w, h, nil
	}

	w, err := svgLength(root.Width)
	if err != nil {
		return 0, 0, fmt.Errorf("could not parse width: %w", err)
	}
	h, err := svgLength(root.Height)
	if err != nil {
		return 0, 0, fmt.Errorf("could not parse height: %w", err)
	}
	return w, h, nil
}

// svgLength parses a length such as "100", "100px" or "2.5e2"
func svgLength(s string) (float64, error) {
	m := lengthNum.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0, fmt.Errorf("invalid length %q", s)
	}
	return strconv.ParseFloat(m, 64)
}
