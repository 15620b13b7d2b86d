// Package preview renders art as ANSI half-block text for the terminal.
package preview

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/term"
)

const (
	defaultTermWidth = 80
	maxArtWidth      = 48
	minArtWidth      = 16
)

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

// ArtWidth picks an art width in cells that leaves room for text beside it
func ArtWidth(termWidth int) int {
	w := termWidth / 2
	if w > maxArtWidth {
		w = maxArtWidth
	}
	if w < minArtWidth {
		w = minArtWidth
	}
	return w
}

// Decode decodes raster image data. SVG is not supported.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return img, nil
}

// Render converts img to ANSI art width cells wide, keeping its aspect ratio.
// Each cell is an upper half block: the top two pixels set the foreground,
// the bottom two the background.
func Render(img image.Image, width int) string {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}
	height := width * b.Dy() / (2 * b.Dx())
	if height < 1 {
		height = 1
	}

	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buf strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			fg := average(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bg := average(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buf.WriteString(cell('▀', fg, bg))
		}
		buf.WriteString("\n")
	}
	return buf.String()
}

func colorAt(img image.Image, x, y int) colorful.Color {
	b := img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return colorful.Color{}
	}
	c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
	return c
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

func cell(char rune, fg, bg colorful.Color) string {
	r1, g1, b1 := fg.Clamped().RGB255()
	r2, g2, b2 := bg.Clamped().RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

// Cached returns the rendering stored for key in cacheDir, calling render and
// storing its output on a miss. Cache write failures are ignored.
func Cached(cacheDir, key string, render func() (string, error)) (string, error) {
	path := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))
	if data, err := os.ReadFile(path); err == nil {
		return string(data), nil
	}

	art, err := render()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cacheDir, 0o755); err == nil {
		os.WriteFile(path, []byte(art), 0o644)
	}
	return art, nil
}

// SideBySide prints art on the left and info lines to its right
func SideBySide(w io.Writer, art string, info []string) {
	artLines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	artWidth := 0
	for _, line := range artLines {
		artWidth = max(artWidth, VisibleWidth(line))
	}
	infoCol := artWidth + 4

	fmt.Fprintln(w)
	for i := 0; i < max(len(artLines), len(info)); i++ {
		fmt.Fprint(w, "  ")
		if i < len(artLines) {
			fmt.Fprint(w, artLines[i])
			fmt.Fprint(w, strings.Repeat(" ", max(0, infoCol-VisibleWidth(artLines[i]))))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoCol))
		}
		if i < len(info) {
			fmt.Fprint(w, info[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

// InfoWidth returns the columns left for text beside art of the given width
func InfoWidth(termWidth, artWidth int) int {
	return max(20, termWidth-artWidth-8)
}

// WrapText wraps text on word boundaries, keeping explicit line breaks
func WrapText(text string, width int) []string {
	if width < 10 {
		width = 40
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		var line string
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return out
}

// VisibleWidth counts the runes of s outside ANSI escape sequences
func VisibleWidth(s string) int {
	n := 0
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\x1b':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
