// Package thumbnail renders social-sharing card images for posts: the title
// word-wrapped and vertically centered over a gradient background, persisted
// as a PNG under the public static directory.
package thumbnail

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	canvasWidth  = 800
	canvasHeight = 400
	sidePadding  = 20
	lineHeight   = 50
	fontSize     = 40
)

// Error kinds surfaced to callers. All are terminal for the render call; the
// caller decides fallback behavior (omit the card, use a placeholder).
var (
	ErrSurface   = errors.New("thumbnail: render surface")
	ErrAssetLoad = errors.New("thumbnail: background asset")
	ErrWrite     = errors.New("thumbnail: write")
)

// Renderer produces fixed-size title cards. The parsed font is immutable and
// shared; every Render call builds its own face, canvas and buffer, so
// concurrent calls for distinct titles do not interfere. Concurrent renders
// of the same title race on the output file (last writer wins).
type Renderer struct {
	OutputDir  string     // filesystem directory for generated PNGs
	PublicBase string     // URL prefix the files are served under
	Background Background // nil means DefaultGradient

	font *opentype.Font
}

// NewRenderer creates a Renderer writing into outputDir and returning paths
// under publicBase (e.g. "public/thumbnails" and "/public/thumbnails").
func NewRenderer(outputDir, publicBase string, bg Background) (*Renderer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parse font: %v", ErrSurface, err)
	}
	return &Renderer{
		OutputDir:  outputDir,
		PublicBase: publicBase,
		Background: bg,
		font:       f,
	}, nil
}

// Render draws title onto a fresh 800x400 canvas and writes the PNG to
// OutputDir. It returns the public URL path of the written file. Re-rendering
// the same title overwrites the previous file at the same path.
func (r *Renderer) Render(title string) (string, error) {
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return "", fmt.Errorf("%w: build face: %v", ErrSurface, err)
	}
	defer face.Close()

	lines := wrapTitle(face, title, fixed.I(canvasWidth-2*sidePadding))

	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	bg := r.Background
	if bg == nil {
		bg = DefaultGradient
	}
	if err := bg.draw(img); err != nil {
		return "", err
	}

	// Center the text block vertically; each line is drawn at its baseline.
	y0 := (canvasHeight-len(lines)*lineHeight)/2 + lineHeight/2
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, line := range lines {
		w := d.MeasureString(line)
		d.Dot = fixed.Point26_6{
			X: fixed.I(canvasWidth/2) - w/2,
			Y: fixed.I(y0 + i*lineHeight),
		}
		d.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: encode png: %v", ErrWrite, err)
	}

	name := SanitizeTitle(title) + ".png"
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(filepath.Join(r.OutputDir, name), buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return path.Join(r.PublicBase, name), nil
}

// wrapTitle splits title into lines fitting maxWidth using greedy line
// breaking: each line takes as many words as the measured width allows.
// Raggedness is not balanced. An empty title yields one empty line so the
// degenerate card still renders.
func wrapTitle(face font.Face, title string, maxWidth fixed.Int26_6) []string {
	words := strings.Fields(title)
	if len(words) == 0 {
		return []string{""}
	}
	lines := make([]string, 0, 1)
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if font.MeasureString(face, candidate) < maxWidth {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// SanitizeTitle derives the output filename stem: lowercased, with every
// character outside [a-z0-9] replaced by an underscore. Distinct titles that
// differ only in punctuation can collide; the later render silently
// overwrites the earlier file.
func SanitizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
