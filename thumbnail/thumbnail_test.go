package thumbnail

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func newTestRenderer(t *testing.T, bg Background) *Renderer {
	t.Helper()
	r, err := NewRenderer(t.TempDir(), "/public/thumbnails", bg)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return r
}

func newTestFace(t *testing.T) font.Face {
	t.Helper()
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		t.Fatalf("parse font: %v", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		t.Fatalf("build face: %v", err)
	}
	t.Cleanup(func() { face.Close() })
	return face
}

func TestRenderWritesPNG(t *testing.T) {
	r := newTestRenderer(t, nil)

	got, err := r.Render("My Post Title")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got != "/public/thumbnails/my_post_title.png" {
		t.Errorf("public path = %q, want %q", got, "/public/thumbnails/my_post_title.png")
	}

	data, err := os.ReadFile(filepath.Join(r.OutputDir, "my_post_title.png"))
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != canvasWidth || b.Dy() != canvasHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", b.Dx(), b.Dy(), canvasWidth, canvasHeight)
	}
}

func TestWrapTitleSingleLine(t *testing.T) {
	face := newTestFace(t)
	lines := wrapTitle(face, "Hello World", fixed.I(canvasWidth-2*sidePadding))
	if len(lines) != 1 {
		t.Fatalf("line count = %d, want 1 (%v)", len(lines), lines)
	}
	if lines[0] != "Hello World" {
		t.Errorf("line = %q, want %q", lines[0], "Hello World")
	}
}

// TestWrapTitleMatchesGreedySimulation reproduces the greedy measurement rule
// independently for a long title and asserts the layout agrees line by line.
func TestWrapTitleMatchesGreedySimulation(t *testing.T) {
	face := newTestFace(t)
	title := strings.TrimSpace(strings.Repeat("measurement ", 20))
	maxWidth := fixed.I(canvasWidth - 2*sidePadding)

	words := strings.Fields(title)
	var want []string
	current := words[0]
	for _, word := range words[1:] {
		if font.MeasureString(face, current+" "+word) < maxWidth {
			current += " " + word
		} else {
			want = append(want, current)
			current = word
		}
	}
	want = append(want, current)

	got := wrapTitle(face, title, maxWidth)
	if len(got) < 2 {
		t.Fatalf("long title should wrap onto multiple lines, got %d", len(got))
	}
	if len(got) != len(want) {
		t.Fatalf("line count = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
		if font.MeasureString(face, got[i]) >= maxWidth {
			t.Errorf("line %d exceeds max width: %q", i, got[i])
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	r := newTestRenderer(t, nil)

	if _, err := r.Render("Same Title"); err != nil {
		t.Fatalf("first Render failed: %v", err)
	}
	file := filepath.Join(r.OutputDir, "same_title.png")
	first, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read first render: %v", err)
	}

	if _, err := r.Render("Same Title"); err != nil {
		t.Fatalf("second Render failed: %v", err)
	}
	second, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read second render: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("re-rendering the same title should produce identical bytes")
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello_world"},
		{"A/B:C?", "a_b_c_"},
		{"a b c", "a_b_c"},
		{"Release v1.2", "release_v1_2"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SanitizeTitle(tt.input); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
	// Punctuation-only differences still collide; that overwrite behavior is
	// intentional, but titles with differing word content must not collide.
	if SanitizeTitle("A/B:C?") == SanitizeTitle("a b c") {
		t.Error("distinct word content should produce distinct names")
	}
}

func TestRenderEmptyTitle(t *testing.T) {
	r := newTestRenderer(t, nil)

	got, err := r.Render("")
	if err != nil {
		t.Fatalf("Render of empty title should not fail: %v", err)
	}
	if !strings.HasSuffix(got, ".png") {
		t.Errorf("public path = %q, want .png suffix", got)
	}
	if _, err := os.Stat(filepath.Join(r.OutputDir, ".png")); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRenderImageFill(t *testing.T) {
	// Pre-render a small gradient asset the way a designer would ship one.
	asset := filepath.Join(t.TempDir(), "gradient.png")
	img := image.NewRGBA(image.Rect(0, 0, 80, 40))
	if err := DefaultGradient.draw(img); err != nil {
		t.Fatalf("draw asset: %v", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode asset: %v", err)
	}
	if err := os.WriteFile(asset, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	r := newTestRenderer(t, ImageFill{Path: asset})
	if _, err := r.Render("Image Backed Card"); err != nil {
		t.Fatalf("Render with image background failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(r.OutputDir, "image_backed_card.png")); err != nil {
		t.Errorf("output file missing: %v", err)
	}
}

func TestRenderImageFillMissingAsset(t *testing.T) {
	r := newTestRenderer(t, ImageFill{Path: filepath.Join(t.TempDir(), "nope.png")})

	_, err := r.Render("Broken")
	if !errors.Is(err, ErrAssetLoad) {
		t.Fatalf("err = %v, want ErrAssetLoad", err)
	}
}

func TestGradientCoversCanvas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	g := Gradient{
		Top:    color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff},
		Bottom: color.RGBA{R: 0x90, G: 0xa0, B: 0xb0, A: 0xff},
	}
	if err := g.draw(img); err != nil {
		t.Fatalf("draw failed: %v", err)
	}
	if got := img.RGBAAt(0, 0); got != g.Top {
		t.Errorf("top-left = %v, want %v", got, g.Top)
	}
	if got := img.RGBAAt(canvasWidth-1, canvasHeight-1); got != g.Bottom {
		t.Errorf("bottom-right = %v, want %v", got, g.Bottom)
	}
}
