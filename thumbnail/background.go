package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// Background fills the canvas before the title is drawn. Implementations must
// cover the full canvas; text is composited on top.
type Background interface {
	draw(dst *image.RGBA) error
}

// DefaultGradient is the card background used when no Background is set.
var DefaultGradient = Gradient{
	Top:    color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff},
	Bottom: color.RGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff},
}

// Gradient synthesizes a two-stop vertical linear gradient directly on the
// canvas.
type Gradient struct {
	Top    color.RGBA
	Bottom color.RGBA
}

func (g Gradient) draw(dst *image.RGBA) error {
	b := dst.Bounds()
	h := b.Dy()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		c := lerpColor(g.Top, g.Bottom, y-b.Min.Y, h-1)
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, c)
		}
	}
	return nil
}

func lerpColor(a, b color.RGBA, num, den int) color.RGBA {
	if den <= 0 {
		return a
	}
	mix := func(x, y uint8) uint8 {
		return uint8(int(x) + (int(y)-int(x))*num/den)
	}
	return color.RGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: 0xff,
	}
}

// ImageFill loads a pre-rendered background image from a fixed path and
// scales it to cover the canvas. The asset must exist; a missing or corrupt
// file fails the render with ErrAssetLoad.
type ImageFill struct {
	Path string
}

func (f ImageFill) draw(dst *image.RGBA) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	defer file.Close()

	src, _, err := image.Decode(file)
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrAssetLoad, f.Path, err)
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return nil
}
