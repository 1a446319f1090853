// Package texture holds the immutable pixel arrays sampled by the renderer.
package texture

import (
	"image"
	"image/color"
	"math/rand"

	"mazecaster/internal/mathutil"
)

// PlaceholderColor fills textures that failed to load.
const PlaceholderColor uint32 = 0xFFFF00FF

// Texture is a row-major array of ARGB pixels. It is never mutated after
// construction, so it may be shared between frames and goroutines.
type Texture struct {
	Width  int
	Height int
	Pixels []uint32
}

// New allocates a fully transparent texture.
func New(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// At returns the texel at (x, y), wrapping both coordinates into range.
func (t *Texture) At(x, y int) uint32 {
	return t.Pixels[mathutil.Wrap(x, t.Width)+mathutil.Wrap(y, t.Height)*t.Width]
}

// Column maps a fractional surface coordinate in [0,1) to a texel column.
func (t *Texture) Column(frac float64) int {
	return mathutil.Wrap(int(frac*float64(t.Width)), t.Width)
}

// Opaque reports whether the texel has any alpha coverage.
func Opaque(argb uint32) bool {
	return argb&0xFF000000 != 0
}

// Placeholder returns the visibly distinct texture substituted for a failed load.
func Placeholder() *Texture {
	t := New(64, 64)
	for i := range t.Pixels {
		t.Pixels[i] = PlaceholderColor
	}
	return t
}

// Noise generates the speckled yellow item texture. The seed keeps frames
// reproducible between runs.
func Noise(width, height int, seed int64) *Texture {
	rng := rand.New(rand.NewSource(seed))
	t := New(width, height)
	for i := range t.Pixels {
		val := uint32(150 + rng.Intn(105))
		t.Pixels[i] = 0xFF000000 | val<<16 | val<<8
	}
	return t
}

// FromImage converts any decoded image into a Texture.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	t := New(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			t.Pixels[(x-b.Min.X)+(y-b.Min.Y)*t.Width] =
				uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		}
	}
	return t
}
