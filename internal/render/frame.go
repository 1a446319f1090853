package render

// Frame is the output of one Render call: a packed 0xRRGGBB color buffer and
// a parallel depth buffer, both row-major with a top-left origin.
type Frame struct {
	Width  int
	Height int
	Color  []uint32
	Depth  []float64
}

// NewFrame allocates buffers for a width×height frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Color:  make([]uint32, width*height),
		Depth:  make([]float64, width*height),
	}
}

// Pixel returns the packed color at (x, y).
func (f *Frame) Pixel(x, y int) uint32 {
	return f.Color[x+y*f.Width]
}

// DepthAt returns the distance of the surface drawn at (x, y).
func (f *Frame) DepthAt(x, y int) float64 {
	return f.Depth[x+y*f.Width]
}

func (f *Frame) set(x, y int, color uint32, depth float64) {
	i := x + y*f.Width
	f.Color[i] = color & 0xFFFFFF
	f.Depth[i] = depth
}

func (f *Frame) clear() {
	for i := range f.Color {
		f.Color[i] = 0
	}
}

// RGBA writes the color buffer as opaque 8-bit RGBA into dst, growing it when
// it is too small, and returns the filled slice.
func (f *Frame) RGBA(dst []byte) []byte {
	n := len(f.Color) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range f.Color {
		dst[i*4] = byte(c >> 16)
		dst[i*4+1] = byte(c >> 8)
		dst[i*4+2] = byte(c)
		dst[i*4+3] = 0xFF
	}
	return dst
}
