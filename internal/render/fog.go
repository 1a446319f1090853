package render

import "mazecaster/internal/mathutil"

// Brightness returns the fog factor in [0,255] for a surface at depth.
func Brightness(renderDistance, depth float64) int {
	if depth <= 0 {
		return 255
	}
	return int(mathutil.Clamp(renderDistance/depth, 0, 255))
}

// Fog scales each channel of col by brightness/255, truncating.
func Fog(col uint32, brightness int) uint32 {
	b := uint32(mathutil.IntClamp(brightness, 0, 255))
	red := ((col >> 16) & 0xFF) * b / 255
	green := ((col >> 8) & 0xFF) * b / 255
	blue := (col & 0xFF) * b / 255
	return red<<16 | green<<8 | blue
}

// fogRow darkens row y by the depth of each pixel.
func (r *Renderer) fogRow(y int) {
	row := y * r.width
	for i := row; i < row+r.width; i++ {
		r.frame.Color[i] = Fog(r.frame.Color[i], Brightness(r.render.RenderDistance, r.frame.Depth[i]))
	}
}
