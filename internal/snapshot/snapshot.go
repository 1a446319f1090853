// Package snapshot exports rendered frames as lossless WebP images.
package snapshot

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"mazecaster/internal/render"
)

// ToImage copies the frame's color buffer into an opaque RGBA image.
func ToImage(frame *render.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	img.Pix = frame.RGBA(img.Pix)
	return img
}

// WriteWebP encodes the frame to w.
func WriteWebP(w io.Writer, frame *render.Frame) error {
	if err := nativewebp.Encode(w, ToImage(frame), nil); err != nil {
		return fmt.Errorf("webp encode: %w", err)
	}
	return nil
}

// SaveWebP writes the frame to path, creating parent directories.
func SaveWebP(path string, frame *render.Frame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteWebP(f, frame); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	return f.Close()
}

// Name returns a timestamped snapshot file name inside folder.
func Name(folder string, now time.Time) string {
	return filepath.Join(folder, fmt.Sprintf("frame-%s.webp", now.Format("20060102-150405.000")))
}
