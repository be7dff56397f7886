// Package testsupport builds image fixtures shared by package tests.
package testsupport

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/vearutop/spatial"
)

// Fixture dimensions.
const (
	Width  = 48
	Height = 32
)

// JPEG encodes a solid image carrying the representable subset of props as EXIF.
func JPEG(t testing.TB, c color.Color, props spatial.PropertyMap) []byte {
	t.Helper()

	img := imaging.New(Width, Height, c)
	data, err := spatial.Writer{Quality: 90}.Encode(img, props)
	if err != nil {
		t.Fatalf("encode fixture jpeg: %v", err)
	}
	return data
}

// MPO assembles frames into an MPF container.
func MPO(t testing.TB, frames ...spatial.Frame) []byte {
	t.Helper()

	data, err := spatial.Assemble(frames)
	if err != nil {
		t.Fatalf("assemble mpo: %v", err)
	}
	return data
}

// PrimaryWithThumbnail is a two image container without image groups.
func PrimaryWithThumbnail(t testing.TB) []byte {
	t.Helper()

	return MPO(t,
		spatial.Frame{JPEG: JPEG(t, color.RGBA{R: 200, A: 255}, spatial.PropertyMap{"Make": "Acme"}), Type: spatial.MPTypeBaselinePrimary, Representative: true},
		spatial.Frame{JPEG: JPEG(t, color.RGBA{G: 200, A: 255}, nil), Type: spatial.MPTypeLargeThumbVGA},
	)
}

// StereoMPO is a primary image followed by left and right disparity views.
func StereoMPO(t testing.TB) []byte {
	t.Helper()

	return MPO(t,
		spatial.Frame{
			JPEG:           JPEG(t, color.RGBA{R: 200, G: 200, B: 200, A: 255}, spatial.PropertyMap{"Make": "Acme", "Model": "Stereo 1"}),
			Type:           spatial.MPTypeBaselinePrimary,
			Representative: true,
		},
		spatial.Frame{
			JPEG:          JPEG(t, color.RGBA{R: 220, A: 255}, spatial.PropertyMap{spatial.KeyOrientation: 1, "Model": "left"}),
			Type:          spatial.MPTypeDisparity,
			IndividualNum: 1,
		},
		spatial.Frame{
			JPEG:          JPEG(t, color.RGBA{B: 220, A: 255}, spatial.PropertyMap{spatial.KeyOrientation: 6, "Model": "right"}),
			Type:          spatial.MPTypeDisparity,
			IndividualNum: 2,
		},
	)
}

// WriteFile stores data under dir/name and returns the path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
