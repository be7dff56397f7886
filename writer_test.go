package spatial_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearutop/spatial"
)

func TestWriterCarriesRepresentableMetadata(t *testing.T) {
	dir := t.TempDir()
	target := spatial.TargetIn(dir, "IMG_0042.HEIC", spatial.RoleLeft)
	assert.Equal(t, filepath.Join(dir, "IMG_0042_left.jpg"), target.Path)

	props := spatial.PropertyMap{
		spatial.KeyOrientation:  6,
		"Make":                  "Acme",
		"DateTime":              "2024:05:01 10:11:12",
		spatial.KeyPixelWidth:   10,
		"ExposureTime":          0.01,
		"UnrepresentableNested": spatial.PropertyMap{"a": 1},
	}
	require.NoError(t, spatial.Writer{}.Write(imaging.New(20, 10, color.White), props, target))

	data, err := os.ReadFile(target.Path)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 20, img.Bounds().Dx())

	x, err := exif.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	tag, err := x.Get(exif.Orientation)
	require.NoError(t, err)
	o, err := tag.Int(0)
	require.NoError(t, err)
	assert.Equal(t, 6, o)

	tag, err = x.Get(exif.Make)
	require.NoError(t, err)
	mk, err := tag.StringVal()
	require.NoError(t, err)
	assert.Equal(t, "Acme", mk)

	_, err = x.Get(exif.ExposureTime)
	assert.Error(t, err)
}

func TestWriterOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := spatial.TargetIn(dir, "a.jpg", spatial.RolePrimary)
	require.NoError(t, os.WriteFile(target.Path, []byte("stale"), 0o600))

	require.NoError(t, spatial.Writer{Quality: 80}.Write(imaging.New(4, 4, color.Black), nil, target))

	data, err := os.ReadFile(target.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xD8}))
}

func TestWriterErrors(t *testing.T) {
	dir := t.TempDir()

	target := spatial.TargetIn(filepath.Join(dir, "missing"), "a.jpg", spatial.RoleRight)
	err := spatial.Writer{}.Write(imaging.New(4, 4, color.Black), nil, target)
	var writeErr *spatial.WriteError
	require.True(t, errors.As(err, &writeErr))
	assert.Equal(t, spatial.RoleRight, writeErr.Role)
	assert.Equal(t, target.Path, writeErr.Path)
	assert.ErrorIs(t, err, spatial.ErrWrite)
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = spatial.Writer{}.Write(nil, nil, spatial.TargetIn(dir, "b.jpg", spatial.RolePrimary))
	assert.ErrorIs(t, err, spatial.ErrWrite)
	_, statErr := os.Stat(filepath.Join(dir, "b_primary.jpg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncodeEXIF(t *testing.T) {
	assert.Nil(t, spatial.EncodeEXIF(nil))
	assert.Nil(t, spatial.EncodeEXIF(spatial.PropertyMap{spatial.KeyOrientation: 9, "Make": ""}))
	assert.NotNil(t, spatial.EncodeEXIF(spatial.PropertyMap{spatial.KeyOrientation: 1}))
}

func TestTargetBeside(t *testing.T) {
	target := spatial.TargetBeside(filepath.Join("photos", "trip", "IMG_1.mpo"), spatial.RoleRight)
	assert.Equal(t, filepath.Join("photos", "trip"), target.Dir)
	assert.Equal(t, "IMG_1", target.Base)
	assert.Equal(t, filepath.Join("photos", "trip", "IMG_1_right.jpg"), target.Path)
}
