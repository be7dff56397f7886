package assets_test

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearutop/spatial"
	"github.com/vearutop/spatial/internal/assets"
	"github.com/vearutop/spatial/internal/testsupport"
)

func TestAuthorization(t *testing.T) {
	ctx := t.Context()

	status, err := assets.NewLibrary(filepath.Join(t.TempDir(), "missing")).Authorization(ctx)
	require.NoError(t, err)
	assert.Equal(t, assets.NotDetermined, status)

	file := testsupport.WriteFile(t, t.TempDir(), "file", []byte("x"))
	status, err = assets.NewLibrary(file).Authorization(ctx)
	require.NoError(t, err)
	assert.Equal(t, assets.Restricted, status)

	status, err = assets.NewLibrary(t.TempDir()).Authorization(ctx)
	require.NoError(t, err)
	assert.Equal(t, assets.Authorized, status)
}

func TestAuthorizationPermissions(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	ctx := t.Context()

	readOnly := t.TempDir()
	require.NoError(t, os.Chmod(readOnly, 0o555))
	t.Cleanup(func() { _ = os.Chmod(readOnly, 0o755) })

	status, err := assets.NewLibrary(readOnly).Authorization(ctx)
	require.NoError(t, err)
	assert.Equal(t, assets.Limited, status)

	closed := t.TempDir()
	require.NoError(t, os.Chmod(closed, 0o000))
	t.Cleanup(func() { _ = os.Chmod(closed, 0o755) })

	status, err = assets.NewLibrary(closed).Authorization(ctx)
	require.NoError(t, err)
	assert.Equal(t, assets.Denied, status)
}

func TestSpatialAssets(t *testing.T) {
	dir := t.TempDir()
	stereo := testsupport.StereoMPO(t)

	older := testsupport.WriteFile(t, dir, "2023/old.jpg", stereo)
	newer := testsupport.WriteFile(t, dir, "new.mpo", stereo)
	testsupport.WriteFile(t, dir, "flat.jpg", testsupport.JPEG(t, color.White, nil))
	testsupport.WriteFile(t, dir, "thumb.jpg", testsupport.PrimaryWithThumbnail(t))
	testsupport.WriteFile(t, dir, "notes.txt", []byte("hello"))

	now := time.Now()
	require.NoError(t, os.Chtimes(older, now.Add(-48*time.Hour), now.Add(-48*time.Hour)))
	require.NoError(t, os.Chtimes(newer, now, now))

	lib := assets.NewLibrary(dir)
	list, err := lib.Spatial(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "new.mpo", list[0].OriginalFilename)
	assert.Equal(t, "old.jpg", list[1].OriginalFilename)
	assert.True(t, list[0].Created.After(list[1].Created))
	assert.NotEqual(t, uuid.Nil, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)

	again, err := lib.Spatial(t.Context())
	require.NoError(t, err)
	assert.Equal(t, list[0].ID, again[0].ID)

	data, err := lib.Original(t.Context(), list[1])
	require.NoError(t, err)
	assert.Equal(t, stereo, data)
}

func TestSpatialPrefersCaptureTime(t *testing.T) {
	dir := t.TempDir()
	primary := testsupport.JPEG(t, color.White, spatial.PropertyMap{"DateTime": "2001:02:03 04:05:06"})
	view := testsupport.JPEG(t, color.Black, nil)
	data := testsupport.MPO(t,
		spatial.Frame{JPEG: primary, Type: spatial.MPTypeBaselinePrimary, Representative: true},
		spatial.Frame{JPEG: view, Type: spatial.MPTypeDisparity, IndividualNum: 1},
		spatial.Frame{JPEG: view, Type: spatial.MPTypeDisparity, IndividualNum: 2},
	)
	testsupport.WriteFile(t, dir, "captured.jpg", data)

	list, err := assets.NewLibrary(dir).Spatial(t.Context())
	require.NoError(t, err)
	require.Len(t, list, 1)

	want := time.Date(2001, 2, 3, 4, 5, 6, 0, time.Local)
	assert.True(t, want.Equal(list[0].Created), list[0].Created.String())
}

func TestSpatialMissingLibrary(t *testing.T) {
	_, err := assets.NewLibrary(filepath.Join(t.TempDir(), "missing")).Spatial(t.Context())
	assert.Error(t, err)
}

func TestOriginalRejectsForeignAsset(t *testing.T) {
	_, err := assets.NewLibrary(t.TempDir()).Original(t.Context(), assets.Asset{OriginalFilename: "x.jpg"})
	assert.Error(t, err)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "limited", assets.Limited.String())
	assert.Equal(t, "unknown", assets.Status(42).String())
}
