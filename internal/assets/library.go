package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rwcarlsen/goexif/exif"

	"github.com/vearutop/spatial"
)

// libraryNamespace scopes name-based asset identifiers.
var libraryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("spatialtool:library"))

// Library is a Source backed by a directory tree.
type Library struct {
	Dir string
}

// NewLibrary creates a library rooted at dir.
func NewLibrary(dir string) *Library {
	return &Library{Dir: dir}
}

// Authorization maps directory permissions onto authorization states.
func (l *Library) Authorization(_ context.Context) (Status, error) {
	info, err := os.Stat(l.Dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotDetermined, nil
	case errors.Is(err, fs.ErrPermission):
		return Restricted, nil
	case err != nil:
		return NotDetermined, fmt.Errorf("stat library: %w", err)
	case !info.IsDir():
		return Restricted, nil
	}

	if !accessible(l.Dir, accessRead|accessExec) {
		return Denied, nil
	}
	if !accessible(l.Dir, accessWrite) {
		return Limited, nil
	}
	return Authorized, nil
}

// Spatial walks the library and returns the spatial assets, newest first.
func (l *Library) Spatial(ctx context.Context) ([]Asset, error) {
	var out []Asset
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		ok, err := isSpatialFile(path)
		if err != nil || !ok {
			// Unreadable or malformed files are not spatial media.
			return nil
		}
		rel, err := filepath.Rel(l.Dir, path)
		if err != nil {
			return err
		}
		out = append(out, Asset{
			ID:               uuid.NewSHA1(libraryNamespace, []byte(filepath.ToSlash(rel))),
			OriginalFilename: d.Name(),
			Created:          created(path, d),
			path:             path,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan library: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].OriginalFilename < out[j].OriginalFilename
	})
	return out, nil
}

// Original returns the full bytes of the asset.
func (l *Library) Original(ctx context.Context, a Asset) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := a.path
	if path == "" {
		return nil, fmt.Errorf("asset %s has no library location", a.ID)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", a.OriginalFilename, err)
	}
	return data, nil
}

func isSpatialFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return spatial.IsSpatial(f)
}

// created prefers the EXIF capture time and falls back to the modification time.
func created(path string, d fs.DirEntry) time.Time {
	if f, err := os.Open(path); err == nil {
		x, err := exif.Decode(f)
		_ = f.Close()
		if err == nil {
			if t, err := x.DateTime(); err == nil {
				return t
			}
		}
	}
	info, err := d.Info()
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
