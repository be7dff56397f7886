package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vearutop/spatial"
	"github.com/vearutop/spatial/internal/assets"
)

// Reader is an opened container as the pipeline uses it.
type Reader interface {
	spatial.Inspector
	DecodeAt(index int) (image.Image, error)
	PropertiesAt(index int) (spatial.PropertyMap, error)
}

// Item is one unit of work. Outputs are named after Name and written to OutputDir.
type Item struct {
	Name      string
	OutputDir string
	Open      func(ctx context.Context) (Reader, error)
}

// FileItem exports next to the file at path.
func FileItem(path string) Item {
	return Item{
		Name:      path,
		OutputDir: filepath.Dir(path),
		Open: func(_ context.Context) (Reader, error) {
			if err := checkReadable(path); err != nil {
				return nil, err
			}
			c, err := spatial.OpenFile(path)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
	}
}

func checkReadable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("%w: %s: %w", ErrNotReadable, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotReadable, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotReadable, path, err)
	}
	return f.Close()
}

// AssetItem fetches the original bytes of a and exports into picturesDir.
func AssetItem(src assets.Source, a assets.Asset, picturesDir string) Item {
	return Item{
		Name:      a.OriginalFilename,
		OutputDir: picturesDir,
		Open: func(ctx context.Context) (Reader, error) {
			data, err := src.Original(ctx, a)
			if err != nil {
				return nil, &spatial.ContainerOpenError{Source: a.OriginalFilename, Err: err}
			}
			c, err := spatial.Open(data)
			if err != nil {
				var oe *spatial.ContainerOpenError
				if errors.As(err, &oe) && oe.Source == "" {
					oe.Source = a.OriginalFilename
				}
				return nil, err
			}
			return c, nil
		},
	}
}
