package spatial

import (
	"bytes"
	"errors"
	"image"
	"os"

	"github.com/disintegration/imaging"
)

// Writer re-encodes images as standalone JPEG files.
type Writer struct {
	// Quality is the JPEG quality (1-100), 0 means default.
	Quality int
}

func (w Writer) quality() int {
	if w.Quality <= 0 || w.Quality > 100 {
		return defaultQuality
	}
	return w.Quality
}

// Encode returns img as JPEG carrying the representable subset of props as EXIF.
func (w Writer) Encode(img image.Image, props PropertyMap) ([]byte, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(w.quality())); err != nil {
		return nil, err
	}
	payload := EncodeEXIF(props)
	if payload == nil || len(payload)+2 > 0xFFFF {
		return buf.Bytes(), nil
	}
	return insertAppSegments(buf.Bytes(), []appSegment{{marker: markerAPP1, payload: payload}})
}

// Write encodes img and creates or overwrites target.Path.
func (w Writer) Write(img image.Image, props PropertyMap, target OutputTarget) error {
	data, err := w.Encode(img, props)
	if err != nil {
		return &WriteError{Path: target.Path, Role: target.Role, Err: err}
	}
	if err := writeFile(target.Path, data); err != nil {
		return &WriteError{Path: target.Path, Role: target.Role, Err: err}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
