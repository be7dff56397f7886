// Package assets provides the photo library the extractor reads spatial media from.
package assets

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the authorization state of an asset source.
type Status int

const (
	NotDetermined Status = iota
	Restricted
	Denied
	Limited
	Authorized
)

func (s Status) String() string {
	switch s {
	case NotDetermined:
		return "not determined"
	case Restricted:
		return "restricted"
	case Denied:
		return "denied"
	case Limited:
		return "limited"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Asset is one media item of a source.
type Asset struct {
	ID               uuid.UUID
	OriginalFilename string
	Created          time.Time

	path string
}

// Source enumerates spatial media and fetches their original bytes.
type Source interface {
	Authorization(ctx context.Context) (Status, error)
	// Spatial returns assets flagged as spatial media, newest first.
	Spatial(ctx context.Context) ([]Asset, error)
	Original(ctx context.Context, a Asset) ([]byte, error)
}
