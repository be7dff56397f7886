package spatial

import (
	"errors"
	"fmt"
)

var (
	// ErrContainerOpen marks inputs that do not yield a readable container.
	ErrContainerOpen = errors.New("container open failed")
	// ErrNoImages is reported by Plan for a container without images.
	ErrNoImages = errors.New("no images in container")
	// ErrPrimaryIndex is reported by Plan when the primary index is out of range.
	ErrPrimaryIndex = errors.New("primary image index out of range")
	// ErrImageDecode marks a slot that could not be decoded or inspected.
	ErrImageDecode = errors.New("image decode failed")
	// ErrWrite marks an output that could not be encoded or persisted.
	ErrWrite = errors.New("image write failed")
)

// ContainerOpenError describes why a source could not be opened.
type ContainerOpenError struct {
	Source string
	Err    error
}

func (e *ContainerOpenError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("open container: %v", e.Err)
	}
	return fmt.Sprintf("open container %s: %v", e.Source, e.Err)
}

func (e *ContainerOpenError) Unwrap() []error { return []error{ErrContainerOpen, e.Err} }

// ImageDecodeError identifies the container slot that failed.
type ImageDecodeError struct {
	Index int
	Err   error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image %d: %v", e.Index, e.Err)
}

func (e *ImageDecodeError) Unwrap() []error { return []error{ErrImageDecode, e.Err} }

// WriteError identifies the output that failed.
type WriteError struct {
	Path string
	Role Role
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s image %s: %v", e.Role, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error { return []error{ErrWrite, e.Err} }
