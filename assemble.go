package spatial

import (
	"bytes"
	"errors"
	"fmt"
)

// Frame is one JPEG image to be stored in an MPF container.
type Frame struct {
	JPEG           []byte
	Type           MPType
	IndividualNum  uint32
	Representative bool
}

// Assemble builds an MPF (MPO) container from frames; the first frame is placed first.
// The MPF segment of each frame is inserted after its leading APP0/APP1 segments.
func Assemble(frames []Frame) ([]byte, error) {
	if len(frames) == 0 {
		return nil, errors.New("no frames")
	}
	if len(frames) > mpfMaxImages {
		return nil, fmt.Errorf("too many frames: %d", len(frames))
	}

	cuts := make([]int, len(frames))
	sizes := make([]int, len(frames))
	for i, f := range frames {
		cut, err := leadingAppEnd(f.JPEG)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		cuts[i] = cut
		payload := mpfAttrPayloadSize()
		if i == 0 {
			payload = mpfIndexPayloadSize(len(frames))
		}
		sizes[i] = len(f.JPEG) + 4 + payload
	}

	// MP entry offsets are relative to the TIFF header of the first MPF segment.
	tiffHeader := cuts[0] + 4 + len(mpfSig)
	entries := make([]mpfEntry, len(frames))
	start := 0
	for i, f := range frames {
		attr := uint32(f.Type) & mpfAttrTypeMask
		if f.Representative {
			attr |= mpfAttrRepresentative
		}
		entries[i] = mpfEntry{attr: attr, size: uint32(sizes[i])}
		if i > 0 {
			entries[i].offset = uint32(start - tiffHeader)
		}
		start += sizes[i]
	}

	var out bytes.Buffer
	out.Grow(start)
	for i, f := range frames {
		payload := generateMPFAttr(f.IndividualNum)
		if i == 0 {
			payload = generateMPFIndex(entries, f.IndividualNum)
		}
		out.Write(f.JPEG[:cuts[i]])
		writeAppSegment(&out, markerAPP2, payload)
		out.Write(f.JPEG[cuts[i]:])
	}
	return out.Bytes(), nil
}
