package spatial

import (
	"bufio"
	"errors"
	"io"
)

// IsSpatial performs a streaming check without loading the full image.
// It reads the first image header and reports whether its MP Index lists a
// stereo pair of disparity images.
func IsSpatial(r io.Reader) (bool, error) {
	br := bufio.NewReader(r)
	soi := make([]byte, 2)
	if _, err := io.ReadFull(br, soi); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	if soi[0] != markerStart || soi[1] != markerSOI {
		return false, nil
	}
	for {
		marker, err := readMarker(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		switch {
		case marker == markerEOI, marker == markerSOS:
			return false, nil
		case marker == markerSOI, isStandalone(marker):
			continue
		case marker == markerAPP2:
			payload, err := readSegment(br)
			if err != nil {
				return false, err
			}
			if len(payload) < len(mpfSig) || string(payload[:len(mpfSig)]) != string(mpfSig) {
				continue
			}
			idx, err := parseMPF(payload)
			if err != nil {
				return false, nil
			}
			return countType(idx.entries, MPTypeDisparity) >= 2, nil
		default:
			if err := discardSegment(br); err != nil {
				return false, err
			}
		}
	}
}

func countType(entries []mpfEntry, t MPType) int {
	n := 0
	for _, e := range entries {
		if e.typ() == t {
			n++
		}
	}
	return n
}

func readMarker(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != markerStart {
			continue
		}
		for {
			m, err := br.ReadByte()
			if err != nil {
				return 0, err
			}
			if m != markerStart {
				return m, nil
			}
		}
	}
}

func readSegment(br *bufio.Reader) ([]byte, error) {
	length, err := readU16(br)
	if err != nil {
		return nil, err
	}
	if length < 2 {
		return nil, errors.New("invalid segment length")
	}
	buf := make([]byte, int(length-2))
	if _, err := io.ReadFull(br, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func discardSegment(br *bufio.Reader) error {
	length, err := readU16(br)
	if err != nil {
		return err
	}
	if length < 2 {
		return errors.New("invalid segment length")
	}
	_, err = io.CopyN(io.Discard, br, int64(length-2))
	return err
}

func readU16(br *bufio.Reader) (uint16, error) {
	hi, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	lo, err := br.ReadByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}
