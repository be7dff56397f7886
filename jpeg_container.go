package spatial

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	markerStart = 0xFF
	markerSOI   = 0xD8
	markerEOI   = 0xD9
	markerSOS   = 0xDA
	markerAPP0  = 0xE0
	markerAPP1  = 0xE1
	markerAPP2  = 0xE2
)

var exifSig = []byte{'E', 'x', 'i', 'f', 0, 0}

func isStandalone(marker byte) bool {
	return marker == 0x01 || (marker >= 0xD0 && marker <= 0xD7)
}

// scanJPEGs locates concatenated JPEG streams when no MPF index is available.
func scanJPEGs(data []byte) ([][2]int, error) {
	var ranges [][2]int
	i := 0
	for i+1 < len(data) {
		if data[i] == markerStart && data[i+1] == markerSOI {
			start := i
			end, err := findJPEGEnd(data, i)
			if err != nil {
				if len(ranges) > 0 {
					// Trailing garbage after a complete stream.
					break
				}
				return nil, err
			}
			ranges = append(ranges, [2]int{start, end})
			i = end
			continue
		}
		i++
	}
	if len(ranges) == 0 {
		return nil, errors.New("no JPEG images found")
	}
	return ranges, nil
}

// findMPFSegment returns the absolute offset and payload of the APP2 MPF segment
// in the header of the JPEG stream starting at start.
func findMPFSegment(data []byte, start int) (int, []byte, bool) {
	if start < 0 || start+1 >= len(data) || data[start] != markerStart || data[start+1] != markerSOI {
		return 0, nil, false
	}
	pos := start + 2
	for pos+3 < len(data) {
		if data[pos] != markerStart {
			pos++
			continue
		}
		for pos < len(data) && data[pos] == markerStart {
			pos++
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++
		switch marker {
		case markerSOI:
			continue
		case markerEOI, markerSOS:
			return 0, nil, false
		}
		if isStandalone(marker) {
			continue
		}
		if pos+1 >= len(data) {
			return 0, nil, false
		}
		segLen := int(binary.BigEndian.Uint16(data[pos:]))
		if segLen < 2 || pos+segLen > len(data) {
			return 0, nil, false
		}
		segStart := pos + 2
		segEnd := pos + segLen
		if marker == markerAPP2 && bytes.HasPrefix(data[segStart:segEnd], mpfSig) {
			return segStart, data[segStart:segEnd], true
		}
		pos = segEnd
	}
	return 0, nil, false
}

func findJPEGEnd(data []byte, start int) (int, error) {
	if start+1 >= len(data) || data[start] != markerStart || data[start+1] != markerSOI {
		return 0, errors.New("not a JPEG SOI")
	}
	pos := start + 2
	inScan := false
	for pos+1 < len(data) {
		if !inScan {
			if data[pos] != markerStart {
				pos++
				continue
			}
			for pos < len(data) && data[pos] == markerStart {
				pos++
			}
			if pos >= len(data) {
				break
			}
			marker := data[pos]
			pos++
			switch marker {
			case markerSOI:
				continue
			case markerEOI:
				return pos, nil
			case markerSOS:
				if pos+1 >= len(data) {
					return 0, errors.New("truncated SOS")
				}
				segLen := int(binary.BigEndian.Uint16(data[pos:]))
				pos += segLen
				inScan = true
				continue
			}
			if isStandalone(marker) {
				continue
			}
			if pos+1 >= len(data) {
				return 0, errors.New("truncated marker segment")
			}
			segLen := int(binary.BigEndian.Uint16(data[pos:]))
			if segLen < 2 {
				return 0, errors.New("invalid marker length")
			}
			pos += segLen
			continue
		}

		// in scan data
		if data[pos] == markerStart {
			next := data[pos+1]
			switch {
			case next == 0x00, next == markerStart:
				pos++
				if next == 0x00 {
					pos++
				}
				continue
			case next >= 0xD0 && next <= 0xD7:
				pos += 2
				continue
			case next == markerEOI:
				return pos + 2, nil
			default:
				// DHT/DQT/SOS between progressive scans.
				pos += 2
				if pos+1 >= len(data) {
					return 0, errors.New("truncated marker in scan")
				}
				segLen := int(binary.BigEndian.Uint16(data[pos:]))
				if segLen < 2 {
					return 0, errors.New("invalid marker length in scan")
				}
				pos += segLen
				continue
			}
		}
		pos++
	}
	return 0, errors.New("no EOI found")
}

// leadingAppEnd returns the offset just past SOI and the APP0/APP1 segments that follow it.
func leadingAppEnd(jpegData []byte) (int, error) {
	if len(jpegData) < 4 || jpegData[0] != markerStart || jpegData[1] != markerSOI {
		return 0, errors.New("invalid JPEG")
	}
	pos := 2
	for pos+3 < len(jpegData) {
		if jpegData[pos] != markerStart {
			return pos, nil
		}
		marker := jpegData[pos+1]
		if marker != markerAPP0 && marker != markerAPP1 {
			return pos, nil
		}
		segLen := int(binary.BigEndian.Uint16(jpegData[pos+2:]))
		if segLen < 2 || pos+2+segLen > len(jpegData) {
			return 0, errors.New("invalid segment length")
		}
		pos += 2 + segLen
	}
	return pos, nil
}

type appSegment struct {
	marker  byte
	payload []byte
}

func writeAppSegment(out *bytes.Buffer, marker byte, payload []byte) {
	out.WriteByte(markerStart)
	out.WriteByte(marker)
	length := uint16(len(payload) + 2)
	out.WriteByte(byte(length >> 8))
	out.WriteByte(byte(length))
	out.Write(payload)
}

// insertAppSegments inserts APP segments after SOI.
func insertAppSegments(jpegData []byte, segs []appSegment) ([]byte, error) {
	if len(jpegData) < 2 || jpegData[0] != markerStart || jpegData[1] != markerSOI {
		return nil, errors.New("invalid jpeg")
	}
	var out bytes.Buffer
	out.Grow(len(jpegData) + 64)
	out.WriteByte(markerStart)
	out.WriteByte(markerSOI)
	for _, s := range segs {
		if len(s.payload)+2 > 0xFFFF {
			return nil, errors.New("app segment too large")
		}
		writeAppSegment(&out, s.marker, s.payload)
	}
	out.Write(jpegData[2:])
	return out.Bytes(), nil
}
