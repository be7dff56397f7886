package spatial

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// MPType is the MP type code of an MP entry (CIPA DC-007, bits 0-23 of the attribute).
type MPType uint32

const (
	MPTypeUndefined       MPType = 0x000000
	MPTypeLargeThumbVGA   MPType = 0x010001
	MPTypeLargeThumbHD    MPType = 0x010002
	MPTypePanorama        MPType = 0x020001
	MPTypeDisparity       MPType = 0x020002
	MPTypeMultiAngle      MPType = 0x020003
	MPTypeBaselinePrimary MPType = 0x030000
)

func (t MPType) String() string {
	switch t {
	case MPTypeLargeThumbVGA, MPTypeLargeThumbHD:
		return "LargeThumbnail"
	case MPTypePanorama:
		return "Panorama"
	case MPTypeDisparity:
		return "Disparity"
	case MPTypeMultiAngle:
		return "MultiAngle"
	case MPTypeBaselinePrimary:
		return "BaselinePrimary"
	default:
		return fmt.Sprintf("0x%06X", uint32(t))
	}
}

const (
	mpfEndianSize = 4
	mpfTagSize    = 12
	mpfEntrySize  = 16
	mpfMaxImages  = 1024

	mpfTypeLong      = 0x4
	mpfTypeUndefined = 0x7

	mpfVersionTag        = 0xB000
	mpfNumberOfImagesTag = 0xB001
	mpfEntryTag          = 0xB002
	mpfIndividualNumTag  = 0xB101

	mpfAttrTypeMask       = 0x00FFFFFF
	mpfAttrRepresentative = 0x20000000

	// Index IFD: version, number of images, entries.
	mpfIndexTagCount = 3
	// Attribute IFD: version, individual image number.
	mpfAttrTagCount = 2
)

var (
	mpfSig       = []byte{'M', 'P', 'F', 0}
	mpfBigEndian = []byte{0x4D, 0x4D, 0x00, 0x2A}
	mpfVersion   = []byte{'0', '1', '0', '0'}
)

type mpfEntry struct {
	attr   uint32
	size   uint32
	offset uint32
}

func (e mpfEntry) typ() MPType { return MPType(e.attr & mpfAttrTypeMask) }

func (e mpfEntry) representative() bool { return e.attr&mpfAttrRepresentative != 0 }

type mpfAttr struct {
	individualNum uint32
	hasIndividual bool
}

type mpfIndex struct {
	version string
	entries []mpfEntry
	attr    mpfAttr
}

type ifdTag struct {
	typ   uint16
	count uint32
	value uint32
	raw   []byte
}

func mpfTIFF(payload []byte) ([]byte, binary.ByteOrder, int, error) {
	if len(payload) < len(mpfSig)+8 || !bytes.HasPrefix(payload, mpfSig) {
		return nil, nil, 0, errors.New("mpf signature missing")
	}
	tiff := payload[len(mpfSig):]
	var order binary.ByteOrder
	switch {
	case tiff[0] == 0x4D && tiff[1] == 0x4D:
		order = binary.BigEndian
	case tiff[0] == 0x49 && tiff[1] == 0x49:
		order = binary.LittleEndian
	default:
		return nil, nil, 0, errors.New("mpf endian invalid")
	}
	if order.Uint16(tiff[2:4]) != 0x002A {
		return nil, nil, 0, errors.New("mpf tiff magic invalid")
	}
	return tiff, order, int(order.Uint32(tiff[4:8])), nil
}

func readIFD(tiff []byte, order binary.ByteOrder, offset int) (map[uint16]ifdTag, int, error) {
	if offset < 8 || offset+2 > len(tiff) {
		return nil, 0, errors.New("mpf ifd offset invalid")
	}
	count := int(order.Uint16(tiff[offset : offset+2]))
	pos := offset + 2
	tags := make(map[uint16]ifdTag, count)
	for i := 0; i < count; i++ {
		if pos+mpfTagSize > len(tiff) {
			return nil, 0, errors.New("mpf ifd truncated")
		}
		tag := order.Uint16(tiff[pos : pos+2])
		tags[tag] = ifdTag{
			typ:   order.Uint16(tiff[pos+2 : pos+4]),
			count: order.Uint32(tiff[pos+4 : pos+8]),
			value: order.Uint32(tiff[pos+8 : pos+12]),
			raw:   tiff[pos+8 : pos+12],
		}
		pos += mpfTagSize
	}
	next := 0
	if pos+4 <= len(tiff) {
		next = int(order.Uint32(tiff[pos : pos+4]))
	}
	return tags, next, nil
}

func attrFromTags(tags map[uint16]ifdTag) mpfAttr {
	var a mpfAttr
	if t, ok := tags[mpfIndividualNumTag]; ok && t.typ == mpfTypeLong && t.count == 1 {
		a.individualNum = t.value
		a.hasIndividual = true
	}
	return a
}

// parseMPF decodes the MP Index IFD of the first image and its attribute IFD.
func parseMPF(payload []byte) (mpfIndex, error) {
	tiff, order, ifdOffset, err := mpfTIFF(payload)
	if err != nil {
		return mpfIndex{}, err
	}
	tags, next, err := readIFD(tiff, order, ifdOffset)
	if err != nil {
		return mpfIndex{}, err
	}

	var idx mpfIndex
	if v, ok := tags[mpfVersionTag]; ok && v.count == 4 {
		idx.version = string(v.raw)
	}
	et, ok := tags[mpfEntryTag]
	if !ok || et.typ != mpfTypeUndefined || et.count < mpfEntrySize {
		return mpfIndex{}, errors.New("mpf entry tag missing")
	}
	n := int(et.count / mpfEntrySize)
	if nt, ok := tags[mpfNumberOfImagesTag]; ok && int(nt.value) < n {
		n = int(nt.value)
	}
	if n < 1 || n > mpfMaxImages {
		return mpfIndex{}, fmt.Errorf("mpf image count %d invalid", n)
	}
	entryOffset := int(et.value)
	if entryOffset < 8 || entryOffset+mpfEntrySize*n > len(tiff) {
		return mpfIndex{}, errors.New("mpf entry offset invalid")
	}
	idx.entries = make([]mpfEntry, n)
	for i := range idx.entries {
		pos := entryOffset + i*mpfEntrySize
		idx.entries[i] = mpfEntry{
			attr:   order.Uint32(tiff[pos : pos+4]),
			size:   order.Uint32(tiff[pos+4 : pos+8]),
			offset: order.Uint32(tiff[pos+8 : pos+12]),
		}
	}
	if next != 0 {
		if attrTags, _, err := readIFD(tiff, order, next); err == nil {
			idx.attr = attrFromTags(attrTags)
		}
	}
	return idx, nil
}

// parseMPFAttr decodes the MP Attribute IFD carried by a non-first image.
func parseMPFAttr(payload []byte) (mpfAttr, error) {
	tiff, order, ifdOffset, err := mpfTIFF(payload)
	if err != nil {
		return mpfAttr{}, err
	}
	tags, _, err := readIFD(tiff, order, ifdOffset)
	if err != nil {
		return mpfAttr{}, err
	}
	return attrFromTags(tags), nil
}

func mpfIndexPayloadSize(n int) int {
	return len(mpfSig) + mpfEndianSize + 4 +
		2 + mpfIndexTagCount*mpfTagSize + 4 +
		n*mpfEntrySize +
		2 + mpfAttrTagCount*mpfTagSize + 4
}

func mpfAttrPayloadSize() int {
	return len(mpfSig) + mpfEndianSize + 4 + 2 + mpfAttrTagCount*mpfTagSize + 4
}

type mpfWriter struct {
	buf []byte
}

func (w *mpfWriter) u16(v uint16) { w.buf = binary.BigEndian.AppendUint16(w.buf, v) }
func (w *mpfWriter) u32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }

func (w *mpfWriter) header() {
	w.buf = append(w.buf, mpfSig...)
	w.buf = append(w.buf, mpfBigEndian...)
	w.u32(mpfEndianSize + 4)
}

func (w *mpfWriter) attrIFD(individualNum uint32) {
	w.u16(mpfAttrTagCount)

	w.u16(mpfVersionTag)
	w.u16(mpfTypeUndefined)
	w.u32(4)
	w.buf = append(w.buf, mpfVersion...)

	w.u16(mpfIndividualNumTag)
	w.u16(mpfTypeLong)
	w.u32(1)
	w.u32(individualNum)

	w.u32(0)
}

// generateMPFIndex builds the APP2 payload of the first image.
func generateMPFIndex(entries []mpfEntry, individualNum uint32) []byte {
	n := len(entries)
	w := &mpfWriter{buf: make([]byte, 0, mpfIndexPayloadSize(n))}
	w.header()

	entryOffset := uint32(mpfEndianSize + 4 + 2 + mpfIndexTagCount*mpfTagSize + 4)
	attrOffset := entryOffset + uint32(n*mpfEntrySize)

	w.u16(mpfIndexTagCount)

	w.u16(mpfVersionTag)
	w.u16(mpfTypeUndefined)
	w.u32(4)
	w.buf = append(w.buf, mpfVersion...)

	w.u16(mpfNumberOfImagesTag)
	w.u16(mpfTypeLong)
	w.u32(1)
	w.u32(uint32(n))

	w.u16(mpfEntryTag)
	w.u16(mpfTypeUndefined)
	w.u32(uint32(n * mpfEntrySize))
	w.u32(entryOffset)

	w.u32(attrOffset)

	for _, e := range entries {
		w.u32(e.attr)
		w.u32(e.size)
		w.u32(e.offset)
		w.u16(0)
		w.u16(0)
	}

	w.attrIFD(individualNum)
	return w.buf
}

// generateMPFAttr builds the APP2 payload of a non-first image.
func generateMPFAttr(individualNum uint32) []byte {
	w := &mpfWriter{buf: make([]byte, 0, mpfAttrPayloadSize())}
	w.header()
	w.attrIFD(individualNum)
	return w.buf
}
