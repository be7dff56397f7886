package spatial

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMPFIndexRoundTrip(t *testing.T) {
	entries := []mpfEntry{
		{attr: uint32(MPTypeBaselinePrimary) | mpfAttrRepresentative, size: 1000},
		{attr: uint32(MPTypeDisparity), size: 900, offset: 958},
		{attr: uint32(MPTypeDisparity), size: 800, offset: 1858},
	}
	payload := generateMPFIndex(entries, 0)
	require.Len(t, payload, mpfIndexPayloadSize(len(entries)))

	idx, err := parseMPF(payload)
	require.NoError(t, err)
	assert.Equal(t, "0100", idx.version)
	assert.Equal(t, entries, idx.entries)
	assert.True(t, idx.attr.hasIndividual)
	assert.Equal(t, uint32(0), idx.attr.individualNum)
	assert.True(t, idx.entries[0].representative())
	assert.Equal(t, MPTypeDisparity, idx.entries[2].typ())
}

func TestGenerateMPFAttrRoundTrip(t *testing.T) {
	payload := generateMPFAttr(7)
	require.Len(t, payload, mpfAttrPayloadSize())

	a, err := parseMPFAttr(payload)
	require.NoError(t, err)
	assert.Equal(t, mpfAttr{individualNum: 7, hasIndividual: true}, a)
}

func TestParseMPFLittleEndian(t *testing.T) {
	le := binary.LittleEndian
	tiff := []byte{0x49, 0x49}
	tiff = le.AppendUint16(tiff, 0x002A)
	tiff = le.AppendUint32(tiff, 8)

	tiff = le.AppendUint16(tiff, 2)
	tiff = le.AppendUint16(tiff, mpfNumberOfImagesTag)
	tiff = le.AppendUint16(tiff, mpfTypeLong)
	tiff = le.AppendUint32(tiff, 1)
	tiff = le.AppendUint32(tiff, 2)
	tiff = le.AppendUint16(tiff, mpfEntryTag)
	tiff = le.AppendUint16(tiff, mpfTypeUndefined)
	tiff = le.AppendUint32(tiff, 2*mpfEntrySize)
	tiff = le.AppendUint32(tiff, 8+2+2*mpfTagSize+4)
	tiff = le.AppendUint32(tiff, 0)

	for _, e := range []mpfEntry{
		{attr: uint32(MPTypeDisparity), size: 10},
		{attr: uint32(MPTypeDisparity), size: 20, offset: 30},
	} {
		tiff = le.AppendUint32(tiff, e.attr)
		tiff = le.AppendUint32(tiff, e.size)
		tiff = le.AppendUint32(tiff, e.offset)
		tiff = le.AppendUint32(tiff, 0)
	}

	idx, err := parseMPF(append(append([]byte(nil), mpfSig...), tiff...))
	require.NoError(t, err)
	require.Len(t, idx.entries, 2)
	assert.Equal(t, uint32(30), idx.entries[1].offset)
	assert.Equal(t, "", idx.version)
	assert.False(t, idx.attr.hasIndividual)
}

func TestParseMPFRejectsMalformed(t *testing.T) {
	valid := generateMPFIndex([]mpfEntry{{attr: uint32(MPTypeBaselinePrimary), size: 100}}, 0)

	for name, payload := range map[string][]byte{
		"empty":     nil,
		"signature": append([]byte("XYZ\x00"), valid[4:]...),
		"endian":    append(append([]byte(nil), mpfSig...), 'X', 'X', 0, 0x2A, 0, 0, 0, 8),
		"truncated": valid[:20],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseMPF(payload)
			assert.Error(t, err)
		})
	}
}

func TestMPTypeString(t *testing.T) {
	assert.Equal(t, "Disparity", MPTypeDisparity.String())
	assert.Equal(t, "LargeThumbnail", MPTypeLargeThumbHD.String())
	assert.Equal(t, "0x040000", MPType(0x040000).String())
}

func TestFindJPEGEndSkipsFillBytes(t *testing.T) {
	data := []byte{
		0xFF, 0xD8,
		0xFF, 0xDA, 0x00, 0x02,
		0x12, 0xFF, 0x00, 0x34, 0xFF, 0xD0, 0x56, 0xFF, 0xFF, 0xD9,
		0xAA, 0xBB,
	}
	end, err := findJPEGEnd(data, 0)
	require.NoError(t, err)
	assert.Equal(t, len(data)-2, end)

	ranges, err := scanJPEGs(data)
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, len(data) - 2}}, ranges)
}

func TestByViewpoint(t *testing.T) {
	for _, tc := range []struct {
		name  string
		attrs []mpfAttr
		want  []int
	}{
		{
			name:  "numbered",
			attrs: []mpfAttr{{}, {individualNum: 2, hasIndividual: true}, {individualNum: 1, hasIndividual: true}},
			want:  []int{2, 1},
		},
		{
			name:  "first unnumbered",
			attrs: []mpfAttr{{}, {}, {individualNum: 1, hasIndividual: true}},
			want:  []int{1, 2},
		},
		{
			name:  "second unnumbered",
			attrs: []mpfAttr{{}, {individualNum: 2, hasIndividual: true}, {}},
			want:  []int{1, 2},
		},
		{
			name:  "none numbered",
			attrs: []mpfAttr{{}, {}, {}},
			want:  []int{1, 2},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := &Container{attrs: tc.attrs}
			assert.Equal(t, tc.want, c.byViewpoint([]int{1, 2}))
		})
	}
}
