package spatial

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

// readEXIF adds EXIF fields of a JPEG or TIFF stream to props. Existing keys win.
func readEXIF(data []byte, props PropertyMap) bool {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return false
	}
	return x.Walk(exifCollector(props)) == nil
}

type exifCollector PropertyMap

func (c exifCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if tag == nil {
		return nil
	}
	key := string(name)
	if _, ok := c[key]; ok {
		return nil
	}
	c[key] = exifValue(tag)
	return nil
}

func exifValue(tag *tiff.Tag) any {
	if tag.Count == 1 {
		switch tag.Format() {
		case tiff.IntVal:
			if v, err := tag.Int64(0); err == nil {
				return int(v)
			}
		case tiff.RatVal:
			if r, err := tag.Rat(0); err == nil {
				f, _ := r.Float64()
				return f
			}
		case tiff.FloatVal:
			if f, err := tag.Float(0); err == nil {
				return f
			}
		}
	}
	if tag.Format() == tiff.StringVal {
		if s, err := tag.StringVal(); err == nil {
			return s
		}
	}
	return strings.Trim(tag.String(), "\"")
}

const (
	tiffTypeASCII = 2
	tiffTypeShort = 3
)

// exifWritable lists the IFD0 fields a standalone JPEG output carries, in tag order.
var exifWritable = []struct {
	key string
	tag uint16
	typ uint16
}{
	{"ImageDescription", 0x010E, tiffTypeASCII},
	{"Make", 0x010F, tiffTypeASCII},
	{"Model", 0x0110, tiffTypeASCII},
	{KeyOrientation, 0x0112, tiffTypeShort},
	{"Software", 0x0131, tiffTypeASCII},
	{"DateTime", 0x0132, tiffTypeASCII},
	{"Artist", 0x013B, tiffTypeASCII},
	{"Copyright", 0x8298, tiffTypeASCII},
}

type exifField struct {
	tag   uint16
	typ   uint16
	count uint32
	data  []byte
}

// EncodeEXIF builds an APP1 EXIF payload from the representable subset of props.
// It returns nil when props carry nothing representable.
func EncodeEXIF(props PropertyMap) []byte {
	var fields []exifField
	for _, w := range exifWritable {
		switch w.typ {
		case tiffTypeShort:
			v, ok := props.Int(w.key)
			if !ok || v < 1 || v > 8 {
				continue
			}
			fields = append(fields, exifField{tag: w.tag, typ: w.typ, count: 1, data: binary.BigEndian.AppendUint16(nil, uint16(v))})
		case tiffTypeASCII:
			s, ok := props.String(w.key)
			if !ok || s == "" || strings.IndexByte(s, 0) >= 0 {
				continue
			}
			data := append([]byte(s), 0)
			fields = append(fields, exifField{tag: w.tag, typ: w.typ, count: uint32(len(data)), data: data})
		}
	}
	if len(fields) == 0 {
		return nil
	}

	const ifdOffset = 8
	valueOffset := ifdOffset + 2 + len(fields)*12 + 4

	out := append([]byte(nil), exifSig...)
	out = append(out, 'M', 'M', 0x00, 0x2A)
	out = binary.BigEndian.AppendUint32(out, ifdOffset)
	out = binary.BigEndian.AppendUint16(out, uint16(len(fields)))

	var values []byte
	for _, f := range fields {
		out = binary.BigEndian.AppendUint16(out, f.tag)
		out = binary.BigEndian.AppendUint16(out, f.typ)
		out = binary.BigEndian.AppendUint32(out, f.count)
		if len(f.data) <= 4 {
			var inline [4]byte
			copy(inline[:], f.data)
			out = append(out, inline[:]...)
			continue
		}
		out = binary.BigEndian.AppendUint32(out, uint32(valueOffset+len(values)))
		values = append(values, f.data...)
		if len(values)%2 == 1 {
			values = append(values, 0)
		}
	}
	out = binary.BigEndian.AppendUint32(out, 0)
	return append(out, values...)
}
