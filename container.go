package spatial

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

// Container is an opened multi-image source.
//
// A Container is immutable after Open and safe for concurrent use.
type Container struct {
	data    []byte
	mime    string
	ranges  [][2]int
	entries []mpfEntry // nil without an MPF index
	attrs   []mpfAttr
	version string
	primary int

	propsOnce sync.Once
	props     PropertyMap
}

// Open parses an in-memory container.
func Open(data []byte) (*Container, error) {
	return open("", data)
}

// OpenFile reads and parses the container at path.
func OpenFile(path string) (*Container, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, &ContainerOpenError{Source: path, Err: err}
	}
	return open(path, data)
}

func open(source string, data []byte) (*Container, error) {
	fail := func(err error) (*Container, error) {
		return nil, &ContainerOpenError{Source: source, Err: err}
	}
	if len(data) == 0 {
		return fail(errors.New("empty input"))
	}

	mt := mimetype.Detect(data)
	if !mt.Is("image/jpeg") {
		if !strings.HasPrefix(mt.String(), "image/") {
			return fail(fmt.Errorf("unsupported media type %s", mt.String()))
		}
		if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
			return fail(fmt.Errorf("decode %s: %w", mt.String(), err))
		}
		return &Container{data: data, mime: mt.String(), ranges: [][2]int{{0, len(data)}}}, nil
	}

	c := &Container{data: data, mime: mt.String()}
	if !c.scanMPF() {
		ranges, err := scanJPEGs(data)
		if err != nil {
			return fail(err)
		}
		c.ranges = ranges
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(c.slotData(c.primary))); err != nil {
		return fail(fmt.Errorf("primary image %d: %w", c.primary, err))
	}
	return c, nil
}

func (c *Container) scanMPF() bool {
	segStart, payload, ok := findMPFSegment(c.data, 0)
	if !ok {
		return false
	}
	idx, err := parseMPF(payload)
	if err != nil {
		return false
	}
	tiffHeader := segStart + len(mpfSig)

	ranges := make([][2]int, len(idx.entries))
	for i, e := range idx.entries {
		start := 0
		if i > 0 {
			start = tiffHeader + int(e.offset)
		}
		end := start + int(e.size)
		if e.size < 4 || end > len(c.data) || start < 0 {
			return false
		}
		if c.data[start] != markerStart || c.data[start+1] != markerSOI {
			return false
		}
		ranges[i] = [2]int{start, end}
	}

	attrs := make([]mpfAttr, len(idx.entries))
	attrs[0] = idx.attr
	for i := 1; i < len(ranges); i++ {
		if _, p, ok := findMPFSegment(c.data[:ranges[i][1]], ranges[i][0]); ok {
			if a, err := parseMPFAttr(p); err == nil {
				attrs[i] = a
			}
		}
	}

	c.ranges = ranges
	c.entries = idx.entries
	c.attrs = attrs
	c.version = idx.version
	c.primary = primaryEntry(idx.entries)
	return true
}

func primaryEntry(entries []mpfEntry) int {
	for i, e := range entries {
		if e.representative() {
			return i
		}
	}
	for i, e := range entries {
		if e.typ() == MPTypeBaselinePrimary {
			return i
		}
	}
	return 0
}

// ImageCount returns the number of images in the container.
func (c *Container) ImageCount() int { return len(c.ranges) }

// PrimaryIndex returns the index of the main composite image.
func (c *Container) PrimaryIndex() int { return c.primary }

// MediaType returns the sniffed MIME type of the source.
func (c *Container) MediaType() string { return c.mime }

// Properties returns the container-level metadata.
func (c *Container) Properties() PropertyMap {
	c.propsOnce.Do(func() {
		c.props = c.buildProperties()
	})
	return c.props.Clone()
}

func (c *Container) buildProperties() PropertyMap {
	props := PropertyMap{
		KeyImageCount:   c.ImageCount(),
		KeyPrimaryIndex: c.primary,
	}
	if c.entries == nil {
		return props
	}
	if c.version != "" {
		props[KeyMPFVersion] = c.version
	}
	if groups := c.groups(); len(groups) > 0 {
		props[KeyGroups] = groups
	}
	return props
}

// groups derives image groups from MP types.
func (c *Container) groups() []PropertyMap {
	byType := map[MPType][]int{}
	for i, e := range c.entries {
		byType[e.typ()] = append(byType[e.typ()], i)
	}

	var groups []PropertyMap
	add := func(g PropertyMap) {
		g[KeyGroupIndex] = len(groups)
		groups = append(groups, g)
	}

	if views := byType[MPTypeDisparity]; len(views) == 2 {
		views = c.byViewpoint(views)
		add(PropertyMap{
			KeyGroupType:       string(GroupStereoPair),
			KeyGroupIndexLeft:  views[0],
			KeyGroupIndexRight: views[1],
		})
	} else if len(views) > 2 {
		add(PropertyMap{
			KeyGroupType:         string(GroupDisparity),
			KeyGroupImageIndices: c.byViewpoint(views),
		})
	}
	if views := byType[MPTypeMultiAngle]; len(views) > 1 {
		add(PropertyMap{
			KeyGroupType:         string(GroupMultiAngle),
			KeyGroupImageIndices: c.byViewpoint(views),
		})
	}
	if views := byType[MPTypePanorama]; len(views) > 1 {
		add(PropertyMap{
			KeyGroupType:         string(GroupPanorama),
			KeyGroupImageIndices: c.byViewpoint(views),
		})
	}
	return groups
}

// byViewpoint orders image indices by MP individual number when every image
// carries one, and keeps entry order otherwise.
// Disparity images are numbered from the leftmost viewpoint.
func (c *Container) byViewpoint(indices []int) []int {
	out := append([]int(nil), indices...)
	for _, i := range out {
		if !c.attrs[i].hasIndividual {
			return out
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return c.attrs[out[i]].individualNum < c.attrs[out[j]].individualNum
	})
	return out
}

func (c *Container) slotData(index int) []byte {
	r := c.ranges[index]
	return c.data[r[0]:r[1]]
}

func (c *Container) slot(index int) ([]byte, error) {
	if index < 0 || index >= len(c.ranges) {
		return nil, &ImageDecodeError{Index: index, Err: fmt.Errorf("index out of range [0, %d)", len(c.ranges))}
	}
	return c.slotData(index), nil
}

// ImageData returns the encoded bytes of the image at index.
func (c *Container) ImageData(index int) ([]byte, error) {
	slot, err := c.slot(index)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), slot...), nil
}

// DecodeAt decodes the image at index without applying EXIF orientation.
func (c *Container) DecodeAt(index int) (image.Image, error) {
	slot, err := c.slot(index)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(slot), imaging.AutoOrientation(false))
	if err != nil {
		return nil, &ImageDecodeError{Index: index, Err: err}
	}
	return img, nil
}

// PropertiesAt returns the metadata of the image at index.
func (c *Container) PropertiesAt(index int) (PropertyMap, error) {
	slot, err := c.slot(index)
	if err != nil {
		return nil, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(slot))
	if err != nil {
		return nil, &ImageDecodeError{Index: index, Err: err}
	}
	props := PropertyMap{
		KeyPixelWidth:  cfg.Width,
		KeyPixelHeight: cfg.Height,
	}
	if c.entries != nil {
		props[KeyMPType] = int(c.entries[index].typ())
		if a := c.attrs[index]; a.hasIndividual {
			props[KeyMPIndividualNum] = int(a.individualNum)
		}
	}
	readEXIF(slot, props)
	return props, nil
}
