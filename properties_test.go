package spatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vearutop/spatial"
)

func TestPropertyMapAccessors(t *testing.T) {
	var nilMap spatial.PropertyMap
	_, ok := nilMap.Int("x")
	assert.False(t, ok)
	assert.Nil(t, nilMap.Clone())

	m := spatial.PropertyMap{
		"s":   "text",
		"g":   spatial.GroupStereoPair,
		"i":   int16(-4),
		"u":   uint64(math.MaxUint64),
		"f":   2.0,
		"arr": []any{spatial.PropertyMap{"a": 1}, "skip", map[string]any{"b": 2}},
	}

	s, ok := m.String("s")
	assert.True(t, ok)
	assert.Equal(t, "text", s)

	s, ok = m.String("g")
	assert.True(t, ok)
	assert.Equal(t, "StereoPair", s)

	_, ok = m.String("i")
	assert.False(t, ok)

	i, ok := m.Int("i")
	assert.True(t, ok)
	assert.Equal(t, -4, i)

	_, ok = m.Int("u")
	assert.False(t, ok)
	_, ok = m.Int("f")
	assert.False(t, ok)
	_, ok = m.Int("missing")
	assert.False(t, ok)

	maps, ok := m.Maps("arr")
	assert.True(t, ok)
	assert.Len(t, maps, 2)

	_, ok = m.Maps("s")
	assert.False(t, ok)
}

func TestPropertyMapCloneIsDeep(t *testing.T) {
	m := spatial.PropertyMap{
		"nested":  spatial.PropertyMap{"k": 1},
		"list":    []spatial.PropertyMap{{"k": 1}},
		"indices": []int{1, 2},
	}
	c := m.Clone()
	c["nested"].(spatial.PropertyMap)["k"] = 2
	c["list"].([]spatial.PropertyMap)[0]["k"] = 2
	c["indices"].([]int)[0] = 9

	assert.Equal(t, 1, m["nested"].(spatial.PropertyMap)["k"])
	assert.Equal(t, 1, m["list"].([]spatial.PropertyMap)[0]["k"])
	assert.Equal(t, []int{1, 2}, m["indices"])
}
