package spatial

// PropertyMap is a loosely typed metadata dictionary.
//
// Values are strings, integers, float64, nested maps or sequences of maps.
// Accessors never panic: absence or a type mismatch reports ok == false.
type PropertyMap map[string]any

// Get returns the raw value stored under key.
func (m PropertyMap) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// String returns the string value stored under key.
func (m PropertyMap) String(key string) (string, bool) {
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	return AsString(v)
}

// Int returns the integer value stored under key.
func (m PropertyMap) Int(key string) (int, bool) {
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	return AsInt(v)
}

// Maps returns the sequence of maps stored under key.
func (m PropertyMap) Maps(key string) ([]PropertyMap, bool) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false
	}
	return AsMaps(v)
}

// Clone returns a deep copy of m.
func (m PropertyMap) Clone() PropertyMap {
	if m == nil {
		return nil
	}
	out := make(PropertyMap, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case PropertyMap:
		return t.Clone()
	case map[string]any:
		return PropertyMap(t).Clone()
	case []PropertyMap:
		out := make([]PropertyMap, len(t))
		for i := range t {
			out[i] = t[i].Clone()
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	case []int:
		return append([]int(nil), t...)
	default:
		return v
	}
}

// AsString converts v to a string.
func AsString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case GroupType:
		return string(t), true
	case Role:
		return string(t), true
	default:
		return "", false
	}
}

// AsInt converts integer kinds to int. Floating point values are rejected.
func AsInt(v any) (int, bool) {
	const maxInt = int(^uint(0) >> 1)

	switch t := v.(type) {
	case int:
		return t, true
	case int8:
		return int(t), true
	case int16:
		return int(t), true
	case int32:
		return int(t), true
	case int64:
		if int64(int(t)) != t {
			return 0, false
		}
		return int(t), true
	case uint8:
		return int(t), true
	case uint16:
		return int(t), true
	case uint32:
		if uint64(t) > uint64(maxInt) {
			return 0, false
		}
		return int(t), true
	case uint64:
		if t > uint64(maxInt) {
			return 0, false
		}
		return int(t), true
	case uint:
		if t > uint(maxInt) {
			return 0, false
		}
		return int(t), true
	default:
		return 0, false
	}
}

// AsMaps converts v to a sequence of maps. Elements that are not maps are skipped.
func AsMaps(v any) ([]PropertyMap, bool) {
	switch t := v.(type) {
	case []PropertyMap:
		return t, true
	case []map[string]any:
		out := make([]PropertyMap, 0, len(t))
		for _, m := range t {
			out = append(out, PropertyMap(m))
		}
		return out, true
	case []any:
		out := make([]PropertyMap, 0, len(t))
		for _, e := range t {
			switch m := e.(type) {
			case PropertyMap:
				out = append(out, m)
			case map[string]any:
				out = append(out, PropertyMap(m))
			}
		}
		return out, true
	default:
		return nil, false
	}
}
