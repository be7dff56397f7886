package spatial

// StereoPair is a resolved left/right image pair.
type StereoPair struct {
	Left  int
	Right int
}

// GroupOptions controls stereo pair resolution.
type GroupOptions struct {
	// SkipInvalid continues to the next stereo pair group when the first one is
	// malformed instead of reporting no pair.
	SkipInvalid bool
}

// FindStereoPair returns the stereo pair referenced by the container groups.
//
// The first StereoPair group decides: when its indices are missing, not integers,
// or outside [0, imageCount), no pair is reported unless SkipInvalid is set.
func FindStereoPair(props PropertyMap, imageCount int, opts ...func(o *GroupOptions)) (StereoPair, bool) {
	var o GroupOptions
	for _, opt := range opts {
		opt(&o)
	}

	groups, ok := props.Maps(KeyGroups)
	if !ok {
		return StereoPair{}, false
	}
	for _, g := range groups {
		if t, ok := g.String(KeyGroupType); !ok || GroupType(t) != GroupStereoPair {
			continue
		}
		if pair, ok := stereoPair(g, imageCount); ok {
			return pair, true
		}
		if !o.SkipInvalid {
			return StereoPair{}, false
		}
	}
	return StereoPair{}, false
}

func stereoPair(g PropertyMap, imageCount int) (StereoPair, bool) {
	left, ok := g.Int(KeyGroupIndexLeft)
	if !ok || left < 0 || left >= imageCount {
		return StereoPair{}, false
	}
	right, ok := g.Int(KeyGroupIndexRight)
	if !ok || right < 0 || right >= imageCount {
		return StereoPair{}, false
	}
	return StereoPair{Left: left, Right: right}, true
}
