package spatial

import "fmt"

// Inspector is the part of a container needed to plan an extraction.
type Inspector interface {
	ImageCount() int
	PrimaryIndex() int
	Properties() PropertyMap
}

// PlanEntry is one image to export.
type PlanEntry struct {
	Index int
	Role  Role
}

// ExtractionPlan lists exports in order: primary, then left and right.
type ExtractionPlan struct {
	Entries []PlanEntry
	Pair    *StereoPair
}

// Plan computes the exports for a container. It decodes nothing.
func Plan(src Inspector, opts ...func(o *GroupOptions)) (ExtractionPlan, error) {
	n := src.ImageCount()
	if n <= 0 {
		return ExtractionPlan{}, ErrNoImages
	}
	primary := src.PrimaryIndex()
	if primary < 0 || primary >= n {
		return ExtractionPlan{}, fmt.Errorf("%w: %d not in [0, %d)", ErrPrimaryIndex, primary, n)
	}

	plan := ExtractionPlan{Entries: []PlanEntry{{Index: primary, Role: RolePrimary}}}
	if pair, ok := FindStereoPair(src.Properties(), n, opts...); ok {
		plan.Pair = &pair
		plan.Entries = append(plan.Entries,
			PlanEntry{Index: pair.Left, Role: RoleLeft},
			PlanEntry{Index: pair.Right, Role: RoleRight},
		)
	}
	return plan, nil
}
