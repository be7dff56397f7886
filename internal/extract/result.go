package extract

import (
	"github.com/vearutop/spatial"
)

// Stage is the position of an item in the pipeline.
type Stage int

const (
	StagePending Stage = iota
	StageOpened
	StagePlanned
	StageExporting
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StagePending:
		return "pending"
	case StageOpened:
		return "opened"
	case StagePlanned:
		return "planned"
	case StageExporting:
		return "exporting"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RoleResult is the outcome of one planned export.
type RoleResult struct {
	Role  spatial.Role
	Index int
	Path  string
	Err   error
}

// ItemResult is the outcome of one item.
type ItemResult struct {
	Name  string
	Stage Stage
	// Err is the error that moved the item to StageFailed.
	Err   error
	Plan  *spatial.ExtractionPlan
	Roles []RoleResult
}

// Failed reports whether the item never completed or every role failed.
func (r ItemResult) Failed() bool {
	if r.Stage != StageDone {
		return true
	}
	for _, role := range r.Roles {
		if role.Err == nil {
			return false
		}
	}
	return len(r.Roles) > 0
}

// Written returns the paths of the outputs that were written.
func (r ItemResult) Written() []string {
	var out []string
	for _, role := range r.Roles {
		if role.Err == nil {
			out = append(out, role.Path)
		}
	}
	return out
}

// Report lists item results in input order.
type Report struct {
	Items []ItemResult
}

// Failed counts failed items.
func (r Report) Failed() int {
	n := 0
	for _, item := range r.Items {
		if item.Failed() {
			n++
		}
	}
	return n
}

// RoleFailures counts failed roles across all items.
func (r Report) RoleFailures() int {
	n := 0
	for _, item := range r.Items {
		for _, role := range item.Roles {
			if role.Err != nil {
				n++
			}
		}
	}
	return n
}
