// Package filter evaluates declarative filter specs against normalized
// jobs. A Spec is a per-view value object; the mutation helpers in this
// package are the only code that edits one, and they own the invariant
// that an emptied multi-select collapses to nil ("dimension inactive")
// rather than an empty slice ("active with zero allowed values").
package filter

import (
	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// TagMode is the polarity of a search tag.
type TagMode string

const (
	TagInclude TagMode = "include"
	TagExclude TagMode = "exclude"
)

// SearchTag is a free-text token with include/exclude polarity.
// Uniqueness within a spec is keyed by Text only; Mode is toggled in
// place, never duplicated.
type SearchTag struct {
	Text string  `json:"text"`
	Mode TagMode `json:"mode"`
}

// Spec describes one view's filter state across the independent
// dimensions. A nil slice or empty string means the dimension is
// inactive and passes every job.
type Spec struct {
	TimeWindow     domain.TimeWindow             `json:"time_window,omitempty"`
	SearchTags     []SearchTag                   `json:"search_tags,omitempty"`
	Locations      []string                      `json:"locations,omitempty"`
	Departments    []string                      `json:"departments,omitempty"`
	EmploymentType string                        `json:"employment_type,omitempty"`
	RoleCategories []domain.SoftwareRoleCategory `json:"role_categories,omitempty"`
}

// softwareOnlyTags is the fixed tag set whose full presence (in include
// mode) defines the derived softwareOnly state.
var softwareOnlyTags = []string{
	"software engineer",
	"developer",
	"engineer",
	"data engineer",
	"backend",
	"frontend",
}

// IsSoftwareOnlyEnabled reports whether every fixed software-only tag is
// present in include mode. The state is derived from the tag list; no
// separate flag is stored.
func IsSoftwareOnlyEnabled(tags []SearchTag) bool {
	for _, want := range softwareOnlyTags {
		found := false
		for _, t := range tags {
			if t.Text == want && t.Mode == TagInclude {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// SoftwareOnly reports the derived softwareOnly state of the spec.
func (s Spec) SoftwareOnly() bool {
	return IsSoftwareOnlyEnabled(s.SearchTags)
}

// Clone returns a value copy of the spec with no shared slice backing.
// Specs are never shared by reference between views; every read or sync
// goes through a clone.
func (s Spec) Clone() Spec {
	out := s
	if s.SearchTags != nil {
		out.SearchTags = append([]SearchTag(nil), s.SearchTags...)
	}
	if s.Locations != nil {
		out.Locations = append([]string(nil), s.Locations...)
	}
	if s.Departments != nil {
		out.Departments = append([]string(nil), s.Departments...)
	}
	if s.RoleCategories != nil {
		out.RoleCategories = append([]domain.SoftwareRoleCategory(nil), s.RoleCategories...)
	}
	return out
}
