package filter

import (
	"strings"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Mutation helpers. All of them take and return a Spec by value: the
// result never aliases the input's slices, so two views can hold the
// "same" spec without edits to one leaking into the other. Every helper
// normalizes an emptied multi-select back to nil.

// AddSearchTag appends a tag unless one with the same text already
// exists. Text is trimmed; empty-after-trim input is ignored.
func AddSearchTag(s Spec, text string, mode TagMode) Spec {
	out := s.Clone()
	text = strings.TrimSpace(text)
	if text == "" {
		return out
	}
	for _, t := range out.SearchTags {
		if t.Text == text {
			return out
		}
	}
	out.SearchTags = append(out.SearchTags, SearchTag{Text: text, Mode: mode})
	return out
}

// RemoveSearchTag removes the tag with the given text regardless of its
// mode. Removing the last tag leaves SearchTags nil, not empty.
func RemoveSearchTag(s Spec, text string) Spec {
	out := s.Clone()
	out.SearchTags = removeTag(out.SearchTags, text)
	return out
}

// ToggleSearchTagMode flips the polarity of the tag with the given text,
// if present.
func ToggleSearchTagMode(s Spec, text string) Spec {
	out := s.Clone()
	for i, t := range out.SearchTags {
		if t.Text == text {
			if t.Mode == TagInclude {
				out.SearchTags[i].Mode = TagExclude
			} else {
				out.SearchTags[i].Mode = TagInclude
			}
			break
		}
	}
	return out
}

// ClearSearchTags deactivates the search-tag dimension.
func ClearSearchTags(s Spec) Spec {
	out := s.Clone()
	out.SearchTags = nil
	return out
}

// SetSoftwareOnly enables or disables the derived software-only state by
// editing the tag list. Enable unions the fixed tag set in (idempotent,
// never duplicating); disable removes exactly those tags by text,
// preserving any custom tags.
func SetSoftwareOnly(s Spec, enabled bool) Spec {
	out := s.Clone()
	if enabled {
		for _, text := range softwareOnlyTags {
			out = AddSearchTag(out, text, TagInclude)
		}
		return out
	}
	for _, text := range softwareOnlyTags {
		out.SearchTags = removeTag(out.SearchTags, text)
	}
	return out
}

// AddLocation adds a location value to the spec.
func AddLocation(s Spec, value string) Spec {
	out := s.Clone()
	out.Locations = addString(out.Locations, value)
	return out
}

// RemoveLocation removes a location value from the spec.
func RemoveLocation(s Spec, value string) Spec {
	out := s.Clone()
	out.Locations = removeString(out.Locations, value)
	return out
}

// SetLocations replaces the location selection, normalizing empty to nil.
func SetLocations(s Spec, values []string) Spec {
	out := s.Clone()
	out.Locations = cloneNonEmpty(values)
	return out
}

// AddDepartment adds a department value to the spec.
func AddDepartment(s Spec, value string) Spec {
	out := s.Clone()
	out.Departments = addString(out.Departments, value)
	return out
}

// RemoveDepartment removes a department value from the spec.
func RemoveDepartment(s Spec, value string) Spec {
	out := s.Clone()
	out.Departments = removeString(out.Departments, value)
	return out
}

// SetDepartments replaces the department selection, normalizing empty to
// nil.
func SetDepartments(s Spec, values []string) Spec {
	out := s.Clone()
	out.Departments = cloneNonEmpty(values)
	return out
}

// SetEmploymentType sets or clears (with "") the employment-type filter.
func SetEmploymentType(s Spec, value string) Spec {
	out := s.Clone()
	out.EmploymentType = strings.TrimSpace(value)
	return out
}

// AddRoleCategory adds a role category to the selection.
func AddRoleCategory(s Spec, c domain.SoftwareRoleCategory) Spec {
	out := s.Clone()
	for _, have := range out.RoleCategories {
		if have == c {
			return out
		}
	}
	out.RoleCategories = append(out.RoleCategories, c)
	return out
}

// RemoveRoleCategory removes a role category from the selection,
// collapsing an emptied selection to nil.
func RemoveRoleCategory(s Spec, c domain.SoftwareRoleCategory) Spec {
	out := s.Clone()
	var kept []domain.SoftwareRoleCategory
	for _, have := range out.RoleCategories {
		if have != c {
			kept = append(kept, have)
		}
	}
	out.RoleCategories = kept
	return out
}

// SetTimeWindow changes the lookback window of the spec.
func SetTimeWindow(s Spec, w domain.TimeWindow) Spec {
	out := s.Clone()
	out.TimeWindow = w
	return out
}

func removeTag(tags []SearchTag, text string) []SearchTag {
	var kept []SearchTag
	for _, t := range tags {
		if t.Text != text {
			kept = append(kept, t)
		}
	}
	return kept
}

func addString(list []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return list
	}
	for _, have := range list {
		if have == value {
			return list
		}
	}
	return append(list, value)
}

func removeString(list []string, value string) []string {
	var kept []string
	for _, have := range list {
		if have != value {
			kept = append(kept, have)
		}
	}
	return kept
}

func cloneNonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
