package filter

import (
	"strings"
	"time"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Apply evaluates the spec against every job and returns the ones that
// satisfy all active dimensions. Order-preserving; the input slice and
// the jobs themselves are never mutated. The caller supplies now so a
// single pipeline run (filter then bucket) shares one clock sample.
func Apply(jobs []*domain.Job, spec Spec, now time.Time) []*domain.Job {
	out := make([]*domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if Matches(j, spec, now) {
			out = append(out, j)
		}
	}
	return out
}

// Matches reports whether a single job passes every active dimension of
// the spec. Within a dimension, multiple selected values combine with OR;
// dimensions combine with AND. An absent dimension always passes.
func Matches(j *domain.Job, spec Spec, now time.Time) bool {
	return matchesTimeWindow(j, spec.TimeWindow, now) &&
		matchesSearchTags(j, spec.SearchTags) &&
		matchesLocations(j, spec.Locations) &&
		matchesDepartments(j, spec.Departments) &&
		matchesEmploymentType(j, spec.EmploymentType) &&
		matchesRoleCategories(j, spec.RoleCategories)
}

func matchesTimeWindow(j *domain.Job, window domain.TimeWindow, now time.Time) bool {
	if !window.Valid() {
		return true
	}
	cutoff := now.Add(-window.Duration())
	return !j.CreatedAt.Before(cutoff)
}

func matchesSearchTags(j *domain.Job, tags []SearchTag) bool {
	if len(tags) == 0 {
		return true
	}

	parts := append([]string{j.Title, j.Department, j.Location, j.Team}, j.Tags...)
	text := strings.ToLower(strings.Join(parts, " "))

	// Any exclude hit vetoes the job regardless of include matches.
	hasInclude := false
	includeHit := false
	for _, t := range tags {
		match := strings.Contains(text, strings.ToLower(t.Text))
		switch t.Mode {
		case TagExclude:
			if match {
				return false
			}
		default:
			hasInclude = true
			if match {
				includeHit = true
			}
		}
	}
	return !hasInclude || includeHit
}

// unitedStatesSentinel is the one location value with meta semantics: it
// matches any job location recognized as domestic rather than by
// substring.
const unitedStatesSentinel = "United States"

func matchesLocations(j *domain.Job, locations []string) bool {
	if len(locations) == 0 {
		return true
	}
	for _, want := range locations {
		if want == unitedStatesSentinel {
			if isDomesticLocation(j.Location) {
				return true
			}
			continue
		}
		if strings.Contains(strings.ToLower(j.Location), strings.ToLower(want)) {
			return true
		}
	}
	return false
}

func matchesDepartments(j *domain.Job, departments []string) bool {
	if len(departments) == 0 {
		return true
	}
	for _, d := range departments {
		if j.Department == d {
			return true
		}
	}
	return false
}

func matchesEmploymentType(j *domain.Job, employmentType string) bool {
	return employmentType == "" || j.EmploymentType == employmentType
}

func matchesRoleCategories(j *domain.Job, categories []domain.SoftwareRoleCategory) bool {
	if len(categories) == 0 {
		return true
	}
	if j.Classification == nil {
		return false
	}
	for _, c := range categories {
		if j.Classification.Category == c {
			return true
		}
	}
	return false
}
