package filter_test

import (
	"testing"
	"time"

	"github.com/project-hirewire/go-aggregator/internal/domain"
	"github.com/project-hirewire/go-aggregator/internal/filter"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func testJobs() []*domain.Job {
	return []*domain.Job{
		{
			ID: "fe-1", Source: domain.SourceGreenhouse, Company: "acme",
			Title: "Senior Frontend Engineer", Department: "Engineering",
			Location: "San Francisco, CA", EmploymentType: "full-time",
			CreatedAt: testNow.Add(-5 * 24 * time.Hour),
			Classification: &domain.RoleClassification{
				IsSoftwareAdjacent: true, Category: domain.CategoryFrontend, Confidence: 0.75,
			},
		},
		{
			ID: "pm-1", Source: domain.SourceLever, Company: "acme",
			Title: "Product Manager", Department: "Product",
			Location: "New York, NY", EmploymentType: "full-time",
			CreatedAt: testNow.Add(-2 * 24 * time.Hour),
			Classification: &domain.RoleClassification{
				IsSoftwareAdjacent: false, Category: domain.CategoryNonTech, Confidence: 0.5,
			},
		},
		{
			ID: "de-1", Source: domain.SourceAshby, Company: "globex",
			Title: "Data Engineer", Department: "Engineering",
			Location: "Berlin, Germany", EmploymentType: "contract",
			CreatedAt: testNow.Add(-40 * 24 * time.Hour),
			Classification: &domain.RoleClassification{
				IsSoftwareAdjacent: true, Category: domain.CategoryData, Confidence: 0.8,
			},
		},
		{
			ID: "be-1", Source: domain.SourceWorkday, Company: "globex",
			Title: "Backend Engineer", Department: "Engineering",
			Location: "Remote", EmploymentType: "full-time",
			CreatedAt: testNow.Add(-12 * time.Hour),
			Classification: &domain.RoleClassification{
				IsSoftwareAdjacent: true, Category: domain.CategoryBackend, Confidence: 0.8,
			},
		},
	}
}

func ids(jobs []*domain.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return out
}

func assertIDs(t *testing.T, jobs []*domain.Job, want ...string) {
	t.Helper()
	got := ids(jobs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestApply_TimeWindowOnly(t *testing.T) {
	spec := filter.Spec{TimeWindow: domain.Window30d}
	got := filter.Apply(testJobs(), spec, testNow)
	// de-1 is 40 days old and falls outside the window; order preserved.
	assertIDs(t, got, "fe-1", "pm-1", "be-1")
}

func TestApply_EmptySpecPassesEverything(t *testing.T) {
	got := filter.Apply(testJobs(), filter.Spec{}, testNow)
	assertIDs(t, got, "fe-1", "pm-1", "de-1", "be-1")
}

func TestApply_SubsetAndMonotonicNarrowing(t *testing.T) {
	jobs := testJobs()
	spec := filter.Spec{TimeWindow: domain.Window30d}
	base := filter.Apply(jobs, spec, testNow)
	if len(base) > len(jobs) {
		t.Fatal("Apply result must be a subset of its input")
	}

	// Each additional active dimension can only shrink the result.
	narrower := filter.AddSearchTag(spec, "engineer", filter.TagInclude)
	step1 := filter.Apply(jobs, narrower, testNow)
	if len(step1) > len(base) {
		t.Errorf("adding a dimension grew the result: %d > %d", len(step1), len(base))
	}
	assertIDs(t, step1, "fe-1", "be-1")

	narrowest := filter.SetDepartments(narrower, []string{"Engineering"})
	step2 := filter.Apply(jobs, narrowest, testNow)
	if len(step2) > len(step1) {
		t.Errorf("adding a dimension grew the result: %d > %d", len(step2), len(step1))
	}
}

func TestApply_SearchTagExcludeVetoes(t *testing.T) {
	spec := filter.Spec{}
	spec = filter.AddSearchTag(spec, "engineer", filter.TagInclude)
	spec = filter.AddSearchTag(spec, "frontend", filter.TagExclude)

	got := filter.Apply(testJobs(), spec, testNow)
	// fe-1 matches the include but the exclude vetoes it regardless.
	assertIDs(t, got, "de-1", "be-1")
}

func TestApply_SearchTagExcludeOnly(t *testing.T) {
	spec := filter.AddSearchTag(filter.Spec{}, "manager", filter.TagExclude)
	got := filter.Apply(testJobs(), spec, testNow)
	assertIDs(t, got, "fe-1", "de-1", "be-1")
}

func TestApply_LocationOR(t *testing.T) {
	spec := filter.SetLocations(filter.Spec{}, []string{"San Francisco", "Berlin"})
	got := filter.Apply(testJobs(), spec, testNow)
	assertIDs(t, got, "fe-1", "de-1")
}

func TestApply_UnitedStatesSentinel(t *testing.T) {
	spec := filter.SetLocations(filter.Spec{}, []string{"United States"})
	got := filter.Apply(testJobs(), spec, testNow)
	// CA and NY state tokens plus the literal Remote count as domestic;
	// Berlin does not.
	assertIDs(t, got, "fe-1", "pm-1", "be-1")
}

func TestApply_DepartmentExactMatch(t *testing.T) {
	spec := filter.SetDepartments(filter.Spec{}, []string{"Product"})
	got := filter.Apply(testJobs(), spec, testNow)
	assertIDs(t, got, "pm-1")

	// Exact match only: a prefix does not count.
	spec = filter.SetDepartments(filter.Spec{}, []string{"Prod"})
	got = filter.Apply(testJobs(), spec, testNow)
	assertIDs(t, got)
}

func TestApply_EmploymentType(t *testing.T) {
	spec := filter.SetEmploymentType(filter.Spec{}, "contract")
	got := filter.Apply(testJobs(), spec, testNow)
	assertIDs(t, got, "de-1")
}

func TestApply_RoleCategories(t *testing.T) {
	spec := filter.AddRoleCategory(filter.Spec{}, domain.CategoryFrontend)
	spec = filter.AddRoleCategory(spec, domain.CategoryBackend)
	got := filter.Apply(testJobs(), spec, testNow)
	assertIDs(t, got, "fe-1", "be-1")
}

func TestApply_RoleCategoryUnclassifiedJobFails(t *testing.T) {
	jobs := []*domain.Job{{ID: "x-1", Title: "Mystery Role"}}
	spec := filter.AddRoleCategory(filter.Spec{}, domain.CategoryBackend)
	got := filter.Apply(jobs, spec, testNow)
	assertIDs(t, got)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	jobs := testJobs()
	before := ids(jobs)
	spec := filter.AddSearchTag(filter.Spec{TimeWindow: domain.Window24h}, "backend", filter.TagInclude)
	filter.Apply(jobs, spec, testNow)
	after := ids(jobs)
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("Apply mutated its input slice")
		}
	}
}

func TestDomesticPolicy(t *testing.T) {
	cases := []struct {
		location string
		want     bool
	}{
		{"San Francisco, CA", true},
		{"New York, NY, USA", true},
		{"Seattle, WA, United States", true},
		{"Remote", true},
		{"Berlin, Germany", false},
		{"London, UK", false},
		{"", false},
		{"Toronto, ON", false},
	}
	spec := filter.SetLocations(filter.Spec{}, []string{"United States"})
	for _, c := range cases {
		job := &domain.Job{ID: "j", Location: c.location}
		got := len(filter.Apply([]*domain.Job{job}, spec, testNow)) == 1
		if got != c.want {
			t.Errorf("United States filter on %q = %v, want %v", c.location, got, c.want)
		}
	}
}
