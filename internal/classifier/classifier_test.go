package classifier_test

import (
	"reflect"
	"testing"

	"github.com/project-hirewire/go-aggregator/internal/classifier"
	"github.com/project-hirewire/go-aggregator/internal/domain"
)

func TestClassify_Deterministic(t *testing.T) {
	in := classifier.Input{
		Title:      "Senior Backend Engineer",
		Department: "Engineering",
		Tags:       []string{"golang", "kubernetes"},
	}
	first := classifier.Classify(in)
	second := classifier.Classify(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify is not deterministic: %+v vs %+v", first, second)
	}
}

func TestClassify_ExclusionPrecedence(t *testing.T) {
	// Exclusion wins even when tech keywords are present in the text.
	cases := []classifier.Input{
		{Title: "Technical Recruiter"},
		{Title: "Sales Engineer", Department: "Sales"},
		{Title: "Marketing Manager", Tags: []string{"react", "frontend"}},
		{Title: "Customer Support Specialist, Developer Tools"},
	}
	for _, in := range cases {
		got := classifier.Classify(in)
		if got.Category != domain.CategoryNonTech {
			t.Errorf("Classify(%q) category = %s, want nonTech", in.Title, got.Category)
		}
		if got.IsSoftwareAdjacent {
			t.Errorf("Classify(%q) should not be software adjacent", in.Title)
		}
		if got.Confidence != 0.9 {
			t.Errorf("Classify(%q) confidence = %v, want exactly 0.9", in.Title, got.Confidence)
		}
		if len(got.MatchedKeywords) != 0 {
			t.Errorf("Classify(%q) matched keywords = %v, want none", in.Title, got.MatchedKeywords)
		}
	}
}

func TestClassify_Categories(t *testing.T) {
	cases := []struct {
		title string
		want  domain.SoftwareRoleCategory
	}{
		{"Senior Frontend Engineer", domain.CategoryFrontend},
		{"Backend Engineer, Payments", domain.CategoryBackend},
		{"Full Stack Developer", domain.CategoryFullstack},
		{"iOS Engineer", domain.CategoryMobile},
		{"Data Engineer, Warehouse", domain.CategoryData},
		{"Machine Learning Engineer", domain.CategoryML},
		{"Site Reliability Engineer", domain.CategoryDevOps},
		{"Platform Engineer, Core Infrastructure", domain.CategoryPlatform},
		{"QA Engineer", domain.CategoryQA},
		{"Application Security Engineer", domain.CategorySecurity},
		{"Rendering Engineer", domain.CategoryGraphics},
		{"Firmware Engineer", domain.CategoryEmbedded},
		{"Software Engineer", domain.CategoryOtherTech},
	}
	for _, c := range cases {
		t.Run(c.title, func(t *testing.T) {
			got := classifier.Classify(classifier.Input{Title: c.title})
			if got.Category != c.want {
				t.Errorf("Classify(%q) category = %s, want %s (matched %v)",
					c.title, got.Category, c.want, got.MatchedKeywords)
			}
			if !got.IsSoftwareAdjacent {
				t.Errorf("Classify(%q) should be software adjacent", c.title)
			}
		})
	}
}

func TestClassify_TieBreakEnumerationOrder(t *testing.T) {
	// One fullstack keyword and one devops keyword: fullstack is earlier
	// in the enumeration order and wins the tie.
	got := classifier.Classify(classifier.Input{
		Title: "Full Stack Engineer with DevOps experience",
	})
	if got.Category != domain.CategoryFullstack {
		t.Errorf("tie should resolve to fullstack, got %s (matched %v)",
			got.Category, got.MatchedKeywords)
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	inputs := []classifier.Input{
		{},
		{Title: "Senior Frontend Engineer", Department: "Engineering",
			Tags: []string{"react", "typescript", "javascript", "vue", "angular"}},
		{Title: "Software Developer"},
		{Title: "Machine Learning Engineer", Department: "R&D",
			Team: "Computer Vision", Tags: []string{"deep learning", "nlp", "llm"}},
		{Department: "Facilities"},
	}
	for _, in := range inputs {
		got := classifier.Classify(in)
		if got.Confidence < 0 || got.Confidence > 0.95 {
			t.Errorf("Classify(%+v) confidence %v outside [0, 0.95]", in, got.Confidence)
		}
	}
}

func TestClassify_TitleMatchBonus(t *testing.T) {
	// Same single keyword, once in the title and once only in a tag: the
	// title occurrence earns +0.15.
	inTitle := classifier.Classify(classifier.Input{Title: "Frontend Developer Tooling"})
	inTag := classifier.Classify(classifier.Input{Title: "Tooling", Tags: []string{"frontend"}})
	if inTitle.Category != domain.CategoryFrontend || inTag.Category != domain.CategoryFrontend {
		t.Fatalf("both inputs should classify frontend, got %s and %s",
			inTitle.Category, inTag.Category)
	}
	if diff := inTitle.Confidence - inTag.Confidence; diff < 0.149 || diff > 0.151 {
		t.Errorf("title bonus = %v, want 0.15 (title %v, tag %v)",
			diff, inTitle.Confidence, inTag.Confidence)
	}
}

func TestClassify_TechDepartmentPromotion(t *testing.T) {
	got := classifier.Classify(classifier.Input{Department: "Engineering"})
	if got.Category != domain.CategoryOtherTech {
		t.Fatalf("empty title with tech department should promote to otherTech, got %s", got.Category)
	}
	if !got.IsSoftwareAdjacent {
		t.Error("promoted job should be software adjacent")
	}
	if got.Confidence != 0.5 {
		t.Errorf("promotion confidence = %v, want 0.5", got.Confidence)
	}
	if len(got.MatchedKeywords) != 0 {
		t.Errorf("promotion should carry no matched keywords, got %v", got.MatchedKeywords)
	}
}

func TestClassify_OtherTechConfidenceCap(t *testing.T) {
	// Plenty of otherTech keyword hits plus a title match would push past
	// 0.75 without the cap.
	got := classifier.Classify(classifier.Input{
		Title: "Software Engineer",
		Tags:  []string{"software developer", "programmer", "swe"},
	})
	if got.Category != domain.CategoryOtherTech {
		t.Fatalf("expected otherTech, got %s", got.Category)
	}
	if got.Confidence > 0.75 {
		t.Errorf("otherTech confidence = %v, want <= 0.75", got.Confidence)
	}
}

func TestClassify_NonTechInvariant(t *testing.T) {
	inputs := []classifier.Input{
		{},
		{Title: "Chef de Cuisine"},
		{Title: "Technical Recruiter"},
		{Title: "Senior Backend Engineer"},
		{Department: "Engineering"},
	}
	for _, in := range inputs {
		got := classifier.Classify(in)
		if (got.Category == domain.CategoryNonTech) == got.IsSoftwareAdjacent {
			t.Errorf("Classify(%+v) violates nonTech/adjacent invariant: %+v", in, got)
		}
	}
}

func TestAttach(t *testing.T) {
	job := &domain.Job{
		ID:      "1",
		Source:  domain.SourceGreenhouse,
		Company: "acme",
		Title:   "Backend Engineer",
	}
	classifier.Attach(job)
	if job.Classification == nil {
		t.Fatal("Attach should set Classification")
	}
	if job.Classification.Category != domain.CategoryBackend {
		t.Errorf("category = %s, want backend", job.Classification.Category)
	}
}
