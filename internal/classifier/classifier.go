// Package classifier assigns a software-role category to a job posting by
// deterministic keyword matching over its text fields. It is a pure
// function of its input: no I/O, no runtime-mutable state, never an error.
package classifier

import (
	"strings"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Confidence scoring constants.
const (
	baseConfidence      = 0.5
	perKeywordBonus     = 0.1
	keywordBonusCeiling = 0.85
	titleMatchBonus     = 0.15
	techDeptBonus       = 0.05
	maxConfidence       = 0.95
	otherTechCeiling    = 0.75
	exclusionConfidence = 0.9
)

// Input holds the text fields classification reads. Missing optional
// fields are simply empty.
type Input struct {
	Title      string
	Department string
	Team       string
	Tags       []string
}

// InputFromJob extracts the classifiable fields of a job.
func InputFromJob(j *domain.Job) Input {
	return Input{
		Title:      j.Title,
		Department: j.Department,
		Team:       j.Team,
		Tags:       j.Tags,
	}
}

// Classify maps a job's text fields to a role category with a confidence
// score and the keywords that matched. Deterministic for identical input.
func Classify(in Input) domain.RoleClassification {
	parts := append([]string{in.Title, in.Department, in.Team}, in.Tags...)
	text := strings.ToLower(strings.Join(parts, " "))
	title := strings.ToLower(in.Title)

	// Exclusion check short-circuits everything else: a recruiter posting
	// stays nonTech even when it name-drops tech keywords.
	for _, pattern := range exclusionPatterns {
		if strings.Contains(text, pattern) {
			return domain.RoleClassification{
				IsSoftwareAdjacent: false,
				Category:           domain.CategoryNonTech,
				Confidence:         exclusionConfidence,
			}
		}
	}

	// Keyword scan across the twelve specific categories; highest match
	// count wins, ties resolve to the earlier category in enumeration
	// order.
	category := domain.CategoryNonTech
	var matched []string
	for _, c := range domain.SpecificCategories {
		hits := matchKeywords(text, categoryKeywords[c])
		if len(hits) > len(matched) {
			category = c
			matched = hits
		}
	}

	// No specific category hit: fall back to the otherTech catch-all.
	if category == domain.CategoryNonTech {
		if hits := matchKeywords(text, categoryKeywords[domain.CategoryOtherTech]); len(hits) > 0 {
			category = domain.CategoryOtherTech
			matched = hits
		}
	}

	// Tech-department promotion: a job with no keyword signal at all but
	// a recognizably technical department is still a tech role.
	techDept := isTechnicalDepartment(in.Department)
	promoted := false
	if category == domain.CategoryNonTech && techDept {
		category = domain.CategoryOtherTech
		promoted = true
	}

	confidence := baseConfidence
	if len(matched) > 0 {
		confidence = baseConfidence + float64(len(matched))*perKeywordBonus
		if confidence > keywordBonusCeiling {
			confidence = keywordBonusCeiling
		}
		if anyInTitle(title, matched) {
			confidence += titleMatchBonus
		}
		if techDept {
			confidence += techDeptBonus
		}
	}
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	if confidence < 0 {
		confidence = 0
	}
	if category == domain.CategoryOtherTech && confidence > otherTechCeiling {
		confidence = otherTechCeiling
	}

	// A promotion carries no keyword evidence, so MatchedKeywords stays
	// empty on that path.
	if promoted {
		matched = nil
	}

	return domain.RoleClassification{
		IsSoftwareAdjacent: category != domain.CategoryNonTech,
		Category:           category,
		Confidence:         confidence,
		MatchedKeywords:    matched,
	}
}

// Attach classifies a job in place. Meant to run exactly once, at the
// normalization boundary, before the job is treated as immutable.
func Attach(j *domain.Job) {
	c := Classify(InputFromJob(j))
	j.Classification = &c
}

func matchKeywords(text string, keywords []string) []string {
	var hits []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

func anyInTitle(title string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(title, kw) {
			return true
		}
	}
	return false
}

func isTechnicalDepartment(department string) bool {
	if department == "" {
		return false
	}
	dept := strings.ToLower(department)
	for _, pattern := range techDepartmentPatterns {
		if strings.Contains(dept, pattern) {
			return true
		}
	}
	return false
}
