package domain

import "time"

// Job represents a normalized job posting from any ATS source.
// Instances are immutable once produced by the normalization boundary;
// the aggregation core never mutates a Job.
type Job struct {
	ID             string              `json:"id"`
	Source         JobSource           `json:"source"`
	Company        string              `json:"company"`
	Title          string              `json:"title"`
	Department     string              `json:"department,omitempty"`
	Team           string              `json:"team,omitempty"`
	Location       string              `json:"location,omitempty"`
	EmploymentType string              `json:"employment_type,omitempty"`
	IsRemote       bool                `json:"is_remote"`
	Tags           []string            `json:"tags,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	URL            string              `json:"url"`
	Raw            map[string]any      `json:"raw,omitempty"`
	Classification *RoleClassification `json:"classification,omitempty"`
}

// Key returns the identity of a job: the posting ID scoped within
// source and company.
func (j *Job) Key() string {
	return string(j.Source) + ":" + j.Company + ":" + j.ID
}

// JobSource identifies the applicant-tracking system a posting came from.
type JobSource string

const (
	SourceGreenhouse JobSource = "greenhouse"
	SourceLever      JobSource = "lever"
	SourceAshby      JobSource = "ashby"
	SourceWorkday    JobSource = "workday"
)

// RoleClassification is derived once per job at normalization time and
// stored on the Job. Invariant: Category == CategoryNonTech exactly when
// IsSoftwareAdjacent is false.
type RoleClassification struct {
	IsSoftwareAdjacent bool                 `json:"is_software_adjacent"`
	Category           SoftwareRoleCategory `json:"category"`
	Confidence         float64              `json:"confidence"`
	MatchedKeywords    []string             `json:"matched_keywords,omitempty"`
}
