package cleaner

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/project-hirewire/go-aggregator/internal/domain"
)

// Cleaner sanitizes HTML content carried in ATS payloads using Bluemonday.
// The permissive policy keeps basic formatting for description-like raw
// values; the strict policy reduces display fields to plain text.
type Cleaner struct {
	policy *bluemonday.Policy
	strict *bluemonday.Policy
}

// NewCleaner creates a new HTML cleaner with a safe policy
func NewCleaner() *Cleaner {
	// Allow basic formatting but strip dangerous elements
	policy := bluemonday.NewPolicy()

	policy.AllowElements("p", "br", "div", "span")
	policy.AllowElements("strong", "b", "em", "i", "u")
	policy.AllowElements("ul", "ol", "li")
	policy.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")

	// Allow links but strip javascript:
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowRelativeURLs(true)
	policy.RequireParseableURLs(true)
	policy.AllowURLSchemes("http", "https", "mailto")

	return &Cleaner{
		policy: policy,
		strict: bluemonday.StrictPolicy(),
	}
}

// Clean sanitizes HTML content
func (c *Cleaner) Clean(html string) string {
	return c.policy.Sanitize(html)
}

// CleanToText removes all HTML and returns plain text
func (c *Cleaner) CleanToText(html string) string {
	text := c.strict.Sanitize(html)

	text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	return strings.TrimSpace(text)
}

// CleanJob returns a copy of the job with its text fields and raw payload
// sanitized. The input job is not mutated; sanitization happens before
// the job is sealed and indexed.
func (c *Cleaner) CleanJob(j *domain.Job) *domain.Job {
	out := *j
	out.Title = c.CleanToText(j.Title)
	out.Department = c.CleanToText(j.Department)
	out.Team = c.CleanToText(j.Team)
	out.Location = c.CleanToText(j.Location)
	if j.Raw != nil {
		out.Raw = c.CleanMap(j.Raw)
	}
	return &out
}

// CleanMap sanitizes all string values in a map
func (c *Cleaner) CleanMap(data map[string]any) map[string]any {
	result := make(map[string]any)
	for k, v := range data {
		switch val := v.(type) {
		case string:
			result[k] = c.Clean(val)
		case map[string]any:
			result[k] = c.CleanMap(val)
		default:
			result[k] = v
		}
	}
	return result
}
