package classifier

import "github.com/project-hirewire/go-aggregator/internal/domain"

// categoryKeywords maps each keyword-bearing category to the lower-cased
// substrings that vote for it. Loaded once; never mutated at runtime.
// CategoryNonTech has no keywords by definition.
var categoryKeywords = map[domain.SoftwareRoleCategory][]string{
	domain.CategoryFrontend: {
		"frontend", "front end", "front-end", "react", "angular", "vue",
		"ui engineer", "web developer", "javascript", "typescript",
	},
	domain.CategoryBackend: {
		"backend", "back end", "back-end", "server-side", "api engineer",
		"golang", "java engineer", "node.js", "microservices",
		"distributed systems",
	},
	domain.CategoryFullstack: {
		"full stack", "fullstack", "full-stack",
	},
	domain.CategoryMobile: {
		"mobile", "ios", "android", "react native", "flutter",
		"swift", "kotlin",
	},
	domain.CategoryData: {
		"data engineer", "data analyst", "analytics engineer", "etl",
		"data warehouse", "data platform", "data pipeline",
		"business intelligence",
	},
	domain.CategoryML: {
		"machine learning", "ml engineer", "deep learning", "ai engineer",
		"nlp", "computer vision", "data scientist", "llm",
	},
	domain.CategoryDevOps: {
		"devops", "site reliability", "sre", "ci/cd", "kubernetes",
		"cloud engineer", "terraform", "release engineer",
	},
	domain.CategoryPlatform: {
		"platform engineer", "infrastructure engineer",
		"developer experience", "build systems", "internal tools",
		"developer productivity", "core infrastructure",
	},
	domain.CategoryQA: {
		"qa engineer", "quality assurance", "test engineer", "sdet",
		"quality engineer", "automation engineer", "test automation",
	},
	domain.CategorySecurity: {
		"security engineer", "application security", "appsec", "infosec",
		"penetration test", "vulnerability", "cryptograph",
		"security researcher",
	},
	domain.CategoryGraphics: {
		"graphics", "rendering", "shader", "game engine", "unity",
		"unreal", "3d engineer",
	},
	domain.CategoryEmbedded: {
		"embedded", "firmware", "rtos", "microcontroller", "fpga",
		"device driver", "bare metal",
	},
	// Bare "engineer" is deliberately absent: it is a substring of
	// department names like "Engineering", which must reach otherTech
	// through the department promotion path, not through keywords.
	domain.CategoryOtherTech: {
		"software engineer", "software developer", "developer",
		"programmer", "swe", "technical lead", "solutions architect",
	},
}

// exclusionPatterns short-circuit classification: any hit means the posting
// is a non-technical role no matter which tech keywords also appear.
var exclusionPatterns = []string{
	"recruiter",
	"recruiting",
	"talent acquisition",
	"human resources",
	"people operations",
	"people partner",
	"sales",
	"account executive",
	"account manager",
	"business development",
	"marketing",
	"brand manager",
	"finance",
	"accountant",
	"accounting",
	"payroll",
	"legal",
	"counsel",
	"paralegal",
	"compliance officer",
	"facilities",
	"workplace experience",
	"administrative",
	"executive assistant",
	"office manager",
	"receptionist",
	"customer support",
	"customer success",
	"customer service",
	"community manager",
	"content writer",
	"copywriter",
	"public relations",
	"event coordinator",
}

// techDepartmentPatterns recognize a department string as technical. A job
// with zero keyword matches but a technical department is promoted from
// nonTech to otherTech.
var techDepartmentPatterns = []string{
	"engineering",
	"technology",
	"r&d",
	"research and development",
	"product",
	"information technology",
	"software",
	"platform",
	"infrastructure",
	"data",
}
