package domain

// SoftwareRoleCategory is the closed role taxonomy a job is classified into.
type SoftwareRoleCategory string

const (
	CategoryFrontend  SoftwareRoleCategory = "frontend"
	CategoryBackend   SoftwareRoleCategory = "backend"
	CategoryFullstack SoftwareRoleCategory = "fullstack"
	CategoryMobile    SoftwareRoleCategory = "mobile"
	CategoryData      SoftwareRoleCategory = "data"
	CategoryML        SoftwareRoleCategory = "ml"
	CategoryDevOps    SoftwareRoleCategory = "devops"
	CategoryPlatform  SoftwareRoleCategory = "platform"
	CategoryQA        SoftwareRoleCategory = "qa"
	CategorySecurity  SoftwareRoleCategory = "security"
	CategoryGraphics  SoftwareRoleCategory = "graphics"
	CategoryEmbedded  SoftwareRoleCategory = "embedded"
	CategoryOtherTech SoftwareRoleCategory = "otherTech"
	CategoryNonTech   SoftwareRoleCategory = "nonTech"
)

// SpecificCategories lists the twelve keyword-bearing categories in their
// fixed enumeration order. Classification ties resolve to the earliest
// entry, so the order here is part of the contract.
var SpecificCategories = []SoftwareRoleCategory{
	CategoryFrontend,
	CategoryBackend,
	CategoryFullstack,
	CategoryMobile,
	CategoryData,
	CategoryML,
	CategoryDevOps,
	CategoryPlatform,
	CategoryQA,
	CategorySecurity,
	CategoryGraphics,
	CategoryEmbedded,
}

// AllCategories lists every taxonomy value, specific categories first.
var AllCategories = append(append([]SoftwareRoleCategory{}, SpecificCategories...),
	CategoryOtherTech, CategoryNonTech)

// ValidCategory reports whether c is one of the closed taxonomy values.
func ValidCategory(c SoftwareRoleCategory) bool {
	for _, v := range AllCategories {
		if v == c {
			return true
		}
	}
	return false
}
