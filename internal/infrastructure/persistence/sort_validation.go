package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InquirySortFields contains allowed sort fields for service enquiries
var InquirySortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"email":        true,
	"service_type": true,
	"status":       true,
}

// DSCApplicationSortFields contains allowed sort fields for DSC applications
var DSCApplicationSortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"applicant_name":   true,
	"pan_number":       true,
	"dsc_class":        true,
	"application_type": true,
	"status":           true,
}

// JobApplicationSortFields contains allowed sort fields for job applications
var JobApplicationSortFields = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"full_name":        true,
	"position_applied": true,
	"experience_years": true,
	"status":           true,
}
