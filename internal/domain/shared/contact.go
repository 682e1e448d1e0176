package shared

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Indian numbers: optional +91/91/0 prefix, then ten digits starting 6-9.
	mobilePattern = regexp.MustCompile(`^(?:\+?91|0)?[6-9][0-9]{9}$`)
	phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone strips spaces, hyphens and parentheses
func NormalizePhone(phone string) string {
	return phoneStripper.Replace(strings.TrimSpace(phone))
}

// IsValidEmail reports whether email looks like a deliverable address
func IsValidEmail(email string) bool {
	return len(email) <= 200 && emailPattern.MatchString(email)
}

// IsValidIndianMobile reports whether phone is an Indian mobile number
// after normalization.
func IsValidIndianMobile(phone string) bool {
	return mobilePattern.MatchString(NormalizePhone(phone))
}

// ValidateRequired returns an INVALID_<FIELD> error when value is blank or too long.
func ValidateRequired(field, label, value string, maxLen int) error {
	code := "INVALID_" + strings.ToUpper(field)
	if strings.TrimSpace(value) == "" {
		return NewDomainError(code, label+" is required")
	}
	if maxLen > 0 && len(value) > maxLen {
		return NewDomainError(code, label+" is too long")
	}
	return nil
}

// ValidateEmail validates a required email address
func ValidateEmail(email string) error {
	if email == "" {
		return NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if !IsValidEmail(email) {
		return NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

// ValidateMobile validates a required Indian mobile number
func ValidateMobile(field, phone string) error {
	code := "INVALID_" + strings.ToUpper(field)
	if phone == "" {
		return NewDomainError(code, "Phone number is required")
	}
	if !IsValidIndianMobile(phone) {
		return NewDomainError(code, "Invalid phone number format")
	}
	return nil
}
