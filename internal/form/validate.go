package form

import (
	"regexp"
	"strings"

	"github.com/AdviTravel/advitravel-backend/types"
)

// Policy holds the validation rules that vary by deployment. The investor
// form runs with RequireWorkEmail on; a general contact form would not.
type Policy struct {
	RequireWorkEmail bool
	BlockedDomains   []string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsSpam reports whether the decoded fields carry a filled honeypot.
func IsSpam(fields map[string]string) bool {
	return strings.TrimSpace(fields[HoneypotField]) != ""
}

// Validate sanitizes every free-text field and checks the required ones.
// On failure it returns a map of field name to human-readable message so
// the form can highlight the offending inputs.
func Validate(fields map[string]string, policy Policy) (*types.Submission, map[string]string) {
	get := func(key string) string {
		return strings.TrimSpace(Sanitize(fields[key]))
	}

	sub := &types.Submission{
		Name:        get("name"),
		Email:       get("email"),
		Message:     get("message"),
		Company:     get("company"),
		Role:        get("role"),
		Interest:    get("interest"),
		CheckSize:   get("checkSize"),
		Geo:         get("geo"),
		Consent:     parseBool(fields["consent"]),
		UTMSource:   get("utm.source"),
		UTMMedium:   get("utm.medium"),
		UTMCampaign: get("utm.campaign"),
		Referrer:    get("referrer"),
		Device:      get("device"),
	}

	fieldErrs := make(map[string]string)
	if sub.Name == "" {
		fieldErrs["name"] = "Full name is required"
	}
	switch {
	case sub.Email == "":
		fieldErrs["email"] = "Email is required"
	case !emailPattern.MatchString(sub.Email):
		fieldErrs["email"] = "Enter a valid email address"
	case policy.RequireWorkEmail && isBlockedDomain(sub.Email, policy.BlockedDomains):
		fieldErrs["email"] = "Please use a work email address"
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return sub, nil
}

func isBlockedDomain(email string, blocked []string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, b := range blocked {
		if domain == strings.ToLower(b) {
			return true
		}
	}
	return false
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "on", "yes":
		return true
	}
	return false
}
