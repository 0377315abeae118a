// Package validation holds request payload rules. Validation failures are
// detected at the boundary and never reach the store or the external
// process; messages are the exact phrases the mobile client displays.
package validation

import "strings"

// MsgMissingFields is returned when any mandatory registration field is absent.
const MsgMissingFields = "All fields (email, password, name, age, bb) are required"

// MsgInvalidDiabetes is returned when the diabetes flag is present but not yes/no.
const MsgInvalidDiabetes = `Diabetes must be either "yes" or "no"`

// RegisterRequest mirrors the fields needed for registration validation.
// Age and Weight are pointers so an absent number is distinguishable from
// zero.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Age      *int
	Weight   *int
	Diabetes string
}

// ValidateRegisterRequest checks a registration payload. It returns the
// client-facing failure message, or "" when the payload is valid. The
// missing-field check runs before the diabetes check.
func ValidateRegisterRequest(req RegisterRequest) string {
	if req.Email == "" || req.Password == "" || req.Name == "" || req.Age == nil || req.Weight == nil {
		return MsgMissingFields
	}

	if req.Diabetes != "" {
		switch strings.ToLower(req.Diabetes) {
		case "yes", "no":
		default:
			return MsgInvalidDiabetes
		}
	}

	return ""
}

// NormalizeDiabetes maps the optional raw flag to its stored form. Absent or
// anything but a case-insensitive "yes" becomes "No".
func NormalizeDiabetes(raw string) string {
	if strings.EqualFold(raw, "yes") {
		return "Yes"
	}
	return "No"
}
