package bookings

import (
	"math"
	"regexp"
	"strings"
)

// Validation rules for customer details and pricing. The regexes are shared
// with the booking store's own intake form, so they must not drift.
var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
)

// CustomerDetails is the checkout form input.
type CustomerDetails struct {
	Name  string
	Email string
}

// ValidationErrors maps field names to human-readable problems.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidEmail reports whether email matches the shared address pattern.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidName accepts names of at least two characters after trimming,
// limited to letters, spaces, apostrophes and hyphens.
func IsValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2 && nameRegex.MatchString(name)
}

// IsValidPrice bounds a session or booking price to a sane, finite range.
func IsValidPrice(price float64, max float64) bool {
	return price > 0 && price <= max && !math.IsInf(price, 0) && !math.IsNaN(price)
}

// ValidateCustomer checks the checkout form fields. A nil return means the
// details are acceptable.
func ValidateCustomer(details CustomerDetails) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(details.Name) == "" {
		errs["customerName"] = "name is required"
	} else if !IsValidName(details.Name) {
		errs["customerName"] = "name must be at least 2 characters and contain only letters, spaces, apostrophes and hyphens"
	}

	if strings.TrimSpace(details.Email) == "" {
		errs["customerEmail"] = "email is required"
	} else if !IsValidEmail(details.Email) {
		errs["customerEmail"] = "email address is not valid"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidateSeatCount enforces the one-to-max seats per booking rule.
func ValidateSeatCount(count, max int) ValidationErrors {
	if count == 0 {
		return ValidationErrors{"seats": "at least one seat must be selected"}
	}
	if count > max {
		return ValidationErrors{"seats": "seat selection exceeds the per-booking limit"}
	}
	return nil
}
