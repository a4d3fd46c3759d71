package validators

import (
	"net/mail"
	"regexp"
	"strings"
)

var nameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9' ,.\-]{1,40}$`)

const (
	msgFirstName = "First Name must start with a capital, may only contain letters, numbers and - ' , . or space and must be between 2 and 41 in length"
	msgLastName  = "Last Name must start with a capital, may only contain letters, numbers and - ' , . or space and must be between 2 and 41 in length"
	msgEmail     = "Email address must be valid"
	msgPassword  = "Password must contain at least one of each: upper case letter, lower case letter, number, special character, and must be between 8 and 30 in length"
)

// ValidateUser checks the account fields against the declarative rules.
// All violations are collected; callers surface the first message.
// An empty password is only a violation when requirePassword is set, so the
// same rule set serves both create and update.
func ValidateUser(firstName, lastName, email, password string, requirePassword bool) []string {
	var errs []string

	if !nameRe.MatchString(firstName) {
		errs = append(errs, msgFirstName)
	}
	if !nameRe.MatchString(lastName) {
		errs = append(errs, msgLastName)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, msgEmail)
	}
	if password != "" || requirePassword {
		if !validPassword(password) {
			errs = append(errs, msgPassword)
		}
	}

	return errs
}

func validPassword(p string) bool {
	if len(p) < 8 || len(p) > 30 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune("#?!@$%^&*-_", r):
			special = true
		}
	}
	return upper && lower && digit && special
}
