// Package contact pulls the first email address and phone number out of
// resume text.
package contact

import (
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+`)
	phoneRe = regexp.MustCompile(`(\+?\d{1,2}[\s-]?)?(\(?\d{3}\)?[\s-]?)?\d{3}[\s-]?\d{4}`)
)

// Info holds the contact fields of a single resume. Missing fields are empty.
type Info struct {
	Email string
	Phone string
}

// Email returns the first email-like token or an empty string.
func Email(text string) string {
	return emailRe.FindString(text)
}

// Phone returns the first phone-like number or an empty string.
func Phone(text string) string {
	return strings.TrimSpace(phoneRe.FindString(text))
}

// Extract returns both contact fields of the text.
func Extract(text string) Info {
	return Info{
		Email: Email(text),
		Phone: Phone(text),
	}
}
