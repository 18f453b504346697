// Package validation exposes the go-playground validator rules that the
// HTTP binding layer applies through struct tags, so domain Validate
// methods accept exactly the same values.
package validation

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// IsEmail reports whether s passes the "email" rule.
func IsEmail(s string) bool {
	return validate.Var(s, "email") == nil
}

// IsURL reports whether s passes the "url" rule.
func IsURL(s string) bool {
	return validate.Var(s, "url") == nil
}
