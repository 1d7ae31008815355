// Package validation rejects malformed or malicious credentials before they
// reach the credential store.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/logintest/login-api/internal/core/domain"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validator applies the credential rules in a fixed order and reports the
// first violation. It holds no mutable state and is safe for concurrent use.
type Validator struct {
	sqlInjection []string
	xss          []string
	htmlTags     []string
	v            *validator.Validate
}

// New builds a Validator from rs.
func New(rs RuleSet) *Validator {
	return &Validator{
		sqlInjection: normalize(rs.SQLInjection),
		xss:          normalize(rs.XSS),
		htmlTags:     normalize(rs.HTMLTags),
		v:            validator.New(),
	}
}

// Check validates the raw email, then the raw password.
func (v *Validator) Check(email, password string) domain.Outcome {
	if o := v.CheckField(domain.FieldEmail, email); !o.IsValid() {
		return o
	}
	return v.CheckField(domain.FieldPassword, password)
}

// CheckField validates a single raw value.
func (v *Validator) CheckField(field domain.Field, raw string) domain.Outcome {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Rejected(field, domain.ReasonRequired)
	}
	if trimmed != raw {
		return domain.Rejected(field, domain.ReasonWhitespace)
	}
	if isBlank(trimmed) {
		return domain.Rejected(field, domain.ReasonBlank)
	}

	lower := strings.ToLower(trimmed)
	switch {
	case containsAny(lower, v.sqlInjection):
		return domain.Rejected(field, domain.ReasonSQLInjection)
	case containsAny(lower, v.xss):
		return domain.Rejected(field, domain.ReasonXSS)
	case containsAny(lower, v.htmlTags):
		return domain.Rejected(field, domain.ReasonHTML)
	}

	if field != domain.FieldEmail {
		return domain.Valid()
	}
	if err := v.v.Var(trimmed, "printascii"); err != nil {
		return domain.Rejected(field, domain.ReasonNonASCII)
	}
	if !emailShape.MatchString(trimmed) {
		return domain.Rejected(field, domain.ReasonEmailFormat)
	}
	return domain.Valid()
}

// isBlank reports whether s consists only of whitespace or invisible format
// characters (zero-width space and friends survive strings.TrimSpace).
func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) && !unicode.Is(unicode.Cf, r) {
			return false
		}
	}
	return true
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
