package rules

import (
	"regexp"
	"strings"

	"github.com/obahii/data-cleaning/internal/model"
)

// Local part of letters, digits, dot, underscore, hyphen; a letters-only
// domain label and a letters-only TLD with exactly one dot between them.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z]+\.[a-zA-Z]+$`)

// providers is the ordered list used to complete a truncated domain.
// Order matters: the first provider whose domain extends the partial one wins.
var providers = []string{
	"gmail.com",
	"yahoo.com",
	"outlook.com",
	"hotmail.com",
	"icloud.com",
	"aol.com",
	"protonmail.com",
	"zoho.com",
	"gmx.com",
	"mail.com",
	"yandex.com",
}

// Providers returns a copy of the provider list in match order.
func Providers() []string { return append([]string(nil), providers...) }

// defaultProvider is appended to addresses that have no "@" at all.
const defaultProvider = "gmail.com"

type emailRule struct{}

func (emailRule) Kind() Kind                  { return KindEmail }
func (emailRule) Validate(v model.Value) bool { return matches(emailPattern, v) }

func (r emailRule) Correct(v model.Value) model.Value {
	s, ok := v.Str()
	if !ok {
		return model.Null()
	}
	s = strings.ToLower(stripSpaces(s))
	if r.Validate(v) {
		return model.String(s)
	}
	if s == "" {
		return model.Null()
	}
	if !strings.Contains(s, "@") {
		return model.String(s + "@" + defaultProvider)
	}
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return model.Null()
	}
	if d, ok := completeDomain(parts[1]); ok {
		return model.String(parts[0] + "@" + d)
	}
	return model.Null()
}

// completeDomain returns the first provider that starts with partial.
func completeDomain(partial string) (string, bool) {
	for _, d := range providers {
		if strings.HasPrefix(d, partial) {
			return d, true
		}
	}
	return "", false
}
