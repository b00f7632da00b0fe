package rules

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/obahii/data-cleaning/internal/model"
)

// Grammars. All are anchored on both ends.
var (
	// Latin letters, the Latin-1 accented block (U+00C0–U+00FF), space and
	// hyphen. The empty string matches.
	namePattern = regexp.MustCompile(`^[A-Za-zÀ-ÿ -]*$`)

	// One or two letters followed by at least three digits.
	cinPattern = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9]{3,}$`)

	phonePattern      = regexp.MustCompile(`^\+2126[0-9]{8}$`)
	localPhonePattern = regexp.MustCompile(`^6[0-9]{8}$`)
	bareIntlPattern   = regexp.MustCompile(`^2126[0-9]{8}$`)

	diplomaPattern = regexp.MustCompile(`^bac\+[0-9]$`)
	digitPattern   = regexp.MustCompile(`^[0-9]$`)
)

const (
	diplomaOther = "autre"
	defaultFlag  = "0"
)

// matches reports whether v is a string accepted by re.
func matches(re *regexp.Regexp, v model.Value) bool {
	s, ok := v.Str()
	return ok && re.MatchString(s)
}

// parses reports whether v is a string accepted by time.Parse(layout).
func parses(layout string, v model.Value) bool {
	s, ok := v.Str()
	if !ok {
		return false
	}
	_, err := time.Parse(layout, s)
	return err == nil
}

// stripSpaces removes every ASCII space, leaving other whitespace alone.
func stripSpaces(s string) string { return strings.ReplaceAll(s, " ", "") }

// ─── Name ────────────────────────────────────────────────────────────────────

type nameRule struct{}

func (nameRule) Kind() Kind                  { return KindName }
func (nameRule) Validate(v model.Value) bool { return matches(namePattern, v) }
func (r nameRule) Correct(v model.Value) model.Value {
	if !r.Validate(v) {
		return model.Null()
	}
	s, _ := v.Str()
	// A Caser is stateful; build one per call.
	return model.String(cases.Title(language.French).String(strings.TrimSpace(s)))
}

// ─── Birth date ──────────────────────────────────────────────────────────────

type birthDateRule struct{}

func (birthDateRule) Kind() Kind                  { return KindBirthDate }
func (birthDateRule) Validate(v model.Value) bool { return parses(model.DateInputLayout, v) }
func (r birthDateRule) Correct(v model.Value) model.Value {
	if r.Validate(v) {
		return v
	}
	return model.Null()
}

// ─── National ID ─────────────────────────────────────────────────────────────

type cinRule struct{}

func (cinRule) Kind() Kind                  { return KindCIN }
func (cinRule) Validate(v model.Value) bool { return matches(cinPattern, v) }
func (cinRule) Correct(v model.Value) model.Value {
	s, ok := v.Str()
	if !ok {
		return model.Null()
	}
	s = stripSpaces(s)
	if !cinPattern.MatchString(s) {
		return model.Null()
	}
	return model.String(strings.ToUpper(s))
}

// ─── Phone ───────────────────────────────────────────────────────────────────

type phoneRule struct{}

func (phoneRule) Kind() Kind                  { return KindPhone }
func (phoneRule) Validate(v model.Value) bool { return matches(phonePattern, v) }
func (r phoneRule) Correct(v model.Value) model.Value {
	if r.Validate(v) {
		return v
	}
	var s string
	switch v.Kind() {
	case model.KindString:
		s, _ = v.Str()
	case model.KindNumber:
		// Numeric cells lose their leading "+" and any fraction.
		f, _ := v.Num()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return model.Null()
		}
		s = strconv.FormatInt(int64(f), 10)
	default:
		return model.Null()
	}
	switch {
	case localPhonePattern.MatchString(s):
		return model.String("+212" + s)
	case bareIntlPattern.MatchString(s):
		return model.String("+" + s)
	}
	return model.Null()
}

// ─── Diploma ─────────────────────────────────────────────────────────────────

type diplomaRule struct{}

func (diplomaRule) Kind() Kind { return KindDiploma }
func (diplomaRule) Validate(v model.Value) bool {
	s, ok := v.Str()
	return ok && (diplomaPattern.MatchString(s) || s == diplomaOther)
}
func (r diplomaRule) Correct(v model.Value) model.Value {
	s, ok := v.Str()
	if !ok {
		return model.Null()
	}
	n := model.String(strings.ToLower(stripSpaces(s)))
	if !r.Validate(n) {
		return model.Null()
	}
	return n
}

// ─── Created timestamp ───────────────────────────────────────────────────────

type createdAtRule struct{}

func (createdAtRule) Kind() Kind                  { return KindCreatedAt }
func (createdAtRule) Validate(v model.Value) bool { return parses(model.TimestampInputLayout, v) }
func (r createdAtRule) Correct(v model.Value) model.Value {
	if r.Validate(v) {
		return v
	}
	return model.Null()
}

// ─── Single-digit flag ───────────────────────────────────────────────────────

// digitFlagRule never corrects to null: anything invalid becomes "0".
type digitFlagRule struct{}

func (digitFlagRule) Kind() Kind                  { return KindDigitFlag }
func (digitFlagRule) Validate(v model.Value) bool { return matches(digitPattern, v) }
func (r digitFlagRule) Correct(v model.Value) model.Value {
	if r.Validate(v) {
		return v
	}
	return model.String(defaultFlag)
}
