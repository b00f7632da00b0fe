// Package rules defines the per-field validation and correction rules for
// applicant records.
//
// Every ruled field maps to one Rule kind:
//
//	nom, prenom                       → Name
//	date_naissance                    → BirthDate
//	cin                               → CIN
//	tel                               → Phone
//	email                             → Email
//	diplome                           → Diploma
//	created                           → CreatedAt
//	etat, viewed, contacte, inscrit   → DigitFlag
//
// etablissment, formation and lettre_motivation carry no rule and pass
// through unchecked. ville is derived from cin (package cin).
package rules

import (
	"fmt"

	"github.com/obahii/data-cleaning/internal/model"
)

// Kind enumerates the rule variants.
type Kind uint8

const (
	KindName Kind = iota + 1
	KindBirthDate
	KindCIN
	KindPhone
	KindEmail
	KindDiploma
	KindCreatedAt
	KindDigitFlag
)

func (k Kind) String() string {
	switch k {
	case KindName:
		return "name"
	case KindBirthDate:
		return "birth_date"
	case KindCIN:
		return "cin"
	case KindPhone:
		return "phone"
	case KindEmail:
		return "email"
	case KindDiploma:
		return "diploma"
	case KindCreatedAt:
		return "created_at"
	case KindDigitFlag:
		return "digit_flag"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Rule is an immutable (validate, correct) pair for one field kind.
//
// Correct is only meaningful for values that fail Validate; for a valid
// value it returns the value itself or its normalised fixed point.
type Rule interface {
	Kind() Kind
	Validate(v model.Value) bool
	Correct(v model.Value) model.Value
}

// registry maps each ruled column to its rule. Read-only after init.
var registry = map[string]Rule{
	model.ColLastName:  nameRule{},
	model.ColFirstName: nameRule{},
	model.ColBirthDate: birthDateRule{},
	model.ColCIN:       cinRule{},
	model.ColPhone:     phoneRule{},
	model.ColEmail:     emailRule{},
	model.ColDiploma:   diplomaRule{},
	model.ColCreated:   createdAtRule{},
	model.ColStatus:    digitFlagRule{},
	model.ColViewed:    digitFlagRule{},
	model.ColContacted: digitFlagRule{},
	model.ColEnrolled:  digitFlagRule{},
}

// For returns the rule registered for field.
func For(field string) (Rule, bool) {
	r, ok := registry[field]
	return r, ok
}

// Fields returns the ruled fields in canonical column order.
func Fields() []string {
	out := make([]string, 0, len(registry))
	for _, c := range model.Columns {
		if _, ok := registry[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

// Validate reports whether v is acceptable for field.
// Fields without a rule accept every value.
func Validate(field string, v model.Value) bool {
	r, ok := registry[field]
	if !ok {
		return true
	}
	return r.Validate(v)
}

// Correct returns the corrected form of v for field, or null when v cannot
// be repaired. Fields without a rule return v unchanged.
func Correct(field string, v model.Value) model.Value {
	r, ok := registry[field]
	if !ok {
		return v
	}
	return r.Correct(v)
}
