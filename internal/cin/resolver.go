// Package cin resolves the issuing city of a Moroccan national ID (CIN).
//
// A CIN is a one- or two-letter prefix code followed by digits. The prefix
// code is looked up as a whole: an unmapped two-letter code does not fall
// back to its one-letter parent.
package cin

import (
	"strings"

	"github.com/obahii/data-cleaning/internal/model"
	"github.com/obahii/data-cleaning/internal/rules"
)

// Prefix returns the leading letter run of id, uppercased.
func Prefix(id string) string {
	end := 0
	for end < len(id) && isASCIILetter(id[end]) {
		end++
	}
	return strings.ToUpper(id[:end])
}

func isASCIILetter(b byte) bool {
	return ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// CityFor returns the city issuing id. It returns false when id is not a
// well-formed CIN or its prefix code is not in the table.
func CityFor(id model.Value) (string, bool) {
	if !rules.Validate(model.ColCIN, id) {
		return "", false
	}
	s, _ := id.Str()
	city, ok := cityByPrefix[Prefix(s)]
	return city, ok
}

// City is CityFor as a Value: the city name, or null.
func City(id model.Value) model.Value {
	if city, ok := CityFor(id); ok {
		return model.String(city)
	}
	return model.Null()
}

// Codes returns the number of prefix codes in the table.
func Codes() int { return len(cityByPrefix) }
