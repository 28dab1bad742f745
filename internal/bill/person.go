package bill

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Person is a name-only value type. The feed identifies members by last
// name (optionally with initials), so equality is by normalized name.
type Person struct {
	FullName string `json:"full_name"`
}

// NewPerson creates a Person from a raw feed name.
func NewPerson(name string) Person {
	return Person{FullName: strings.TrimSpace(name)}
}

// Equal reports whether two persons have the same normalized name.
func (p Person) Equal(other Person) bool {
	return NormalizeName(p.FullName) == NormalizeName(other.FullName)
}

// NormalizeName upper-cases a name, collapses interior whitespace and
// applies Unicode NFC so that accented names compare consistently no matter
// how the feed encoded them.
func NormalizeName(name string) string {
	fields := strings.Fields(name)
	return norm.NFC.String(strings.ToUpper(strings.Join(fields, " ")))
}

// PeopleEqual reports whether two person lists are equal element-wise.
func PeopleEqual(a, b []Person) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
