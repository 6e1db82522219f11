package anonymizer

import (
	"strconv"
	"unicode"
)

const (
	// NamePrefix is prepended to the subject id to form the shadow name.
	NamePrefix = "ANON_"

	// FullMask is the shadow contact of a contact with fewer than
	// [visibleDigits] digits.
	FullMask = "XXX-XXX-XXXX"

	maskPrefix    = "XXX-XXX-"
	visibleDigits = 4
)

// Name returns the shadow name of the subject with id.
func Name(id int64) string {
	return NamePrefix + strconv.FormatInt(id, 10)
}

// MaskContact strips every non-digit from contact and keeps only the last
// four digits. Any Unicode decimal digit counts, so Eastern Arabic or
// Devanagari numerals are kept as written. Contacts with fewer than four
// digits are masked completely.
func MaskContact(contact string) string {
	digits := make([]rune, 0, len(contact))
	for _, r := range contact {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}

	if len(digits) < visibleDigits {
		return FullMask
	}

	return maskPrefix + string(digits[len(digits)-visibleDigits:])
}

// Anonymize returns the shadow name and contact for a subject. The real name
// is accepted for symmetry with the stored record but never influences the
// result.
func Anonymize(id int64, _ string, contact string) (anonName, anonContact string) {
	return Name(id), MaskContact(contact)
}
