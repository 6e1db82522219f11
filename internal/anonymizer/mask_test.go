package anonymizer

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "ANON_1", Name(1))
	assert.Equal(t, "ANON_9000000000", Name(9000000000))
	assert.Equal(t, Name(42), Name(42))
}

func TestMaskContact(t *testing.T) {
	tests := []struct {
		name    string
		contact string
		want    string
	}{
		{"formatted phone", "0300-1234567", "XXX-XXX-4567"},
		{"international", "+1 (555) 010-9999", "XXX-XXX-9999"},
		{"exactly four digits", "1234", "XXX-XXX-1234"},
		{"three digits", "123", FullMask},
		{"digits hidden in text", "call a1b2c3d4e5", "XXX-XXX-2345"},
		{"no digits", "john@example.com", FullMask},
		{"empty", "", FullMask},
		{"eastern arabic digits", "٠٣٠٠-١٢٣٤٥٦٧", "XXX-XXX-٤٥٦٧"},
		{"mixed scripts", "+91 98765 ४३२१", "XXX-XXX-४३२१"},
		{"three non-ascii digits", "١٢٣", FullMask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskContact(tt.contact))
		})
	}
}

func TestMaskContact_ExposesOnlyLastFourDigits(t *testing.T) {
	contacts := []string{"0300-1234567", "98765", "1-2-3-4-5-6-7-8-9", "555 0100", "٠٣٠٠-١٢٣٤٥٦٧"}

	for _, contact := range contacts {
		masked := MaskContact(contact)

		digits := strings.Map(func(r rune) rune {
			if unicode.IsDigit(r) {
				return r
			}
			return -1
		}, masked)

		assert.Equal(t, 4, utf8.RuneCountInString(digits), contact)
		assert.True(t, strings.HasPrefix(masked, "XXX-XXX-"), contact)
	}
}

func TestAnonymize_IgnoresRealName(t *testing.T) {
	n1, c1 := Anonymize(7, "John Doe", "0300-1234567")
	n2, c2 := Anonymize(7, "Jane Roe", "0300-1234567")

	assert.Equal(t, "ANON_7", n1)
	assert.Equal(t, n1, n2)
	assert.Equal(t, c1, c2)
	assert.NotContains(t, n1, "John")
}
