package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigits(t *testing.T) {
	assert.Equal(t, "11987654321", Digits("(11) 98765-4321"))
	assert.Equal(t, "", Digits("abc"))
	assert.Equal(t, "123", Digits("١٢ 1-2-3"))
}

func TestPhone(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"1":               "(1",
		"11":              "(11)",
		"119":             "(11) 9",
		"1198765":         "(11) 98765",
		"11987654":        "(11) 98765-4",
		"11987654321":     "(11) 98765-4321",
		"119876543210000": "(11) 98765-4321",
		"(11) 3456-7890":  "(11) 34567-890",
	}
	for in, want := range tests {
		assert.Equal(t, want, Phone(in), in)
	}
}

func TestCPF(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"123":             "123",
		"1234":            "123.4",
		"1234567":         "123.456.7",
		"123456789":       "123.456.789",
		"1234567890":      "123.456.789-0",
		"12345678901":     "123.456.789-01",
		"123.456.789-012": "123.456.789-01",
	}
	for in, want := range tests {
		assert.Equal(t, want, CPF(in), in)
	}
}

func TestCEP(t *testing.T) {
	assert.Equal(t, "", CEP(""))
	assert.Equal(t, "01310", CEP("01310"))
	assert.Equal(t, "01310-1", CEP("013101"))
	assert.Equal(t, "01310-100", CEP("01310100"))
	assert.Equal(t, "01310-100", CEP("01310-1009"))
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		dob  string
		want int
	}{
		{"2008-03-15", 18},
		{"2008-03-16", 17},
		{"2008-04-01", 17},
		{"2008-02-28", 18},
		{"1990-12-31", 35},
		{"2008-03-15T00:00:00Z", 18},
	}
	for _, tt := range tests {
		got, err := Age(tt.dob, now)
		require.NoError(t, err, tt.dob)
		assert.Equal(t, tt.want, got, tt.dob)
	}

	_, err := Age("15/03/2008", now)
	require.ErrorIs(t, err, ErrInvalidDate)
	_, err = Age("", now)
	require.ErrorIs(t, err, ErrInvalidDate)
}
