// Package format normalizes and pretty-prints the Brazilian document and
// contact fields used in Fusion forms.
package format

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the form layout for dates of birth.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// Phone renders up to 11 digits as "(11) 98765-4321". Partial input is
// formatted as far as it goes.
func Phone(s string) string {
	d := truncate(Digits(s), 11)
	if d == "" {
		return ""
	}

	var sb strings.Builder
	sb.WriteByte('(')
	if len(d) <= 2 {
		sb.WriteString(d)
		if len(d) == 2 {
			sb.WriteByte(')')
		}
		return sb.String()
	}
	sb.WriteString(d[:2])
	sb.WriteString(") ")
	if len(d) <= 7 {
		sb.WriteString(d[2:])
		return sb.String()
	}
	sb.WriteString(d[2:7])
	sb.WriteByte('-')
	sb.WriteString(d[7:])
	return sb.String()
}

// CPF renders up to 11 digits as "123.456.789-01".
func CPF(s string) string {
	d := truncate(Digits(s), 11)

	var sb strings.Builder
	for i, c := range []byte(d) {
		switch i {
		case 3, 6:
			sb.WriteByte('.')
		case 9:
			sb.WriteByte('-')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// CEP renders up to 8 digits as "12345-678".
func CEP(s string) string {
	d := truncate(Digits(s), 8)
	if len(d) <= 5 {
		return d
	}
	return d[:5] + "-" + d[5:]
}

// Age returns the number of whole years between dob (DateLayout, an
// RFC 3339 timestamp is accepted too) and now.
func Age(dob string, now time.Time) (int, error) {
	dob = strings.TrimSpace(dob)
	if len(dob) > len(DateLayout) {
		dob = dob[:len(DateLayout)]
	}
	birth, err := time.Parse(DateLayout, dob)
	if err != nil {
		return 0, ErrInvalidDate
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age, nil
}
