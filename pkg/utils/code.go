package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
	"unicode"
)

const (
	// EventCodeLength is the fixed length of guest join codes.
	EventCodeLength = 8

	codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateEventCode builds a human-readable join code: a short prefix
// taken from the event name, the two-digit event year, and random
// characters padding it to 8. The charset drops lookalike characters
// (0/O, 1/I) since guests type these by hand.
func GenerateEventCode(eventName string, eventDate time.Time) string {
	prefix := namePrefix(eventName, 3)
	year := eventDate.Format("06")

	code := prefix + year
	for len(code) < EventCodeLength {
		code += randomChar()
	}
	return code[:EventCodeLength]
}

// namePrefix takes up to n letters from the name, uppercased, skipping
// everything that is not a letter.
func namePrefix(name string, n int) string {
	var b strings.Builder
	for _, r := range name {
		if b.Len() >= n {
			break
		}
		if unicode.IsLetter(r) && r < 128 {
			b.WriteRune(unicode.ToUpper(r))
		}
	}
	for b.Len() < n {
		b.WriteString(randomChar())
	}
	return b.String()
}

func randomChar() string {
	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
	if err != nil {
		return string(codeCharset[0])
	}
	return string(codeCharset[idx.Int64()])
}

// GenerateOTP returns a 6-digit one-time password.
func GenerateOTP() string {
	const digits = "0123456789"
	var b strings.Builder
	for i := 0; i < 6; i++ {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			b.WriteByte('0')
			continue
		}
		b.WriteByte(digits[idx.Int64()])
	}
	return b.String()
}
