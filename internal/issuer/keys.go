package issuer

import (
	"encoding/base64"
	"strings"
)

// DecodeSecret turns a caller supplied secret into HMAC key bytes. Decoding
// never fails: both the standard and URL alphabets are accepted, padding is
// optional, characters outside the alphabets are skipped and decoding stops
// at the first '='. The result may be empty.
func DecodeSecret(secret string) []byte {
	var b strings.Builder
	b.Grow(len(secret))

scan:
	for i := 0; i < len(secret); i++ {
		c := secret[i]
		switch {
		case c == '=':
			break scan
		case c == '-':
			b.WriteByte('+')
		case c == '_':
			b.WriteByte('/')
		case isBase64Char(c):
			b.WriteByte(c)
		}
	}

	s := b.String()
	// A lone trailing character carries fewer than 8 bits.
	if len(s)%4 == 1 {
		s = s[:len(s)-1]
	}

	key, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil
	}
	return key
}

func isBase64Char(c byte) bool {
	return (c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z') ||
		(c >= '0' && c <= '9') ||
		c == '+' || c == '/'
}
