package issuer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   []byte
	}{
		{name: "standard", secret: "c2VjcmV0", want: []byte("secret")},
		{name: "padded", secret: "YWI=", want: []byte("ab")},
		{name: "unpadded", secret: "YWI", want: []byte("ab")},
		{name: "url alphabet", secret: "-_8", want: []byte{0xfb, 0xff}},
		{name: "standard alphabet", secret: "+/8", want: []byte{0xfb, 0xff}},
		{name: "whitespace ignored", secret: "c2Vj\ncmV0 ", want: []byte("secret")},
		{name: "stops at padding", secret: "YWI=YWI=", want: []byte("ab")},
		{name: "lone trailing character dropped", secret: "YWJjZ", want: []byte("abc")},
		{name: "garbage only", secret: "!!!", want: []byte{}},
		{name: "empty", secret: "", want: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeSecret(tt.secret)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
