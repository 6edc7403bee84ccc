package codes

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		if len(code) != CodeLength {
			t.Errorf("got code %q of length %d; want %d", code, len(code), CodeLength)
		}
	}
}

func TestGenerateCharset(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := Generate()
		for _, r := range code {
			if !strings.ContainsRune(string(letterRunes), r) {
				t.Errorf("code %q contains rune %q outside charset", code, r)
			}
		}
	}
}
