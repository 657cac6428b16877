package room

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		if len(code) != codeLength {
			t.Fatalf("Expected %d characters, got %q", codeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Fatalf("Code %q contains %q, outside the alphabet", code, c)
			}
		}
	}
}

func TestGenerateCode_ExcludesAmbiguousCharacters(t *testing.T) {
	for _, c := range "0O1I" {
		if strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("Alphabet should not contain ambiguous character %q", c)
		}
	}
}
