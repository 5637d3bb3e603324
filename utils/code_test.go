package utils

import (
	"strings"
	"testing"
)

func TestGenerateGroupCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateGroupCode()
		if len(code) != 6 {
			t.Fatalf("code %q has length %d, want 6", code, len(code))
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
		seen[code] = true
	}
	// 100 draws from a 36^6 space colliding down to a handful would mean
	// the generator is broken.
	if len(seen) < 90 {
		t.Errorf("only %d distinct codes in 100 draws", len(seen))
	}
}
