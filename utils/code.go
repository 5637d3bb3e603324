// utils/code.go - Join code generation
package utils

import (
	"crypto/rand"
	"math/big"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateGroupCode returns a random 6-character uppercase alphanumeric
// join code. Uniqueness is enforced by the groups.code constraint, with
// bounded retries at the call site.
func GenerateGroupCode() string {
	return randomCode(6)
}

func randomCode(length int) string {
	code := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			panic(err)
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code)
}
