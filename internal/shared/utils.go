// Package shared provides small utilities used across the client layers.
package shared

import (
	"crypto/rand"
	"fmt"
)

const tokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// MakeRandToken generates a random base36 token whose length is chosen
// uniformly between minLen and maxLen inclusive. Tokens are used as the
// random suffix of object-storage keys; uniqueness is probabilistic, not
// guaranteed.
//
// It returns an error if the random number generator fails or if the
// requested bounds are invalid.
func MakeRandToken(minLen, maxLen int) (string, error) {
	if minLen <= 0 || maxLen < minLen {
		return "", fmt.Errorf("invalid token bounds: min=%d max=%d", minLen, maxLen)
	}

	span := maxLen - minLen + 1
	b := make([]byte, 1+maxLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	length := minLen + int(b[0])%span
	token := make([]byte, length)
	for i := 0; i < length; i++ {
		token[i] = tokenAlphabet[int(b[1+i])%len(tokenAlphabet)]
	}

	return string(token), nil
}
