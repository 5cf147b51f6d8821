package util

import (
	"math/rand"
)

const randomCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GetRandomString generates a random alphanumeric string of the given
// length. Not cryptographically strong; used for default config keys and
// temp file names.
func GetRandomString(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = randomCharset[rand.Intn(len(randomCharset))]
	}
	return string(b)
}
