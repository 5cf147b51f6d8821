package util

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
)

// EncodeMD5 returns the 32 character hex MD5 digest of a string.
func EncodeMD5(str string) string {
	h := md5.New()
	h.Write([]byte(str))
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeSHA256 returns the hex SHA-256 digest of a byte slice. Used for
// content ETags on file downloads.
func EncodeSHA256(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
