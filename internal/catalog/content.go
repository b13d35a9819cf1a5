package catalog

import (
	"crypto/sha256"
	"encoding/hex"
)

// TransformContent reverses the code points of content.
//
// Applying it twice returns the original string. It is an obfuscation, not encryption.
func TransformContent(content string) string {
	runes := []rune(content)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Checksum returns the lowercase hex SHA-256 digest of content.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// credentialsMatch compares a stored password with a supplied one.
//
// Passwords are stored in cleartext.
func credentialsMatch(stored, supplied string) bool {
	return stored == supplied
}
