package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// RandomToken returns length random bytes encoded as unpadded URL-safe base64.
func RandomToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
