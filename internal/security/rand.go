package security

import (
	"crypto/rand"
	"encoding/base64"
	"io"
)

// RandomBytes генерирует криптостойкие байты.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, b)
	return b, err
}

// RandomStringURLSafe: base64url без паддинга, длина 4*ceil(n/3) минус паддинг.
func RandomStringURLSafe(n int) (string, error) {
	b, err := RandomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// InvitationCode: 16 url-safe символов, 96 бит энтропии.
func InvitationCode() (string, error) {
	return RandomStringURLSafe(12)
}
