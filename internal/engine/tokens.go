package engine

import (
	"crypto/rand"
	"encoding/base64"

	"campusbus/internal/domain"
)

const tokenBytes = 32

// newToken returns an unguessable URL-safe QR token.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", domain.InternalError{Msg: "token generation failed", Err: err}
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
