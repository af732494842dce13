package guard

import (
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/pquerna/otp"
)

// ErrNoSecret is returned when an otpauth URI carries no secret parameter.
var ErrNoSecret = errors.New("otpauth uri has no secret")

// SecretFromURI extracts the base32 secret of an otpauth:// URI, as exported
// by most authenticator apps, and returns it as a base64 shared secret.
func SecretFromURI(uri string) (string, error) {
	key, err := otp.NewKeyFromURL(strings.TrimSpace(uri))
	if err != nil {
		return "", fmt.Errorf("parse otpauth uri: %w", err)
	}
	if key.Secret() == "" {
		return "", ErrNoSecret
	}
	return Base32ToBase64(key.Secret())
}

// Base32ToBase64 converts a base32 key, case-insensitive with optional
// padding and embedded spaces, to padded standard base64.
func Base32ToBase64(secret string) (string, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(secret), ""))
	clean = strings.TrimRight(clean, "=")
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(clean)
	if err != nil {
		return "", fmt.Errorf("decode base32 secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
