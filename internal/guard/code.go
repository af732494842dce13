// Package guard generates Steam Guard time-based authentication codes from a
// base64 shared secret.
//
// The truncation and base-26 conversion follow the scheme used by the Steam
// mobile authenticator and must stay bit-exact for codes to be accepted.
package guard

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// Period is the lifetime of a code in seconds.
	Period = 30
	// CodeLength is the number of characters in a code.
	CodeLength = 5
	// Alphabet holds the symbols a code is drawn from.
	Alphabet = "23456789BCDFGHJKMNPQRTVWXY"
)

var (
	errInvalidUTF8 = errors.New("invalid utf-8 sequence")
	errLineBreak   = errors.New("line break in base64 data")
)

// Normalize trims surrounding whitespace and then one pair of matching
// single or double quotes from secret.
func Normalize(secret string) string {
	s := strings.TrimSpace(secret)
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			s = s[1 : len(s)-1]
		}
	}
	return s
}

// DecodeSecret normalizes secret and decodes it as padded standard base64.
// Line breaks are rejected; the decoder would otherwise skip them.
func DecodeSecret(secret string) ([]byte, error) {
	s := Normalize(secret)
	if strings.ContainsAny(s, "\r\n") {
		return nil, &CodeError{Kind: KindDecode, Err: errLineBreak}
	}
	key, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return nil, &CodeError{Kind: KindDecode, Err: err}
	}
	return key, nil
}

// Counter returns the index of the 30 second window containing unixSeconds.
func Counter(unixSeconds uint64) uint64 {
	return unixSeconds / Period
}

// SecondsRemaining returns how long the code for unixSeconds stays valid,
// in the range 1..30.
func SecondsRemaining(unixSeconds uint64) uint64 {
	return Period - unixSeconds%Period
}

// GenerateCode returns the code for secret at unixSeconds.
//
// It is a pure function and safe for concurrent use. Errors are of type
// *CodeError.
func GenerateCode(secret string, unixSeconds uint64) (string, error) {
	key, err := DecodeSecret(secret)
	if err != nil {
		return "", err
	}

	var timeBytes [8]byte
	binary.BigEndian.PutUint64(timeBytes[:], Counter(unixSeconds))

	mac := hmac.New(sha1.New, key)
	if _, err := mac.Write(timeBytes[:]); err != nil {
		return "", &CodeError{Kind: KindKey, Err: err}
	}
	digest := mac.Sum(nil)

	// dynamic truncation: offset is at most 15, digest is 20 bytes long
	offset := digest[19] & 0x0F
	codePoint := uint32(digest[offset]&0x7F)<<24 |
		uint32(digest[offset+1])<<16 |
		uint32(digest[offset+2])<<8 |
		uint32(digest[offset+3])

	code := make([]byte, CodeLength)
	for i := range code {
		code[i] = Alphabet[codePoint%uint32(len(Alphabet))]
		codePoint /= uint32(len(Alphabet))
	}

	if !utf8.Valid(code) {
		return "", &CodeError{Kind: KindEncoding, Err: errInvalidUTF8}
	}
	return string(code), nil
}
