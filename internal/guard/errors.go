package guard

import "errors"

// Kind classifies code generation failures so callers can branch on them
// without parsing messages.
type Kind int

const (
	// KindDecode means the shared secret is not valid base64 after normalization.
	KindDecode Kind = iota + 1
	// KindKey means the decoded key could not be used to initialize HMAC-SHA1.
	KindKey
	// KindEncoding means the produced code is not valid text.
	KindEncoding
)

// Sentinel errors matched by errors.Is against a *CodeError of the same kind.
var (
	ErrDecode   = errors.New("decode error")
	ErrKey      = errors.New("key error")
	ErrEncoding = errors.New("encoding error")
)

// CodeError is returned by GenerateCode.
type CodeError struct {
	Kind Kind
	Err  error
}

func (e *CodeError) Error() string {
	switch e.Kind {
	case KindDecode:
		return "failed to decode Base64: " + e.Err.Error()
	case KindKey:
		return "failed to create HMAC instance: " + e.Err.Error()
	case KindEncoding:
		return "failed to convert to UTF-8: " + e.Err.Error()
	default:
		return e.Err.Error()
	}
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's kind.
func (e *CodeError) Is(target error) bool {
	switch target {
	case ErrDecode:
		return e.Kind == KindDecode
	case ErrKey:
		return e.Kind == KindKey
	case ErrEncoding:
		return e.Kind == KindEncoding
	}
	return false
}
