package contracts

import (
	"errors"
	"fmt"
)

// DecodeErrorKind classifies why a wire message failed to decode.
type DecodeErrorKind int

const (
	// MalformedText means the input is not well-formed JSON at all.
	MalformedText DecodeErrorKind = iota
	// UnknownVariant means the type discriminator names no variant of the
	// target union.
	UnknownVariant
	// MissingField means a required field for the matched variant is absent.
	MissingField
	// TypeMismatch means a present field does not conform to its expected
	// type. Values are never coerced.
	TypeMismatch
)

// String returns the stable name of the kind.
func (k DecodeErrorKind) String() string {
	switch k {
	case MalformedText:
		return "malformed_text"
	case UnknownVariant:
		return "unknown_variant"
	case MissingField:
		return "missing_field"
	case TypeMismatch:
		return "type_mismatch"
	default:
		return fmt.Sprintf("decode_error_kind(%d)", int(k))
	}
}

// DecodeError is the typed failure returned by the serialization package.
// Decode never returns a partial message alongside a DecodeError.
type DecodeError struct {
	Kind  DecodeErrorKind
	Tag   string // variant tag, when one was identified
	Field string // offending field path, for MissingField and TypeMismatch
	Err   error  // underlying cause, if any
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case UnknownVariant:
		return fmt.Sprintf("decode: unknown variant %q", e.Tag)
	case MissingField:
		if e.Tag != "" {
			return fmt.Sprintf("decode: %s: missing required field %q", e.Tag, e.Field)
		}
		return fmt.Sprintf("decode: missing required field %q", e.Field)
	case TypeMismatch:
		prefix := "decode"
		if e.Tag != "" {
			prefix = "decode: " + e.Tag
		}
		if e.Err != nil {
			return fmt.Sprintf("%s: field %q: %v", prefix, e.Field, e.Err)
		}
		return fmt.Sprintf("%s: field %q has wrong type", prefix, e.Field)
	default:
		if e.Err != nil {
			return fmt.Sprintf("decode: malformed text: %v", e.Err)
		}
		return "decode: malformed text"
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeKind reports whether err is a DecodeError of the given kind.
func IsDecodeKind(err error, kind DecodeErrorKind) bool {
	var de *DecodeError
	return errors.As(err, &de) && de.Kind == kind
}
