package serialization

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/lasersell/streamproto/contracts"
)

// typeField is the discriminator key shared by both unions.
const typeField = "type"

var nullLiteral = []byte("null")

// EncodeClientMessage renders a client command as its JSON wire text.
// Encoding is total for any message constructed from this module's types.
func EncodeClientMessage(msg contracts.ClientMessage) (string, error) {
	return encodeMessage(clientUnion, msg)
}

// EncodeServerMessage renders a server event as its JSON wire text.
func EncodeServerMessage(msg contracts.ServerMessage) (string, error) {
	return encodeMessage(serverUnion, msg)
}

// DecodeClientMessage parses wire text into the matching client command.
// Failures are reported as *contracts.DecodeError; no partial message is ever
// returned alongside an error.
func DecodeClientMessage(text string) (contracts.ClientMessage, error) {
	v, err := decodeMessage(clientUnion, text)
	if err != nil {
		return nil, err
	}
	return v.(contracts.ClientMessage), nil
}

// DecodeServerMessage parses wire text into the matching server event.
func DecodeServerMessage(text string) (contracts.ServerMessage, error) {
	v, err := decodeMessage(serverUnion, text)
	if err != nil {
		return nil, err
	}
	return v.(contracts.ServerMessage), nil
}

func encodeMessage(u *union, msg interface{}) (string, error) {
	if msg == nil {
		return "", fmt.Errorf("serialization: message cannot be nil")
	}
	tag, err := u.tagOf(msg)
	if err != nil {
		return "", err
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("serialization: failed to marshal %s message: %w", tag, err)
	}

	// Re-read the payload as raw fields so the discriminator can be added
	// without re-interpreting (and potentially rounding) any field value.
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("serialization: failed to flatten %s message: %w", tag, err)
	}
	tagJSON, err := json.Marshal(tag)
	if err != nil {
		return "", err
	}
	fields[typeField] = tagJSON

	out, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("serialization: failed to marshal %s message: %w", tag, err)
	}
	return string(out), nil
}

func decodeMessage(u *union, text string) (interface{}, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, &contracts.DecodeError{Kind: contracts.MalformedText, Err: err}
	}
	if fields == nil {
		return nil, &contracts.DecodeError{Kind: contracts.MalformedText, Err: errors.New("message is not a JSON object")}
	}

	rawTag, ok := fields[typeField]
	if !ok {
		return nil, &contracts.DecodeError{Kind: contracts.MissingField, Field: typeField}
	}
	if isNull(rawTag) {
		return nil, &contracts.DecodeError{Kind: contracts.TypeMismatch, Field: typeField, Err: errors.New("discriminator is null")}
	}
	var tag string
	if err := json.Unmarshal(rawTag, &tag); err != nil {
		return nil, &contracts.DecodeError{Kind: contracts.TypeMismatch, Field: typeField, Err: err}
	}

	e, ok := u.lookup(tag)
	if !ok {
		return nil, &contracts.DecodeError{Kind: contracts.UnknownVariant, Tag: tag}
	}

	if derr := checkRequired(e.tag, e.typ, fields, "", e.fieldAliases); derr != nil {
		return nil, derr
	}

	instance := reflect.New(e.typ)
	if err := json.Unmarshal([]byte(text), instance.Interface()); err != nil {
		return nil, asDecodeError(e.tag, err)
	}
	return instance.Elem().Interface(), nil
}

// checkRequired verifies, before unmarshaling, that every field without
// omitempty is present and non-null, recursing into nested struct payloads.
// This is what keeps absent required fields from silently decoding to zero
// values.
func checkRequired(tag string, t reflect.Type, raw map[string]json.RawMessage, path string, aliases map[string][]string) *contracts.DecodeError {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, omitempty, ok := jsonFieldName(f)
		if !ok {
			continue
		}
		full := name
		if path != "" {
			full = path + "." + name
		}

		val, present := raw[name]
		if !present && path == "" {
			for _, alias := range aliases[name] {
				if v, okAlias := raw[alias]; okAlias {
					val, present = v, true
					break
				}
			}
		}

		if !present {
			if omitempty {
				continue
			}
			return &contracts.DecodeError{Kind: contracts.MissingField, Tag: tag, Field: full}
		}
		if isNull(val) {
			if omitempty {
				continue // explicit null reads as unset for optional fields
			}
			return &contracts.DecodeError{Kind: contracts.TypeMismatch, Tag: tag, Field: full, Err: errors.New("required field is null")}
		}

		ft := f.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && ft.NumField() > 0 {
			var nested map[string]json.RawMessage
			if err := json.Unmarshal(val, &nested); err != nil {
				return &contracts.DecodeError{Kind: contracts.TypeMismatch, Tag: tag, Field: full, Err: err}
			}
			if derr := checkRequired(tag, ft, nested, full, nil); derr != nil {
				return derr
			}
		}
	}
	return nil
}

// asDecodeError converts an encoding/json unmarshal failure into the decode
// taxonomy, preserving DecodeErrors raised by custom UnmarshalJSON methods.
func asDecodeError(tag string, err error) *contracts.DecodeError {
	var de *contracts.DecodeError
	if errors.As(err, &de) {
		if de.Tag == "" {
			de.Tag = tag
		}
		return de
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &contracts.DecodeError{Kind: contracts.TypeMismatch, Tag: tag, Field: typeErr.Field, Err: err}
	}
	var synErr *json.SyntaxError
	if errors.As(err, &synErr) {
		return &contracts.DecodeError{Kind: contracts.MalformedText, Err: err}
	}
	return &contracts.DecodeError{Kind: contracts.TypeMismatch, Tag: tag, Err: err}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), nullLiteral)
}
