// Package serialization implements the wire codec for the LaserSell stream
// protocol.
//
// Both message unions follow the same rules: a message is one UTF-8 JSON
// object whose "type" field carries the variant tag and whose remaining
// fields are the variant's payload. Encoding is total and deterministic for
// any validly constructed message. Decoding is strict: unknown tags, missing
// required fields, and mismatched field types fail with a typed
// contracts.DecodeError, while unknown extra fields are ignored for forward
// tolerance.
//
// The client and server unions are decoded by independent registries, so a
// tag belonging to one union is an unknown variant to the other.
package serialization
