// Package contracts defines the wire contract shared by LaserSell stream
// clients and servers.
//
// It contains the two closed message unions exchanged over the stream API:
//   - ClientMessage: commands a client may send to the server
//   - ServerMessage: events and responses a server may send to a client
//
// plus the payload types they carry (strategy configuration, session limits,
// market context) and the DecodeError taxonomy reported for malformed input.
//
// All types are plain values: construction never fails, equality is
// structural, and no business validation happens here. Validation of
// application constraints lives in the schema package; encoding and decoding
// live in the serialization package.
package contracts
