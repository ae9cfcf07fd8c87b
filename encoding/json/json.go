// Package json is the single import point for JSON encoding across the
// module so that the underlying implementation can be swapped in one place.
package json

import "encoding/json"

type (
	// RawMessage is a raw encoded JSON value
	RawMessage = json.RawMessage
	// SyntaxError is a description of a JSON syntax error
	SyntaxError = json.SyntaxError
)

var (
	// Marshal returns the JSON encoding of v
	Marshal = json.Marshal
	// MarshalIndent is like Marshal but applies Indent to format the output
	MarshalIndent = json.MarshalIndent
	// Unmarshal parses the JSON-encoded data and stores the result in the value pointed to by v
	Unmarshal = json.Unmarshal
	// Valid reports whether data is a valid JSON encoding
	Valid = json.Valid
)
