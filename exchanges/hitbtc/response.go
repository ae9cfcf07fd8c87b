package hitbtc

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/thrasher-corp/hitbtc/encoding/json"
)

// Payload is the raw JSON value of a successful response
type Payload json.RawMessage

// Get returns the value found at the supplied key path. The boolean is false
// when any key along the path is absent; an absent field is never reported as
// the enclosing value.
func (p Payload) Get(keys ...string) (Payload, bool) {
	if len(keys) == 0 {
		return p, len(p) > 0
	}
	v, _, ok := getRaw(p, keys...)
	if !ok {
		return nil, false
	}
	return Payload(v), true
}

// Decode unmarshals the payload into v
func (p Payload) Decode(v any) error {
	if err := json.Unmarshal(p, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	return nil
}

// String returns the JSON text of the payload
func (p Payload) String() string {
	return string(p)
}

// Response is the normalised outcome of a call. Exactly one of the payload or
// the failure is set.
type Response struct {
	StatusCode int
	// Raw is the unmodified response body
	Raw []byte

	payload Payload
	failure *Failure
}

// Payload returns the success payload, the boolean is false for a failed
// response
func (r *Response) Payload() (Payload, bool) {
	if r == nil || r.failure != nil {
		return nil, false
	}
	return r.payload, true
}

// Failure returns the failure, nil on success
func (r *Response) Failure() *Failure {
	if r == nil {
		return nil
	}
	return r.failure
}

// Err returns the failure as an error, nil on success
func (r *Response) Err() error {
	if f := r.Failure(); f != nil {
		return f
	}
	return nil
}

// Decode unmarshals the payload, or the value at the supplied key path within
// it, into v. A failed response returns its *Failure.
func (r *Response) Decode(v any, keys ...string) error {
	if err := r.Err(); err != nil {
		return err
	}
	p, ok := r.payload.Get(keys...)
	if !ok {
		return fmt.Errorf("%w: %w: %v", ErrDecoding, errFieldAbsent, keys)
	}
	return p.Decode(v)
}

// getRaw returns the raw JSON of the value at keys. String values keep their
// surrounding quotes so the result is always valid JSON.
func getRaw(data []byte, keys ...string) ([]byte, jsonparser.ValueType, bool) {
	v, typ, offset, err := jsonparser.Get(data, keys...)
	if err != nil || typ == jsonparser.NotExist {
		return nil, jsonparser.NotExist, false
	}
	if typ == jsonparser.String {
		// jsonparser strips the quotes and reports the offset past the closing
		// quote
		v = data[offset-len(v)-2 : offset]
	}
	return v, typ, true
}
