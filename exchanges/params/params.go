package params

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedValue is returned when a parameter holds a value that cannot be
// rendered as a single query string scalar
var ErrUnsupportedValue = errors.New("unsupported parameter value")

// Values is an ordered set of request parameters. Unlike url.Values the
// insertion order of keys is retained, which allows the exact same byte
// sequence to be produced for signing and for transmission.
type Values struct {
	keys []string
	vals map[string]any
}

// New returns an empty parameter set
func New() *Values {
	return &Values{vals: make(map[string]any)}
}

// Set stores a value against key. An existing key is overwritten in place and
// keeps its original position.
func (v *Values) Set(key string, value any) {
	if v.vals == nil {
		v.vals = make(map[string]any)
	}
	if _, ok := v.vals[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.vals[key] = value
}

// Get returns the value stored against key
func (v *Values) Get(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	val, ok := v.vals[key]
	return val, ok
}

// Has reports whether key is present
func (v *Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Del removes key from the set
func (v *Values) Del(key string) {
	if v == nil {
		return
	}
	if _, ok := v.vals[key]; !ok {
		return
	}
	delete(v.vals, key)
	for i := range v.keys {
		if v.keys[i] == key {
			v.keys = append(v.keys[:i], v.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}
	return append([]string(nil), v.keys...)
}

// Len returns the amount of stored parameters
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	return len(v.keys)
}

// Clone returns an independent copy of the parameter set. A nil receiver
// returns an empty set.
func (v *Values) Clone() *Values {
	c := New()
	if v == nil {
		return c
	}
	c.keys = append(c.keys, v.keys...)
	for k, val := range v.vals {
		c.vals[k] = val
	}
	return c
}

// Encode renders the set as key=value pairs joined by '&' in insertion order,
// escaping both keys and values
func (v *Values) Encode() (string, error) {
	if v.Len() == 0 {
		return "", nil
	}
	var sb strings.Builder
	for i, k := range v.keys {
		s, err := FormatValue(v.vals[k])
		if err != nil {
			return "", fmt.Errorf("parameter %q: %w", k, err)
		}
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(s))
	}
	return sb.String(), nil
}

// FormatValue converts a scalar parameter value to its string form
func FormatValue(value any) (string, error) {
	switch val := value.(type) {
	case string:
		return val, nil
	case bool:
		return strconv.FormatBool(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int8:
		return strconv.FormatInt(int64(val), 10), nil
	case int16:
		return strconv.FormatInt(int64(val), 10), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(val), 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case decimal.Decimal:
		return val.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
}
