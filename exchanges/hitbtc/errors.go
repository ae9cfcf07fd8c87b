package hitbtc

import (
	"errors"

	"github.com/thrasher-corp/hitbtc/encoding/json"
	"github.com/thrasher-corp/hitbtc/exchanges/request"
)

// Error kinds returned by the client. ErrConfiguration is returned before any
// network I/O, ErrTransport when the round trip could not be completed. The
// two failure kinds carried on a Response match ErrDecoding and
// ErrApplication.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrTransport     = request.ErrTransport
	ErrDecoding      = errors.New("decoding error")
	ErrApplication   = errors.New("application error")
)

var (
	errCredentialsNotSet = errors.New("api credentials not set")
	errAPIKeyEmpty       = errors.New("api key is empty")
	errAPISecretEmpty    = errors.New("api secret is empty")
	errInvalidPath       = errors.New("invalid endpoint path")
	errInvalidMethod     = errors.New("unsupported http method")
	errInvalidHost       = errors.New("invalid host")
	errInvalidVersion    = errors.New("invalid api version")
	errInvalidSymbol     = errors.New("symbol must be six characters")
	errInvalidTradesBy   = errors.New("trades by must be 'trade_id' or 'ts'")
	errMaxResults        = errors.New("max results must be between 1 and 1000")
	errOrderIDRequired   = errors.New("client order id required")
	errInvalidOrderSide  = errors.New("order side must be 'buy' or 'sell'")
	errInvalidQuantity   = errors.New("order quantity must be positive")
	errPriceRequired     = errors.New("limit orders require a positive price")
	errFieldAbsent       = errors.New("response field absent")
)

// FailureKind classifies a failed Response
type FailureKind uint8

// Failure kinds
const (
	DecodingFailure FailureKind = iota + 1
	ApplicationFailure
)

// String implements the fmt.Stringer interface
func (k FailureKind) String() string {
	switch k {
	case DecodingFailure:
		return "decoding"
	case ApplicationFailure:
		return "application"
	default:
		return "unknown"
	}
}

// Failure is the unsuccessful variant of a Response. Message holds the
// upstream error verbatim for application failures; Detail keeps the raw JSON
// of the upstream error value when there is one.
type Failure struct {
	Kind    FailureKind
	Message string
	Detail  json.RawMessage
}

// Error implements the error interface
func (f *Failure) Error() string {
	return f.Kind.String() + " failure: " + f.Message
}

// Unwrap returns the sentinel matching the failure kind
func (f *Failure) Unwrap() error {
	if f.Kind == DecodingFailure {
		return ErrDecoding
	}
	return ErrApplication
}
