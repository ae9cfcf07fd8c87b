package request

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	userAgent       = "User-Agent"
	proxyTLSTimeout = 15 * time.Second
)

// ErrTransport is wrapped by every failure to complete the network round trip
var ErrTransport = errors.New("transport error")

// Requester dispatches HTTP requests for a named service
type Requester struct {
	HTTPClient *http.Client
	Name       string
	UserAgent  string
}

// RequesterOption is a function option that can be applied to a Requester
type RequesterOption func(*Requester)

// Item is a temporary item for sending a single request
type Item struct {
	Method        string
	Path          string
	Headers       map[string]string
	Body          io.Reader
	Verbose       bool
	HTTPDebugging bool
}

// Response holds the status, headers and fully read body of a completed
// round trip. A non 2xx status is still a completed round trip.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// TransportError describes a request that failed before a complete response
// could be read
type TransportError struct {
	Name string
	Path string
	Err  error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Name, e.Path, ErrTransport, e.Err)
}

// Unwrap allows errors.Is to match ErrTransport and the underlying cause
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}
