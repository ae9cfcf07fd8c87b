package request

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/thrasher-corp/hitbtc/log"
)

var (
	errRequestSystemIsNil = errors.New("request system is nil")
	errServiceNameUnset   = errors.New("service name unset")
	errRequestItemNil     = errors.New("request item is nil")
	errInvalidPath        = errors.New("invalid path")
	errHTTPClientIsNil    = errors.New("http client is nil")
	errNoProxyURL         = errors.New("no proxy URL supplied")
	errTransportNotSet    = errors.New("transport not set, cannot set proxy")
)

// WithUserAgent sets the user agent sent with every request that does not
// carry its own
func WithUserAgent(ua string) RequesterOption {
	return func(r *Requester) {
		r.UserAgent = ua
	}
}

// New returns a new Requester
func New(name string, httpRequester *http.Client, opts ...RequesterOption) (*Requester, error) {
	if name == "" {
		return nil, errServiceNameUnset
	}
	if httpRequester == nil {
		return nil, errHTTPClientIsNil
	}
	r := &Requester{
		HTTPClient: httpRequester,
		Name:       name,
	}
	for _, o := range opts {
		o(r)
	}
	return r, nil
}

// SendPayload performs exactly one HTTP/HTTPS round trip for the supplied
// item. No retries are attempted; any failure to obtain and read a response is
// returned as a *TransportError.
func (r *Requester) SendPayload(ctx context.Context, i *Item) (*Response, error) {
	if r == nil {
		return nil, errRequestSystemIsNil
	}

	req, err := i.validateRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	verbose := IsVerbose(ctx, i.Verbose)
	if verbose {
		log.Debugf(log.RequestSys, "%s request path: %s", r.Name, i.Path)
		for k, d := range req.Header {
			log.Debugf(log.RequestSys, "%s request header [%s]: %s", r.Name, k, d)
		}
		log.Debugf(log.RequestSys, "%s request type: %s", r.Name, i.Method)
	}

	resp, err := r.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Name: r.Name, Path: i.Path, Err: err}
	}
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Name: r.Name, Path: i.Path, Err: err}
	}

	if i.HTTPDebugging {
		dump, err := httputil.DumpResponse(resp, false)
		if err != nil {
			log.Errorf(log.RequestSys, "DumpResponse invalid response: %v:", err)
		}
		log.Debugf(log.RequestSys, "DumpResponse Headers (%v):\n%s", i.Path, dump)
		log.Debugf(log.RequestSys, "DumpResponse Body (%v):\n %s", i.Path, string(contents))
	}

	if verbose {
		log.Debugf(log.RequestSys, "HTTP status: %s, Code: %v", resp.Status, resp.StatusCode)
		if !i.HTTPDebugging {
			log.Debugf(log.RequestSys, "%s raw response: %s", r.Name, string(contents))
		}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       contents,
	}, nil
}

// validateRequest validates the requester item fields
func (i *Item) validateRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	if i == nil {
		return nil, errRequestItemNil
	}

	if i.Path == "" {
		return nil, errInvalidPath
	}

	req, err := http.NewRequestWithContext(ctx, i.Method, i.Path, i.Body)
	if err != nil {
		return nil, err
	}

	if i.HTTPDebugging {
		// Err not evaluated due to validation check above
		dump, _ := httputil.DumpRequestOut(req, true)
		log.Debugf(log.RequestSys, "DumpRequest:\n%s", dump)
	}

	for k, v := range i.Headers {
		req.Header.Add(k, v)
	}

	if r.UserAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Add(userAgent, r.UserAgent)
	}

	return req, nil
}

// SetProxy sets a proxy address to the client transport
func (r *Requester) SetProxy(p *url.URL) error {
	if p == nil || p.String() == "" {
		return errNoProxyURL
	}

	t, ok := r.HTTPClient.Transport.(*http.Transport)
	if !ok {
		return errTransportNotSet
	}
	t.Proxy = http.ProxyURL(p)
	t.TLSHandshakeTimeout = proxyTLSTimeout
	return nil
}
