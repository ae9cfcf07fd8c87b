package hitbtc

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/thrasher-corp/hitbtc/exchanges/params"
)

const (
	publicScheme  = "http://"
	privateScheme = "https://"

	formContentType = "application/x-www-form-urlencoded"
)

// BuildPublic assembles an unsigned GET request for a public market data
// endpoint
func (h *HitBTC) BuildPublic(path string, p *params.Values) (*Request, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}
	query, err := p.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	urlPath := h.publicPath(path)
	u := publicScheme + h.cfg.Host + urlPath
	if query != "" {
		u += "?" + query
	}
	return &Request{
		Method: http.MethodGet,
		URL:    u,
		Path:   urlPath,
	}, nil
}

// BuildPrivate assembles a signed request for a trading endpoint. The caller
// parameters are copied, nonce and apikey appended, the result encoded and
// signed, and the signature appended last before encoding again for
// transmission. GET requests carry the parameters as the query string, POST
// requests as a form body.
func (h *HitBTC) BuildPrivate(path string, p *params.Values, method string) (*Request, error) {
	if h.creds == nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, errCredentialsNotSet)
	}
	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidMethod, method)
	}
	if err := checkPath(path); err != nil {
		return nil, err
	}

	vals := p.Clone()
	for _, k := range []string{"nonce", "apikey", "signature"} {
		vals.Del(k)
	}
	vals.Set("nonce", h.nonce.Next().String())
	vals.Set("apikey", h.creds.APIKey)
	unsigned, err := vals.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	urlPath := h.tradingPath(path)
	signature, err := GenerateSignature(h.creds.secret, urlPath, unsigned)
	if err != nil {
		return nil, err
	}
	vals.Set("signature", signature)
	signed, err := vals.Encode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	req := &Request{
		Method:       method,
		URL:          privateScheme + h.cfg.Host + urlPath,
		Path:         urlPath,
		Private:      true,
		unsignedBody: unsigned,
	}
	if method == http.MethodGet {
		req.URL += "?" + signed
		return req, nil
	}
	req.Body = signed
	req.Headers = map[string]string{"Content-Type": formContentType}
	return req, nil
}

func (h *HitBTC) publicPath(path string) string {
	return "/api/" + h.cfg.Version + "/public/" + path
}

func (h *HitBTC) tradingPath(path string) string {
	return "/api/" + h.cfg.Version + "/trading/" + path
}

// checkPath ensures path is a relative endpoint path made up of unreserved URL
// characters and '/' separated, non-dot segments
func checkPath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: %w: empty", ErrConfiguration, errInvalidPath)
	}
	for _, seg := range strings.Split(path, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidPath, path)
		}
		for i := 0; i < len(seg); i++ {
			if !isUnreserved(seg[i]) {
				return fmt.Errorf("%w: %w: %q", ErrConfiguration, errInvalidPath, path)
			}
		}
	}
	return nil
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}
