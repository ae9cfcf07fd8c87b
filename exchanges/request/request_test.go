package request

import (
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testURL  string
	hitCount atomic.Int32
)

func TestMain(m *testing.M) {
	sm := http.NewServeMux()
	sm.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, err := io.WriteString(w, `{"response":true}`)
		if err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/error", func(w http.ResponseWriter, req *http.Request) {
		hitCount.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, err := io.WriteString(w, `{"error":true}`)
		if err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/echo", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			log.Fatal(err)
		}
		w.Header().Set("X-Method", req.Method)
		w.Header().Set("X-User-Agent", req.UserAgent())
		w.Header().Set("X-Content-Type", req.Header.Get("Content-Type"))
		_, err = io.WriteString(w, req.URL.RawQuery+"|"+string(body))
		if err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/timeout", func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(time.Millisecond * 100)
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	server := httptest.NewServer(sm)
	testURL = server.URL
	issues := m.Run()
	server.Close()
	os.Exit(issues)
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New("", new(http.Client))
	assert.ErrorIs(t, err, errServiceNameUnset)

	_, err = New("test", nil)
	assert.ErrorIs(t, err, errHTTPClientIsNil)

	r, err := New("test", new(http.Client), WithUserAgent("hitbtc-go"))
	require.NoError(t, err)
	assert.Equal(t, "hitbtc-go", r.UserAgent)
}

func TestCheckRequest(t *testing.T) {
	t.Parallel()
	r, err := New("TestRequest", new(http.Client))
	require.NoError(t, err)

	var check *Item
	_, err = check.validateRequest(context.Background(), r)
	assert.ErrorIs(t, err, errRequestItemNil)

	check = &Item{}
	_, err = check.validateRequest(context.Background(), r)
	assert.ErrorIs(t, err, errInvalidPath)

	check.Path = testURL
	check.Method = " " // Forces method check
	_, err = check.validateRequest(context.Background(), r)
	assert.Error(t, err)

	check.Method = http.MethodPost
	check.Headers = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	r.UserAgent = "r00t axxs"
	req, err := check.validateRequest(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, "r00t axxs", req.Header.Get(userAgent))
	assert.Equal(t, "application/x-www-form-urlencoded", req.Header.Get("Content-Type"))
}

func TestSendPayload(t *testing.T) {
	t.Parallel()
	var r *Requester
	_, err := r.SendPayload(context.Background(), &Item{})
	assert.ErrorIs(t, err, errRequestSystemIsNil)

	r, err = New("test", new(http.Client), WithUserAgent("hitbtc-go"))
	require.NoError(t, err)

	resp, err := r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"response":true}`, string(resp.Body))

	resp, err = r.SendPayload(WithVerbose(context.Background()), &Item{
		Method:        http.MethodPost,
		Path:          testURL + "/echo?a=1",
		Headers:       map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
		Body:          strings.NewReader("b=2&c=3"),
		HTTPDebugging: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "a=1|b=2&c=3", string(resp.Body))
	assert.Equal(t, http.MethodPost, resp.Header.Get("X-Method"))
	assert.Equal(t, "hitbtc-go", resp.Header.Get("X-User-Agent"))
	assert.Equal(t, "application/x-www-form-urlencoded", resp.Header.Get("X-Content-Type"))
}

func TestSendPayloadNon2xx(t *testing.T) {
	t.Parallel()
	r, err := New("test", new(http.Client))
	require.NoError(t, err)

	before := hitCount.Load()
	resp, err := r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: testURL + "/error", Verbose: true})
	require.NoError(t, err, "a non 2xx status must not be a transport error")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":true}`, string(resp.Body))
	assert.Equal(t, before+1, hitCount.Load(), "SendPayload must not retry")
}

func TestSendPayloadTransportError(t *testing.T) {
	t.Parallel()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	r, err := New("test", new(http.Client))
	require.NoError(t, err)
	_, err = r.SendPayload(context.Background(), &Item{Method: http.MethodGet, Path: "http://" + addr})
	require.ErrorIs(t, err, ErrTransport)
	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "test", te.Name)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()
	_, err = r.SendPayload(ctx, &Item{Method: http.MethodGet, Path: testURL + "/timeout"})
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSetProxy(t *testing.T) {
	t.Parallel()
	r, err := New("test", &http.Client{Transport: new(http.Transport)})
	require.NoError(t, err)
	u, err := url.Parse("https://www.google.com")
	require.NoError(t, err)
	require.NoError(t, r.SetProxy(u))
	assert.ErrorIs(t, r.SetProxy(&url.URL{}), errNoProxyURL)

	r, err = New("test", new(http.Client))
	require.NoError(t, err)
	assert.ErrorIs(t, r.SetProxy(u), errTransportNotSet)
}
