package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/hitbtc/encoding/json"
	"github.com/thrasher-corp/hitbtc/exchanges/hitbtc"
)

func newPublicServer(t *testing.T) string {
	t.Helper()
	sm := http.NewServeMux()
	sm.HandleFunc("/api/1/public/time", func(w http.ResponseWriter, _ *http.Request) {
		_, err := io.WriteString(w, `{"timestamp":1700000000123}`)
		assert.NoError(t, err)
	})
	sm.HandleFunc("/api/1/public/ETHBTC/ticker", func(w http.ResponseWriter, _ *http.Request) {
		_, err := io.WriteString(w, `{"ask":"0.0349","bid":"0.0348","last":"0.03487","timestamp":1700000000123}`)
		assert.NoError(t, err)
	})
	server := httptest.NewServer(sm)
	t.Cleanup(server.Close)
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	return u.Host
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	output = &buf
	t.Cleanup(func() { output = os.Stdout })
	err := newApp().Run(append([]string{"hitbtccli"}, args...))
	return buf.String(), err
}

func TestServerTimeCommand(t *testing.T) {
	addr := newPublicServer(t)
	out, err := run(t, "--host", addr, "time")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, float64(1700000000123), got["timestamp"])
}

func TestTickerCommand(t *testing.T) {
	addr := newPublicServer(t)
	out, err := run(t, "--host", addr, "ticker", "ethbtc")
	require.NoError(t, err)

	var ticker hitbtc.Ticker
	require.NoError(t, json.Unmarshal([]byte(out), &ticker))
	assert.Equal(t, "0.03487", ticker.Last.String())

	_, err = run(t, "--host", addr, "ticker")
	assert.ErrorIs(t, err, errSymbolRequired)

	_, err = run(t, "--host", addr, "ticker", "--symbol", "BTC")
	assert.ErrorIs(t, err, hitbtc.ErrConfiguration)
}

func TestPrivateCommandsRequireCredentials(t *testing.T) {
	t.Setenv("HITBTC_KEY", "")
	t.Setenv("HITBTC_SECRET", "")
	_, err := run(t, "--host", "127.0.0.1:1", "balance")
	assert.ErrorIs(t, err, hitbtc.ErrConfiguration)

	_, err = run(t, "neworder", "--symbol", "ETHBTC", "--side", "buy", "--quantity", "abc")
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = run(t, "cancelorder", "--symbol", "ETHBTC")
	assert.ErrorIs(t, err, errSideRequired)
}

func TestConfigFlag(t *testing.T) {
	addr := newPublicServer(t)
	path := filepath.Join(t.TempDir(), "key.yml")
	require.NoError(t, os.WriteFile(path, []byte("host: "+addr+"\n"), 0o600))
	out, err := run(t, "--config", path, "time")
	require.NoError(t, err)
	assert.Contains(t, out, "1700000000123")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yml"), "time")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
