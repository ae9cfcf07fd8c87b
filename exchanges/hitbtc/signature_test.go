package hitbtc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/hitbtc/common/crypto"
)

func TestGenerateSignature(t *testing.T) {
	t.Parallel()
	secret, err := crypto.Base64Decode("dGVzdHNlY3JldA==")
	require.NoError(t, err)

	sig, err := GenerateSignature(secret, "/api/1/trading/balance", "nonce=0000000000000001&apikey=abc")
	require.NoError(t, err, "GenerateSignature must not error")
	assert.Equal(t, "/2g/ttkomppoamyk2h6pxpl9vh+tsemtd+azm9ksjhd+/oohfgsrvxvlsc5zrdsyxseyfcitabdxvqz6tylwpg==", sig)

	again, err := GenerateSignature(secret, "/api/1/trading/balance", "nonce=0000000000000001&apikey=abc")
	require.NoError(t, err)
	assert.Equal(t, sig, again, "GenerateSignature must be deterministic")

	other, err := GenerateSignature(secret, "/api/1/trading/balance", "nonce=0000000000000002&apikey=abc")
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)
}
