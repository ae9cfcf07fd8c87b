package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHMAC(t *testing.T) {
	t.Parallel()
	expectedsha256 := []byte{
		54, 68, 6, 12, 32, 158, 80, 22, 142, 8, 131, 111, 248, 145, 17, 202, 224,
		59, 135, 206, 11, 170, 154, 197, 183, 28, 150, 79, 168, 105, 62, 102,
	}
	expectedsha512 := []byte{
		249, 212, 31, 38, 23, 3, 93, 220, 81, 209, 214, 112, 92, 75, 126, 40, 109,
		95, 247, 182, 210, 54, 217, 224, 199, 252, 129, 226, 97, 201, 245, 220, 37,
		201, 240, 15, 137, 236, 75, 6, 97, 12, 190, 31, 53, 153, 223, 17, 214, 11,
		153, 203, 49, 29, 158, 217, 204, 93, 179, 109, 140, 216, 202, 71,
	}
	expectedsha512384 := []byte{
		121, 203, 109, 105, 178, 68, 179, 57, 21, 217, 76, 82, 94, 100, 210, 1, 55,
		201, 8, 232, 194, 168, 165, 58, 192, 26, 193, 167, 254, 183, 172, 4, 189,
		158, 158, 150, 173, 33, 119, 125, 94, 13, 125, 89, 241, 184, 166, 128,
	}

	sha256, err := GetHMAC(HashSHA256, []byte("Hello,World"), []byte("1234"))
	require.NoError(t, err)
	if !bytes.Equal(sha256, expectedsha256) {
		t.Errorf("GetHMAC error: Expected '%x'. Actual '%x'", expectedsha256, sha256)
	}
	sha512, err := GetHMAC(HashSHA512, []byte("Hello,World"), []byte("1234"))
	require.NoError(t, err)
	if !bytes.Equal(sha512, expectedsha512) {
		t.Errorf("GetHMAC error: Expected '%x'. Actual '%x'", expectedsha512, sha512)
	}
	sha512384, err := GetHMAC(HashSHA512_384, []byte("Hello,World"), []byte("1234"))
	require.NoError(t, err)
	if !bytes.Equal(sha512384, expectedsha512384) {
		t.Errorf("GetHMAC error: Expected '%x'. Actual '%x'", expectedsha512384, sha512384)
	}

	_, err = GetHMAC(1337, []byte("Hello,World"), []byte("1234"))
	assert.ErrorIs(t, err, errUnsupportedHashType)
}

func TestBase64(t *testing.T) {
	t.Parallel()
	decoded, err := Base64Decode("dGVzdHNlY3JldA==")
	require.NoError(t, err, "Base64Decode must not error")
	assert.Equal(t, "testsecret", string(decoded))
	assert.Equal(t, "dGVzdHNlY3JldA==", Base64Encode(decoded))

	_, err = Base64Decode("-")
	assert.Error(t, err, "Base64Decode should error on invalid input")
}
