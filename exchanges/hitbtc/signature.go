package hitbtc

import (
	"strings"

	"github.com/thrasher-corp/hitbtc/common/crypto"
)

// GenerateSignature signs methodPath followed by body with HMAC-SHA512 using
// secret, returning the lower-cased base64 digest. methodPath is the trading
// URL path, e.g. /api/1/trading/new_order, not the full URL.
func GenerateSignature(secret []byte, methodPath, body string) (string, error) {
	hmac, err := crypto.GetHMAC(crypto.HashSHA512, []byte(methodPath+body), secret)
	if err != nil {
		return "", err
	}
	return strings.ToLower(crypto.Base64Encode(hmac)), nil
}
