package meetings

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// EncryptChallenge answers Zoom's endpoint.url_validation handshake: the
// plain token hashed with the webhook secret, hex encoded.
func EncryptChallenge(secretToken, plainToken string) string {
	mac := hmac.New(sha256.New, []byte(secretToken))
	mac.Write([]byte(plainToken))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks the x-zm-signature header on a webhook delivery.
// The signed message is "v0:<timestamp>:<raw body>".
func VerifySignature(secretToken, signature, timestamp string, body []byte) bool {
	mac := hmac.New(sha256.New, []byte(secretToken))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
