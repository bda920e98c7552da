package activation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// SignatureLength is the number of alphabet characters kept from the tag.
const SignatureLength = 4

// Sign returns the HMAC-SHA256 tag of message under key.
func Sign(key, message []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// signPayload computes the encoded signature segment for a payload.
func signPayload(key []byte, payload string) string {
	return EncodeToBase(Sign(key, []byte(payload)), SignatureLength)
}

// KeyID is a short non-secret fingerprint of key for logs and artifacts.
func KeyID(key []byte) string {
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:4])
}
