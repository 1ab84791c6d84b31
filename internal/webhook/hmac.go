package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// signaturePrefix is GitHub's X-Hub-Signature-256 scheme tag.
const signaturePrefix = "sha256="

// verifySignature verifies an HMAC-SHA256 signature against the raw
// request body.
//
// This function uses constant-time comparison (crypto/subtle) to
// prevent timing attacks: decoded signatures of unequal length are
// rejected up front, and equal-length signatures are compared in time
// independent of where the first mismatching byte sits.
//
// Returns nil if the signature is valid, an error otherwise. All
// errors are generic to prevent information leakage.
func verifySignature(body []byte, signature, secret string) error {
	if secret == "" {
		return fmt.Errorf("signature verification failed")
	}
	if signature == "" {
		return fmt.Errorf("signature verification failed")
	}

	if !strings.HasPrefix(signature, signaturePrefix) {
		return fmt.Errorf("signature verification failed")
	}
	provided, err := hex.DecodeString(strings.TrimPrefix(signature, signaturePrefix))
	if err != nil {
		return fmt.Errorf("signature verification failed")
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	if subtle.ConstantTimeCompare(expected, provided) != 1 {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

// computeSignature returns the hex-encoded HMAC-SHA256 of body. Used by
// tests to construct valid inbound requests.
func computeSignature(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// formatSignature wraps a hex digest in the header scheme tag.
func formatSignature(hexSig string) string {
	return signaturePrefix + hexSig
}
