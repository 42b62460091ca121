package testvector

import (
	"math/big"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// ParseDERSignature splits an ASN.1 DER Ecdsa-Sig-Value into r and s. Many
// Wycheproof signatures are deliberately malformed, so ok is false for them
// rather than an error.
func ParseDERSignature(sig []byte) (r, s *big.Int, ok bool) {
	var inner cryptobyte.String
	r, s = new(big.Int), new(big.Int)
	input := cryptobyte.String(sig)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(r) ||
		!inner.ReadASN1Integer(s) ||
		!inner.Empty() {
		return nil, nil, false
	}
	return r, s, true
}
