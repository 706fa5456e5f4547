package http

import (
	"errors"
	"net/http"

	credentialDomain "github.com/allisson/hawkpair/internal/credential/domain"
)

// ErrInvalidMAC is returned by MACVerifier implementations when the request signature
// does not match.
var ErrInvalidMAC = errors.New("invalid request mac")

// MACVerifier checks the request signature against the verified credential. Computing
// and comparing the MAC belongs to the transport layer; this service only supplies the key.
type MACVerifier interface {
	VerifyMAC(r *http.Request, header *HawkHeader, assertion *credentialDomain.Assertion) error
}

// PassthroughMACVerifier accepts any request that carries a mac attribute. It is used
// when signature checking happens upstream, for example at a gateway.
type PassthroughMACVerifier struct{}

// VerifyMAC only requires the mac attribute to be present.
func (PassthroughMACVerifier) VerifyMAC(_ *http.Request, header *HawkHeader, _ *credentialDomain.Assertion) error {
	if header == nil || header.MAC == "" {
		return ErrInvalidMAC
	}
	return nil
}
