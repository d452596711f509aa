package provider

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"strings"

	"github.com/MrEthical07/goAdmit/identity"
)

// ErrNoIdentityInCertificate is returned when a certificate carries neither
// usable URI SANs nor a common name.
var ErrNoIdentityInCertificate = errors.New("certificate carries no identity")

// X509 resolves identities from a client certificate. URI SANs of the form
// "user:alice" or "svc:billing" (URI scheme + opaque part) are collected in
// order; when none exist, the subject common name is used as a single
// free-text identity segment. Certificate-chain validation happens at the
// transport layer before this provider ever sees the leaf.
type X509 struct{}

// NewX509 creates the x509 provider.
func NewX509() X509 {
	return X509{}
}

// Scheme returns "x509".
func (X509) Scheme() string {
	return "x509"
}

// Authenticate parses authData as a DER-encoded certificate and extracts the
// identities it attests to.
func (p X509) Authenticate(_ context.Context, authData []byte) (*identity.Identities, error) {
	cert, err := x509.ParseCertificate(authData)
	if err != nil {
		return nil, fmt.Errorf("parse certificate: %w", err)
	}
	return p.FromCertificate(cert)
}

// FromCertificate extracts identities from an already-parsed certificate.
// Unrecognized URI schemes are kept and degrade to UNKNOWN identities in
// parsing, so a misissued SAN stays visible instead of vanishing.
func (X509) FromCertificate(cert *x509.Certificate) (*identity.Identities, error) {
	if cert == nil {
		return nil, ErrNoIdentityInCertificate
	}

	segments := make([]string, 0, len(cert.URIs))
	for _, u := range cert.URIs {
		if u.Opaque != "" {
			segments = append(segments, u.Scheme+":"+u.Opaque)
		}
	}

	if len(segments) == 0 {
		cn := cert.Subject.CommonName
		if cn == "" {
			return nil, ErrNoIdentityInCertificate
		}
		segments = append(segments, cn)
	}

	return identity.Parse(strings.Join(segments, ",")), nil
}
