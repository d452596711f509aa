// Package provider turns raw connection credentials into the
// [identity.Identities] value the authorization engine consumes.
//
// Providers are looked up by scheme through an explicit [Registry] populated
// at startup with direct constructor calls; there is no dynamic loading of
// implementations by name. Two providers ship with the package: [X509], which
// derives identities from a client certificate, and [Token], which reads them
// from a signed JWT claim.
//
// # What this package must NOT do
//
//   - Make authorization decisions — it only resolves who is connecting.
//   - Validate transport-level properties (TLS handshake, IP matching); it
//     receives credential material already extracted from the connection.
package provider
