// Package identity models the principals presented on a connection attempt:
// a typed (kind, name) pair and the ordered list of such pairs parsed from a
// raw, comma-delimited identity string.
//
// Parsing is deliberately forgiving. A segment with an unrecognized prefix is
// never dropped; it degrades to a [KindUnknown] identity whose name is the
// entire original segment, so malformed input stays visible in logs and
// policy lookups. The raw string is retained verbatim on [Identities] because
// malformed input does not round-trip through the structured form.
//
// # What this package must NOT do
//
//   - Perform I/O or consult policy state — it is a pure value layer.
//   - Apply any escaping to the comma separator; escaping, if any, belongs to
//     CLI-facing helpers outside this module.
package identity
