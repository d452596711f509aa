package identity

import "strings"

// Kind classifies an identity. The zero value is KindUnspecified, which is
// only produced by policy documents that omit the type token entirely; it is
// distinct from KindUnknown, which free-text parsing assigns to segments with
// an unrecognized prefix.
type Kind int

const (
	// KindUnspecified marks an identity declared without a kind token.
	KindUnspecified Kind = iota
	// KindUser is a human principal.
	KindUser
	// KindService is a service identity.
	KindService
	// KindHost is a single machine.
	KindHost
	// KindHostTier is a named group of machines.
	KindHostTier
	// KindJob is a scheduled workload.
	KindJob
	// KindUnknown is assigned to free-text segments whose prefix is not recognized.
	KindUnknown
)

// Prefix returns the short textual prefix used in the canonical string form.
// KindUnknown and KindUnspecified have no prefix, so their canonical form
// starts with a colon.
func (k Kind) Prefix() string {
	switch k {
	case KindUser:
		return "user"
	case KindService:
		return "svc"
	case KindHost:
		return "host"
	case KindHostTier:
		return "host_tier"
	case KindJob:
		return "job"
	default:
		return ""
	}
}

// KindFromPrefix maps one of the five known prefixes to its Kind. It reports
// false for anything else, including the empty string.
func KindFromPrefix(prefix string) (Kind, bool) {
	switch prefix {
	case "user":
		return KindUser, true
	case "svc":
		return KindService, true
	case "host":
		return KindHost, true
	case "host_tier":
		return KindHostTier, true
	case "job":
		return KindJob, true
	default:
		return KindUnspecified, false
	}
}

// Identity is an immutable (kind, name) principal. It is comparable and is
// used directly as a permission-index key; equality is exact and
// case-sensitive on both fields.
type Identity struct {
	Kind Kind
	Name string
}

// String returns the canonical form, prefix + ":" + name. For KindUnknown the
// name already contains the whole original segment, so the result gains a
// leading colon relative to the input. That asymmetry is intentional: nothing
// a client sent is silently dropped.
func (id Identity) String() string {
	return id.Kind.Prefix() + ":" + id.Name
}

// Identities is the ordered list of identities parsed from one raw string,
// together with the raw string itself. Values are immutable after Parse.
type Identities struct {
	raw string
	ids []Identity
}

// Parse splits raw on commas and parses each segment as prefix:name.
//
// Only the first colon of a segment splits it; everything after stays in the
// name. A segment without a colon, or with a prefix that is not one of the
// five known kinds, becomes a KindUnknown identity whose name is the whole
// segment. Trailing empty segments produce no identities, but an entirely
// empty input produces a single empty KindUnknown identity rather than none.
func Parse(raw string) *Identities {
	parts := strings.Split(raw, ",")
	if raw != "" {
		for len(parts) > 0 && parts[len(parts)-1] == "" {
			parts = parts[:len(parts)-1]
		}
	}

	ids := make([]Identity, 0, len(parts))
	for _, part := range parts {
		sep := strings.IndexByte(part, ':')
		if sep >= 0 {
			if kind, ok := KindFromPrefix(part[:sep]); ok {
				ids = append(ids, Identity{Kind: kind, Name: part[sep+1:]})
				continue
			}
		}
		ids = append(ids, Identity{Kind: KindUnknown, Name: part})
	}

	return &Identities{raw: raw, ids: ids}
}

// Ids returns the parsed identities in input order. The slice is shared with
// the receiver and must not be mutated.
func (s *Identities) Ids() []Identity {
	if s == nil {
		return nil
	}
	return s.ids
}

// Len returns the number of parsed identities. A nil receiver has length zero.
func (s *Identities) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// String returns the original raw string, not a re-join of the parsed
// identities. The two usually agree but are not guaranteed to for malformed
// input.
func (s *Identities) String() string {
	if s == nil {
		return ""
	}
	return s.raw
}

// Canonical returns the comma-joined canonical forms of the parsed
// identities. Useful for logging what the parser actually saw.
func (s *Identities) Canonical() string {
	if s == nil || len(s.ids) == 0 {
		return ""
	}
	var b strings.Builder
	for i, id := range s.ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(id.String())
	}
	return b.String()
}
