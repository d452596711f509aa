package goAdmit

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MrEthical07/goAdmit/identity"
)

// Permission is a bitmask of independently grantable permission flags.
type Permission uint32

const (
	// PermRead grants read access.
	PermRead Permission = 1 << iota
	// PermWrite grants write access.
	PermWrite
	// PermCreate grants create access.
	PermCreate
	// PermDelete grants delete access.
	PermDelete
	// PermAdmin marks an identity as allowed to perform administrative
	// operations; see [Engine.IsAdmin].
	PermAdmin
)

// Has reports whether every bit of flag is set.
func (p Permission) Has(flag Permission) bool {
	return p&flag == flag
}

// RuleTypeEnsemble is the only rule variant currently defined: a permission
// bitmask granted to a list of identities for the whole ensemble. The
// document format discriminates rules on the aclType tag so that further
// variants can be added without breaking existing documents.
const RuleTypeEnsemble = "ensemble"

// Rule grants a permission bitmask to an ordered list of identities.
type Rule struct {
	Permission Permission
	Identities []identity.Identity
}

// Document is the entire authorization policy at a point in time. It always
// replaces the previous policy wholesale; it is never patched incrementally.
type Document struct {
	Rules []Rule
	// Shadow selects fail-open mode: unauthorized connections are accepted
	// but tallied separately. Documents that omit the flag default to true.
	Shadow bool
}

type wireDocument struct {
	ACL    []json.RawMessage `json:"acl"`
	Shadow *bool             `json:"shadow"`
}

type wireRule struct {
	ACLType    string         `json:"aclType"`
	Permission *uint32        `json:"permission"`
	Identities []wireIdentity `json:"identities"`
}

type wireIdentity struct {
	Type *string `json:"type"`
	Name string  `json:"name"`
}

// DecodeDocument deserializes the JSON-shaped ACL document. Unknown fields at
// any level are ignored for forward compatibility, but structural problems
// (invalid JSON, an unrecognized aclType, a rule missing its permission or
// identities, an unrecognized identity type token) fail the whole document
// with [ErrDocumentMalformed]. Decoding never yields a partial document.
func DecodeDocument(data []byte) (*Document, error) {
	var wire wireDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDocumentMalformed, err)
	}

	doc := &Document{
		Rules:  make([]Rule, 0, len(wire.ACL)),
		Shadow: true,
	}
	if wire.Shadow != nil {
		doc.Shadow = *wire.Shadow
	}

	for i, raw := range wire.ACL {
		rule, err := decodeRule(raw)
		if err != nil {
			return nil, fmt.Errorf("acl entry %d: %w", i, err)
		}
		doc.Rules = append(doc.Rules, rule)
	}

	return doc, nil
}

// decodeRule dispatches on the aclType tag. Unknown tags are a hard failure,
// not a skip: a document carrying a rule this version cannot interpret must
// not be applied at all.
func decodeRule(raw json.RawMessage) (Rule, error) {
	var wire wireRule
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Rule{}, fmt.Errorf("%w: %v", ErrDocumentMalformed, err)
	}

	switch wire.ACLType {
	case RuleTypeEnsemble:
		return decodeEnsembleRule(wire)
	default:
		return Rule{}, fmt.Errorf("%w: unrecognized aclType %q", ErrDocumentMalformed, wire.ACLType)
	}
}

func decodeEnsembleRule(wire wireRule) (Rule, error) {
	if wire.Permission == nil {
		return Rule{}, fmt.Errorf("%w: ensemble rule missing permission", ErrDocumentMalformed)
	}
	if wire.Identities == nil {
		return Rule{}, fmt.Errorf("%w: ensemble rule missing identities", ErrDocumentMalformed)
	}

	rule := Rule{
		Permission: Permission(*wire.Permission),
		Identities: make([]identity.Identity, 0, len(wire.Identities)),
	}
	for _, entry := range wire.Identities {
		kind, err := decodeKindToken(entry.Type)
		if err != nil {
			return Rule{}, err
		}
		rule.Identities = append(rule.Identities, identity.Identity{Kind: kind, Name: entry.Name})
	}

	return rule, nil
}

// decodeKindToken maps a document type token to a Kind. Tokens are matched
// case-insensitively. An absent token decodes to KindUnspecified, a distinct
// "no kind declared" representation, not the free-text KindUnknown fallback.
func decodeKindToken(token *string) (identity.Kind, error) {
	if token == nil {
		return identity.KindUnspecified, nil
	}
	switch strings.ToLower(*token) {
	case "user":
		return identity.KindUser, nil
	case "service_identity":
		return identity.KindService, nil
	case "host":
		return identity.KindHost, nil
	case "host_tier":
		return identity.KindHostTier, nil
	case "job":
		return identity.KindJob, nil
	case "unknown_type":
		return identity.KindUnknown, nil
	default:
		return identity.KindUnspecified, fmt.Errorf("%w: unrecognized identity type %q", ErrDocumentMalformed, *token)
	}
}
