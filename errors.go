package goAdmit

import "errors"

var (
	// ErrDocumentMalformed is returned by DecodeDocument when the payload is
	// not validly structured for the ACL document shape. Decoding is
	// all-or-nothing; a malformed document never produces a partial result.
	ErrDocumentMalformed = errors.New("acl document malformed")
	// ErrBuilderUsed is returned when Build is called twice on the same Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrStoreRequired is returned by Build when no document store was provided.
	ErrStoreRequired = errors.New("document store required")
	// ErrUnknownToggle is returned by the Management surface for a toggle name
	// it does not manage.
	ErrUnknownToggle = errors.New("unknown management toggle")
)
