package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goAdmit/identity"
)

type staticProvider struct {
	scheme string
	raw    string
}

func (p staticProvider) Scheme() string { return p.scheme }

func (p staticProvider) Authenticate(context.Context, []byte) (*identity.Identities, error) {
	return identity.Parse(p.raw), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(staticProvider{scheme: "static", raw: "user:u"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	p, ok := r.Get("static")
	if !ok {
		t.Fatal("expected provider for scheme static")
	}
	ids, err := p.Authenticate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if ids.Len() != 1 || ids.Ids()[0] != (identity.Identity{Kind: identity.KindUser, Name: "u"}) {
		t.Fatalf("got %+v", ids.Ids())
	}

	if _, ok := r.Get("missing"); ok {
		t.Fatal("expected no provider for unregistered scheme")
	}
}

func TestRegistryRejectsDuplicateScheme(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(staticProvider{scheme: "static"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	err := r.Register(staticProvider{scheme: "static"})
	if !errors.Is(err, ErrDuplicateScheme) {
		t.Fatalf("expected ErrDuplicateScheme, got %v", err)
	}
}

func TestRegistryRejectsEmptyScheme(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(staticProvider{}); !errors.Is(err, ErrEmptyScheme) {
		t.Fatalf("expected ErrEmptyScheme, got %v", err)
	}
}

func TestRegistryFreezeBlocksRegistration(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(staticProvider{scheme: "a"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r.Freeze()

	if err := r.Register(staticProvider{scheme: "b"}); !errors.Is(err, ErrRegistryFrozen) {
		t.Fatalf("expected ErrRegistryFrozen, got %v", err)
	}
	if _, ok := r.Get("a"); !ok {
		t.Fatal("existing registrations must survive Freeze")
	}
}

func TestRegistrySchemesSorted(t *testing.T) {
	r := NewRegistry()
	for _, scheme := range []string{"x509", "token", "static"} {
		if err := r.Register(staticProvider{scheme: scheme}); err != nil {
			t.Fatalf("Register %s failed: %v", scheme, err)
		}
	}

	got := r.Schemes()
	want := []string{"static", "token", "x509"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
