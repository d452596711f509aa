package provider

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/MrEthical07/goAdmit/identity"
)

var (
	// ErrRegistryFrozen is returned by Register after Freeze.
	ErrRegistryFrozen = errors.New("provider registry frozen")
	// ErrDuplicateScheme is returned when two providers claim one scheme.
	ErrDuplicateScheme = errors.New("provider scheme already registered")
	// ErrEmptyScheme is returned for providers that report an empty scheme.
	ErrEmptyScheme = errors.New("provider scheme cannot be empty")
)

// AuthenticationProvider resolves raw credential material into the identities
// it attests to.
type AuthenticationProvider interface {
	// Scheme names the credential type this provider handles (e.g. "x509").
	Scheme() string
	// Authenticate resolves authData into identities, or fails when the
	// credential is invalid. It must not consult authorization state.
	Authenticate(ctx context.Context, authData []byte) (*identity.Identities, error)
}

// Registry maps scheme names to provider instances. Populate it at startup
// with direct constructor calls, then Freeze it; lookups after Freeze need no
// locking discipline from callers.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]AuthenticationProvider
	frozen    bool
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]AuthenticationProvider),
	}
}

// Register adds a provider under its scheme. Must be called before Freeze.
func (r *Registry) Register(p AuthenticationProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	scheme := p.Scheme()
	if scheme == "" {
		return ErrEmptyScheme
	}
	if _, exists := r.providers[scheme]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateScheme, scheme)
	}

	r.providers[scheme] = p
	return nil
}

// Get returns the provider registered for scheme, or false.
func (r *Registry) Get(scheme string) (AuthenticationProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[scheme]
	return p, ok
}

// Schemes returns the registered scheme names, sorted.
func (r *Registry) Schemes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.providers))
	for scheme := range r.providers {
		out = append(out, scheme)
	}
	sort.Strings(out)
	return out
}

// Freeze prevents further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}
