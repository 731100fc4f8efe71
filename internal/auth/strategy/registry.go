package strategy

import (
	"fmt"
	"sort"

	"auth-gateway/internal/auth"
)

// Redirector is implemented by strategies that start with a redirect to
// an external authorization page.
type Redirector interface {
	Strategy
	AuthCodeURL(state string, codeChallenge string) string
}

// Registry holds all configured strategies and allows lookup by name.
// It performs no auth logic itself.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry registers the given strategies by name. A later strategy
// with a duplicate name replaces the earlier one.
func NewRegistry(list ...Strategy) *Registry {
	m := make(map[string]Strategy, len(list))
	for _, s := range list {
		m[s.Name()] = s
	}
	return &Registry{strategies: m}
}

// Get returns the strategy by name or auth.ErrNoSuchStrategy.
func (r *Registry) Get(name string) (Strategy, error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", auth.ErrNoSuchStrategy, name)
	}
	return s, nil
}

// Redirector returns the named strategy if it supports the redirect
// leg of a federated login.
func (r *Registry) Redirector(name string) (Redirector, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	rd, ok := s.(Redirector)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not redirect", auth.ErrNoSuchStrategy, name)
	}
	return rd, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
