// Package manifest loads route tables from YAML and registers them into a
// routetree.Tree.
//
// A manifest lists route patterns with the name of the page that serves
// them, and the redirect rules applied before resolution:
//
//	routes:
//	  - path: /
//	    page: home
//	  - path: /users/{id}
//	    page: user
//	redirects:
//	  - from: ^/u/(.*)$
//	    to: /users/$1
//
// Routes and redirects are registered in file order.
package manifest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vitalvas/kroute/routetree"
)

var (
	// ErrDuplicateRoute is returned by Apply when the same path appears twice.
	ErrDuplicateRoute = errors.New("duplicate route")

	// ErrInvalidManifest is returned when a manifest fails validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Manifest is a route table.
type Manifest struct {
	Routes    []Route    `yaml:"routes"`
	Redirects []Redirect `yaml:"redirects,omitempty"`
}

// Route maps a path pattern to a page name.
type Route struct {
	Path string `yaml:"path"`
	Page string `yaml:"page"`
}

// Redirect rewrites paths matching From into To.
type Redirect struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Load decodes and validates a manifest. Unknown fields are rejected.
func Load(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("manifest: decode: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// LoadFile reads the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Validate checks that every route and redirect is complete. Pattern
// syntax is checked when the manifest is applied.
func (m *Manifest) Validate() error {
	for i, r := range m.Routes {
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("manifest: %w: routes[%d]: path %q must start with '/'", ErrInvalidManifest, i, r.Path)
		}
		if r.Page == "" {
			return fmt.Errorf("manifest: %w: routes[%d]: missing page for %q", ErrInvalidManifest, i, r.Path)
		}
	}

	for i, r := range m.Redirects {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("manifest: %w: redirects[%d]: from and to are required", ErrInvalidManifest, i)
		}
	}

	return nil
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	return yaml.Marshal(m)
}

// Apply registers every route and redirect of m into tree. page maps a
// page name to the payload stored for its routes. Apply stops at the
// first error; a path listed twice yields ErrDuplicateRoute.
func Apply[T any](m *Manifest, tree *routetree.Tree[T], page func(name string) (T, error)) error {
	for _, r := range m.Routes {
		payload, err := page(r.Page)
		if err != nil {
			return fmt.Errorf("manifest: route %q: %w", r.Path, err)
		}

		ok, err := tree.Register(r.Path, payload)
		if err != nil {
			return fmt.Errorf("manifest: route %q: %w", r.Path, err)
		}
		if !ok {
			return fmt.Errorf("manifest: %w: %q", ErrDuplicateRoute, r.Path)
		}
	}

	for _, r := range m.Redirects {
		if err := tree.RegisterRedirect(r.From, r.To); err != nil {
			return fmt.Errorf("manifest: redirect %q: %w", r.From, err)
		}
	}

	return nil
}
