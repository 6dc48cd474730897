// Package schema declares which elements a document may contain and where.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/dshills/blockfmt/internal/engine/tree"
)

// Errors returned by schema registration.
var (
	ErrAlreadyRegistered = errors.New("element already registered")
	ErrEmptyName         = errors.New("element name is empty")
)

// Definition describes one element name.
type Definition struct {
	// Name is the model element name.
	Name string

	// AllowIn lists the parents the element may appear in.
	AllowIn []string

	// AllowText permits text children.
	AllowText bool

	// IsBlock marks a block-level element.
	IsBlock bool
}

// Schema is a registry of element definitions.
type Schema struct {
	mu    sync.RWMutex
	items map[string]Definition
}

// New creates a schema that knows only the document root.
func New() *Schema {
	return &Schema{
		items: map[string]Definition{
			tree.RootName: {Name: tree.RootName},
		},
	}
}

// Register adds a definition.
func (s *Schema) Register(def Definition) error {
	if def.Name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[def.Name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, def.Name)
	}
	def.AllowIn = slices.Clone(def.AllowIn)
	s.items[def.Name] = def
	return nil
}

// Get returns the definition of name.
func (s *Schema) Get(name string) (Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.items[name]
	return def, ok
}

// IsRegistered returns true if name has a definition.
func (s *Schema) IsRegistered(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// IsBlock returns true if name is a registered block element.
func (s *Schema) IsBlock(name string) bool {
	def, ok := s.Get(name)
	return ok && def.IsBlock
}

// CheckChild returns true if child may appear directly in parent. Use
// tree.TextName for text.
func (s *Schema) CheckChild(parent, child string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.items[parent]
	if !ok {
		return false
	}
	if child == tree.TextName {
		return p.AllowText
	}
	c, ok := s.items[child]
	if !ok {
		return false
	}
	return slices.Contains(c.AllowIn, parent)
}

// Names returns all registered names, sorted.
func (s *Schema) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
