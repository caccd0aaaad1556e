package ontology

import (
	"fmt"
	"strings"
	"sync"
)

// ErrSchemaNotFound is returned when a class or relationship name has no
// entry in the registry. It signals a registry/data mismatch and is fatal
// for the item that triggered the lookup, never for a whole batch.
var ErrSchemaNotFound = fmt.Errorf("ontology: schema not found")

// Registry is the immutable catalog of classes and relationship types. It is
// built once at startup and injected into every component that needs schema
// lookups; it is never mutated while serving sync requests.
type Registry struct {
	classes       map[string]Class
	relationships map[string]Relationship
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry built from the ontology catalog.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(classes, relationships)
	})
	return defaultRegistry
}

// NewRegistry builds a registry from explicit catalogs. Tests use this to
// construct small registries.
func NewRegistry(cls []Class, rels []Relationship) *Registry {
	r := &Registry{
		classes:       make(map[string]Class, len(cls)),
		relationships: make(map[string]Relationship, len(rels)),
	}
	for _, c := range cls {
		r.classes[c.Name] = c
	}
	for _, rel := range rels {
		r.relationships[rel.Name] = rel
	}
	return r
}

// ClassByName looks up a class definition.
func (r *Registry) ClassByName(name string) (Class, error) {
	c, ok := r.classes[name]
	if !ok {
		return Class{}, fmt.Errorf("%w: class %q", ErrSchemaNotFound, name)
	}
	return c, nil
}

// RelationshipByName looks up a relationship definition by registry key.
func (r *Registry) RelationshipByName(name string) (Relationship, error) {
	rel, ok := r.relationships[name]
	if !ok {
		return Relationship{}, fmt.Errorf("%w: relationship %q", ErrSchemaNotFound, name)
	}
	return rel, nil
}

// Classes returns every class except the root, in no particular order.
func (r *Registry) Classes() []Class {
	out := make([]Class, 0, len(r.classes))
	for _, c := range r.classes {
		if c.Name == RootClassName {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Relationships returns every declared relationship.
func (r *Registry) Relationships() []Relationship {
	out := make([]Relationship, 0, len(r.relationships))
	for _, rel := range r.relationships {
		out = append(out, rel)
	}
	return out
}

// LabelChain returns the label path from the given class up to the root,
// starting with the class itself.
func (r *Registry) LabelChain(name string) ([]string, error) {
	c, err := r.ClassByName(name)
	if err != nil {
		return nil, err
	}
	chain := []string{c.Name}
	for c.Parent != "" {
		c, err = r.ClassByName(c.Parent)
		if err != nil {
			return nil, err
		}
		chain = append(chain, c.Name)
	}
	return chain, nil
}

// ClassNodeID returns the canonical graph-store id of a class definition
// node, e.g. "candidate-class" for Candidate. The root uses RootNodeID.
func ClassNodeID(className string) string {
	if className == RootClassName {
		return RootNodeID
	}
	return strings.ToLower(className) + "-class"
}
