package graph

import "errors"

var (
	// ErrStoreUnavailable signals the graph store itself is unreachable.
	// Unlike every other condition it aborts the surrounding batch.
	ErrStoreUnavailable = errors.New("graph store unavailable")

	// ErrUnsupportedProperty is returned when a property value cannot be
	// stored as a graph scalar. It fails the single item, never the batch.
	ErrUnsupportedProperty = errors.New("unsupported property type")

	// ErrClassNodeMissing is returned when an instance-of link targets a
	// class node that has not been seeded yet.
	ErrClassNodeMissing = errors.New("class node missing")

	// ErrNotFound is returned by read operations when no node or edge
	// matches the given key.
	ErrNotFound = errors.New("not found")
)
