package sync

import (
	"github.com/examgraph/exam-graph-backend/internal/source"
)

// RelHint describes one relationship derivable from a single record: the
// record holds a foreign key naming the other endpoint, and the ontology
// names the edge. When the foreign key field is absent or empty the hint is
// silently inactive for that record.
type RelHint struct {
	// Rel is the ontology relationship name (registry key, not necessarily
	// the wire type).
	Rel string
	// FKField is the record field holding the other endpoint's key.
	FKField string
	// RecordIsTarget flips the record to the target side of the edge; by
	// default the record is the source.
	RecordIsTarget bool
	// PropFields are record fields copied onto the edge as properties.
	PropFields []string
}

// Descriptor is everything the generic syncer needs to project one entity
// type: where its rows come from, which ontology class they instantiate, and
// which edges each row implies.
type Descriptor struct {
	// EntityType is the wire name used in API routes and status keys,
	// e.g. "candidates".
	EntityType string
	// Class is the ontology class name, e.g. "Candidate".
	Class string
	// Queries is the SQL triple for this entity.
	Queries source.Queries
	// PropFields are the record fields copied onto the node. The class key
	// field is always carried and need not be listed.
	PropFields []string
	// Hints are the relationships derivable from one record.
	Hints []RelHint
}
