package graph

import (
	"context"
	"fmt"
	"strings"
)

// NodeRef addresses one node by its primary label and natural key. KeyField
// is the class's key property name (e.g. "candidate_id"); Key is the
// relational primary key reused verbatim.
type NodeRef struct {
	Label    string
	KeyField string
	Key      string
}

// Node is the canonical projected representation of one relational record.
type Node struct {
	Ref NodeRef
	// ExtraLabels are set in addition to Ref.Label (the OntologyInstance
	// marker, and any further labels from the class chain).
	ExtraLabels []string
	Props       map[string]any
}

// Edge is a directed, typed connection between two nodes, unique per
// (type, source, target).
type Edge struct {
	Type   string
	Source NodeRef
	Target NodeRef
	Props  map[string]any
}

// EdgeStatus is the tri-state outcome of an edge upsert.
type EdgeStatus int

const (
	// EdgeWritten: both endpoints existed and the edge was merged.
	EdgeWritten EdgeStatus = iota
	// EdgeSkipped: at least one endpoint is absent; nothing was written.
	// Not an error, a later full sync is expected to heal it.
	EdgeSkipped
)

// Writer performs idempotent node and edge upserts against the graph store.
// All writes are single atomic MERGE statements so concurrent upserts of the
// same key resolve in the store, not in application code.
type Writer struct {
	exec CypherExecutor
}

func NewWriter(exec CypherExecutor) *Writer {
	return &Writer{exec: exec}
}

// UpsertNode creates the node on first sight (setting created_at once) and
// updates its properties on every subsequent call (refreshing updated_at).
func (w *Writer) UpsertNode(ctx context.Context, n Node) error {
	props, err := sanitizeProps(n.Props)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "MERGE (n:%s {%s: $key})\n", n.Ref.Label, n.Ref.KeyField)
	b.WriteString("ON CREATE SET n.created_at = datetime()\n")
	b.WriteString("SET ")
	for _, label := range n.ExtraLabels {
		fmt.Fprintf(&b, "n:%s, ", label)
	}
	b.WriteString("n += $props, n.updated_at = datetime()\n")
	b.WriteString("RETURN count(n) AS merged")

	_, err = w.exec.Run(ctx, b.String(), map[string]any{
		"key":   n.Ref.Key,
		"props": props,
	})
	if err != nil {
		return fmt.Errorf("upsert node %s/%s: %w", n.Ref.Label, n.Ref.Key, err)
	}
	return nil
}

// UpsertEdge merges the edge identified by (type, source, target). Endpoint
// existence is checked inside the same statement: if either endpoint is
// missing the MATCH produces no rows and the result is EdgeSkipped.
func (w *Writer) UpsertEdge(ctx context.Context, e Edge) (EdgeStatus, error) {
	props, err := sanitizeProps(e.Props)
	if err != nil {
		return EdgeSkipped, err
	}

	cypher := fmt.Sprintf(`MATCH (a:%s {%s: $source_key})
MATCH (b:%s {%s: $target_key})
MERGE (a)-[r:%s]->(b)
ON CREATE SET r.created_at = datetime()
SET r += $props, r.updated_at = datetime()
RETURN count(r) AS merged`,
		e.Source.Label, e.Source.KeyField,
		e.Target.Label, e.Target.KeyField,
		e.Type)

	rows, err := w.exec.Run(ctx, cypher, map[string]any{
		"source_key": e.Source.Key,
		"target_key": e.Target.Key,
		"props":      props,
	})
	if err != nil {
		return EdgeSkipped, fmt.Errorf("upsert edge %s %s->%s: %w", e.Type, e.Source.Key, e.Target.Key, err)
	}
	if len(rows) == 0 {
		return EdgeSkipped, nil
	}
	return EdgeWritten, nil
}

// DeleteNode removes the node and every edge touching it, in either
// direction. Deleting an absent node is a no-op.
func (w *Writer) DeleteNode(ctx context.Context, ref NodeRef) error {
	cypher := fmt.Sprintf("MATCH (n:%s {%s: $key}) DETACH DELETE n", ref.Label, ref.KeyField)
	if _, err := w.exec.Run(ctx, cypher, map[string]any{"key": ref.Key}); err != nil {
		return fmt.Errorf("delete node %s/%s: %w", ref.Label, ref.Key, err)
	}
	return nil
}

// DeleteEdge removes one typed edge between the given pair.
func (w *Writer) DeleteEdge(ctx context.Context, e Edge) error {
	cypher := fmt.Sprintf(`MATCH (a:%s {%s: $source_key})-[r:%s]->(b:%s {%s: $target_key})
DELETE r`,
		e.Source.Label, e.Source.KeyField,
		e.Type,
		e.Target.Label, e.Target.KeyField)
	_, err := w.exec.Run(ctx, cypher, map[string]any{
		"source_key": e.Source.Key,
		"target_key": e.Target.Key,
	})
	if err != nil {
		return fmt.Errorf("delete edge %s %s->%s: %w", e.Type, e.Source.Key, e.Target.Key, err)
	}
	return nil
}

// GetNode returns the property bag of the node with the given key, or
// ErrNotFound.
func (w *Writer) GetNode(ctx context.Context, ref NodeRef) (map[string]any, error) {
	cypher := fmt.Sprintf("MATCH (n:%s {%s: $key}) RETURN properties(n) AS props", ref.Label, ref.KeyField)
	rows, err := w.exec.Run(ctx, cypher, map[string]any{"key": ref.Key})
	if err != nil {
		return nil, fmt.Errorf("get node %s/%s: %w", ref.Label, ref.Key, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: node %s/%s", ErrNotFound, ref.Label, ref.Key)
	}
	props, _ := rows[0]["props"].(map[string]any)
	return props, nil
}
