package graph

import (
	"context"
	"fmt"

	"github.com/examgraph/exam-graph-backend/internal/ontology"
)

// Linker ties projected nodes to their ontology class nodes with an
// INSTANCE_OF edge. Class nodes are seeded separately (see schema.go); if the
// class node is absent the link fails with ErrClassNodeMissing, which callers
// treat as a per-item failure.
type Linker struct {
	exec CypherExecutor
}

func NewLinker(exec CypherExecutor) *Linker {
	return &Linker{exec: exec}
}

// LinkToClass merges the instance-of edge from the given node to its class
// definition node. Re-linking an already linked node is a no-op.
func (l *Linker) LinkToClass(ctx context.Context, node NodeRef, className string) error {
	classID := ontology.ClassNodeID(className)

	cypher := fmt.Sprintf(`MATCH (n:%s {%s: $key})
MATCH (c:%s {id: $class_id})
MERGE (n)-[r:%s]->(c)
RETURN count(r) AS linked`,
		node.Label, node.KeyField,
		ontology.ClassLabel,
		ontology.InstanceOfType)

	rows, err := l.exec.Run(ctx, cypher, map[string]any{
		"key":      node.Key,
		"class_id": classID,
	})
	if err != nil {
		return fmt.Errorf("link %s/%s to class: %w", node.Label, node.Key, err)
	}
	if len(rows) > 0 {
		return nil
	}

	// No rows: either the class node or the instance is missing. Tell them
	// apart so the caller can report the right reason.
	check := fmt.Sprintf("MATCH (c:%s {id: $class_id}) RETURN count(c) AS n", ontology.ClassLabel)
	checkRows, err := l.exec.Run(ctx, check, map[string]any{"class_id": classID})
	if err != nil {
		return fmt.Errorf("link %s/%s to class: %w", node.Label, node.Key, err)
	}
	if len(checkRows) == 0 || asInt(checkRows[0]["n"]) == 0 {
		return fmt.Errorf("%w: %s", ErrClassNodeMissing, classID)
	}
	return fmt.Errorf("%w: node %s/%s", ErrNotFound, node.Label, node.Key)
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
