package graph

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/examgraph/exam-graph-backend/internal/ontology"
)

// InitializeOntology prepares the graph store for sync traffic: uniqueness
// constraints and search indexes per class, the Thing root node, one class
// definition node per ontology class, and IS_A edges from each class node to
// the root. It runs at startup, before any sync request is served, and is
// idempotent.
func InitializeOntology(ctx context.Context, exec CypherExecutor, reg *ontology.Registry, log *zap.Logger) error {
	if err := createConstraintsAndIndexes(ctx, exec, reg, log); err != nil {
		return err
	}
	if err := createClassNodes(ctx, exec, reg, log); err != nil {
		return err
	}
	log.Info("graph ontology initialized")
	return nil
}

func createConstraintsAndIndexes(ctx context.Context, exec CypherExecutor, reg *ontology.Registry, log *zap.Logger) error {
	for _, class := range reg.Classes() {
		stmt := fmt.Sprintf(
			"CREATE CONSTRAINT %s_key IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			strings.ToLower(class.Name), class.Name, class.KeyField)
		if _, err := exec.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("create constraint for %s: %w", class.Name, err)
		}
	}

	// Root node keys on the generic id property.
	rootConstraint := fmt.Sprintf(
		"CREATE CONSTRAINT thing_id IF NOT EXISTS FOR (t:%s) REQUIRE t.id IS UNIQUE",
		ontology.RootClassName)
	if _, err := exec.Run(ctx, rootConstraint, nil); err != nil {
		return fmt.Errorf("create root constraint: %w", err)
	}

	// Indexes for the most frequently searched properties.
	indexes := []string{
		"CREATE INDEX candidate_name IF NOT EXISTS FOR (c:Candidate) ON (c.full_name)",
		"CREATE INDEX candidate_email IF NOT EXISTS FOR (c:Candidate) ON (c.email)",
		"CREATE INDEX school_name IF NOT EXISTS FOR (s:School) ON (s.school_name)",
		"CREATE INDEX exam_name IF NOT EXISTS FOR (e:Exam) ON (e.exam_name)",
		"CREATE INDEX exam_date IF NOT EXISTS FOR (e:Exam) ON (e.start_date)",
	}
	for _, stmt := range indexes {
		if _, err := exec.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	log.Debug("graph constraints and indexes ensured")
	return nil
}

func createClassNodes(ctx context.Context, exec CypherExecutor, reg *ontology.Registry, log *zap.Logger) error {
	rootQuery := fmt.Sprintf(`MERGE (t:%s {id: $id})
ON CREATE SET t.created_at = datetime()
SET t.name = $name, t.description = $description, t.updated_at = datetime()
RETURN t`, ontology.RootClassName)

	_, err := exec.Run(ctx, rootQuery, map[string]any{
		"id":          ontology.RootNodeID,
		"name":        ontology.RootClassName,
		"description": "Root node representing any entity in the ontology",
	})
	if err != nil {
		return fmt.Errorf("create root node: %w", err)
	}

	for _, class := range reg.Classes() {
		classQuery := fmt.Sprintf(`MERGE (c:%s:%s {id: $id})
ON CREATE SET c.created_at = datetime()
SET c.name = $name, c.description = $description, c.updated_at = datetime()
RETURN c`, class.Name, ontology.ClassLabel)

		_, err := exec.Run(ctx, classQuery, map[string]any{
			"id":          ontology.ClassNodeID(class.Name),
			"name":        class.Name,
			"description": class.Description,
		})
		if err != nil {
			return fmt.Errorf("create class node %s: %w", class.Name, err)
		}

		parentID := ontology.RootNodeID
		if class.Parent != "" {
			parentID = ontology.ClassNodeID(class.Parent)
		}
		isAQuery := fmt.Sprintf(`MATCH (c:%s {id: $child_id})
MATCH (p {id: $parent_id})
MERGE (c)-[r:%s]->(p)
RETURN r`, ontology.ClassLabel, ontology.IsAType)

		_, err = exec.Run(ctx, isAQuery, map[string]any{
			"child_id":  ontology.ClassNodeID(class.Name),
			"parent_id": parentID,
		})
		if err != nil {
			return fmt.Errorf("create IS_A for %s: %w", class.Name, err)
		}

		log.Debug("class node ensured", zap.String("class", class.Name))
	}

	return nil
}
