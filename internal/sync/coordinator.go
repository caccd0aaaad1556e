package sync

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/examgraph/exam-graph-backend/internal/graph"
	"github.com/examgraph/exam-graph-backend/internal/ontology"
)

// BulkReport is the outcome of a full sync run.
type BulkReport struct {
	RunID         string                 `json:"run_id"`
	StartedAt     time.Time              `json:"started_at"`
	Duration      string                 `json:"duration"`
	Nodes         map[string]BatchResult `json:"nodes"`
	Associations  map[string]RelCounts   `json:"associations"`
	Relationships map[string]RelCounts   `json:"relationships"`
	Backbone      BackboneReport         `json:"backbone"`
}

// BackboneReport summarizes an ontology backbone pass.
type BackboneReport struct {
	InstancesLinked int `json:"instances_linked"`
	CatalogEdges    int `json:"catalog_edges"`
}

// Coordinator sequences sync work across entity types: single-entity requests
// dispatch to the generic syncer, and full runs walk every type in dependency
// order before the relationship and backbone passes.
type Coordinator struct {
	syncer *Syncer
	exec   graph.CypherExecutor
	reg    *ontology.Registry
	status *StatusTracker
	log    *zap.Logger
}

func NewCoordinator(syncer *Syncer, exec graph.CypherExecutor, reg *ontology.Registry, status *StatusTracker, log *zap.Logger) *Coordinator {
	return &Coordinator{
		syncer: syncer,
		exec:   exec,
		reg:    reg,
		status: status,
		log:    log,
	}
}

// SyncNode syncs one record of the given entity type.
func (c *Coordinator) SyncNode(ctx context.Context, entityType, id string) error {
	d, err := DescriptorFor(entityType)
	if err != nil {
		return err
	}
	return c.syncer.SyncNodeByID(ctx, d, id)
}

// SyncNodes syncs up to limit records of the given entity type.
func (c *Coordinator) SyncNodes(ctx context.Context, entityType string, limit int) (BatchResult, error) {
	d, err := DescriptorFor(entityType)
	if err != nil {
		return BatchResult{}, err
	}
	return c.syncer.SyncAllNodes(ctx, d, limit)
}

// SyncRelationships writes the edges derivable from one record.
func (c *Coordinator) SyncRelationships(ctx context.Context, entityType, id string) (RelCounts, error) {
	d, err := DescriptorFor(entityType)
	if err != nil {
		return RelCounts{}, err
	}
	return c.syncer.SyncRelationshipsByID(ctx, d, id)
}

// SyncAllRelationships runs the edge pass for one entity type.
func (c *Coordinator) SyncAllRelationships(ctx context.Context, entityType string, limit int) (RelCounts, error) {
	d, err := DescriptorFor(entityType)
	if err != nil {
		return RelCounts{}, err
	}
	return c.syncer.SyncAllRelationships(ctx, d, limit)
}

// SyncAssociations replays the join tables (exam registrations, school-major
// offerings, exam-subject inclusions) as edges. Both endpoints were synced by
// the node phase, so skips here point at records missing upstream.
func (c *Coordinator) SyncAssociations(ctx context.Context, limit int) (map[string]RelCounts, error) {
	out := make(map[string]RelCounts, len(associations))
	for _, d := range associations {
		counts, err := c.syncer.SyncAllRelationships(ctx, d, limit)
		out[d.EntityType] = counts
		if err != nil {
			return out, fmt.Errorf("sync %s: %w", d.EntityType, err)
		}
	}
	return out, nil
}

// BulkSyncAll runs the whole pipeline: every node batch in dependency order,
// the registration edges, the per-entity relationship passes, and finally the
// ontology backbone. Per-item failures are reported, not fatal; the run
// aborts only when the graph store goes away.
func (c *Coordinator) BulkSyncAll(ctx context.Context, limit int) (BulkReport, error) {
	run := c.status.Begin(ctx, "bulk")
	report := BulkReport{
		RunID:         run.ID,
		StartedAt:     run.StartedAt,
		Nodes:         make(map[string]BatchResult, len(entityOrder)),
		Relationships: make(map[string]RelCounts, len(entityOrder)),
	}

	c.log.Info("bulk sync started", zap.String("run_id", run.ID), zap.Int("limit", limit))

	for _, entityType := range entityOrder {
		res, err := c.SyncNodes(ctx, entityType, limit)
		report.Nodes[entityType] = res
		if err != nil {
			c.status.Finish(ctx, run, report, err)
			return report, fmt.Errorf("bulk sync %s nodes: %w", entityType, err)
		}
	}

	assocCounts, err := c.SyncAssociations(ctx, limit)
	report.Associations = assocCounts
	if err != nil {
		c.status.Finish(ctx, run, report, err)
		return report, fmt.Errorf("bulk sync associations: %w", err)
	}

	for _, entityType := range entityOrder {
		d, _ := DescriptorFor(entityType)
		if len(d.Hints) == 0 {
			continue
		}
		counts, err := c.syncer.SyncAllRelationships(ctx, d, limit)
		report.Relationships[entityType] = counts
		if err != nil {
			c.status.Finish(ctx, run, report, err)
			return report, fmt.Errorf("bulk sync %s relationships: %w", entityType, err)
		}
	}

	backbone, err := c.SyncOntologyBackbone(ctx)
	report.Backbone = backbone
	if err != nil {
		c.status.Finish(ctx, run, report, err)
		return report, fmt.Errorf("bulk sync backbone: %w", err)
	}

	report.Duration = time.Since(run.StartedAt).String()
	c.status.Finish(ctx, run, report, nil)
	c.log.Info("bulk sync complete",
		zap.String("run_id", run.ID),
		zap.String("duration", report.Duration))
	return report, nil
}

// SyncOntologyBackbone repairs the ontology structure around the instance
// data: any instance node that lost its class link gets it back, and the
// class-to-class relationship catalog is rewritten from the registry.
func (c *Coordinator) SyncOntologyBackbone(ctx context.Context) (BackboneReport, error) {
	var report BackboneReport

	for _, class := range c.reg.Classes() {
		cypher := fmt.Sprintf(`MATCH (n:%s:%s)
WHERE NOT (n)-[:%s]->(:%s)
MATCH (c:%s {id: $class_id})
MERGE (n)-[:%s]->(c)
RETURN count(n) AS linked`,
			class.Name, ontology.InstanceLabel,
			ontology.InstanceOfType, ontology.ClassLabel,
			ontology.ClassLabel,
			ontology.InstanceOfType)

		rows, err := c.exec.Run(ctx, cypher, map[string]any{
			"class_id": ontology.ClassNodeID(class.Name),
		})
		if err != nil {
			return report, fmt.Errorf("repair instance links for %s: %w", class.Name, err)
		}
		if len(rows) > 0 {
			report.InstancesLinked += int(asCount(rows[0]["linked"]))
		}
	}

	for _, rel := range c.reg.Relationships() {
		cypher := fmt.Sprintf(`MATCH (s:%s {id: $source_id})
MATCH (t:%s {id: $target_id})
MERGE (s)-[r:%s {relationship_type: $rel_type}]->(t)
SET r.name = $name, r.description = $description
RETURN count(r) AS merged`,
			ontology.ClassLabel, ontology.ClassLabel, ontology.DomainRelationType)

		rows, err := c.exec.Run(ctx, cypher, map[string]any{
			"source_id":   ontology.ClassNodeID(rel.Source),
			"target_id":   ontology.ClassNodeID(rel.Target),
			"rel_type":    rel.Type,
			"name":        rel.Name,
			"description": rel.Description,
		})
		if err != nil {
			return report, fmt.Errorf("write catalog edge %s: %w", rel.Name, err)
		}
		if len(rows) > 0 {
			report.CatalogEdges += int(asCount(rows[0]["merged"]))
		}
	}

	c.log.Info("ontology backbone synced",
		zap.Int("instances_linked", report.InstancesLinked),
		zap.Int("catalog_edges", report.CatalogEdges))
	return report, nil
}

func asCount(v any) int64 {
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
