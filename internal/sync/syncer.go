package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/examgraph/exam-graph-backend/internal/graph"
	"github.com/examgraph/exam-graph-backend/internal/ontology"
	"github.com/examgraph/exam-graph-backend/internal/source"
)

// BatchResult summarizes one node batch.
type BatchResult struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// EdgeTally counts outcomes for one relationship type.
type EdgeTally struct {
	Written int `json:"written"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// RelCounts summarizes one relationship pass: overall totals plus a per
// relationship-type breakdown, so callers can tell which edge a skip or
// failure hit. Skipped counts edges whose endpoint was not in the graph yet;
// they are expected to heal on a later full sync and are not failures.
type RelCounts struct {
	Written int                  `json:"written"`
	Skipped int                  `json:"skipped"`
	Failed  int                  `json:"failed"`
	ByType  map[string]EdgeTally `json:"by_type,omitempty"`
}

// tally records one edge outcome under its relationship name.
func (c *RelCounts) tally(rel string, t EdgeTally) {
	c.Written += t.Written
	c.Skipped += t.Skipped
	c.Failed += t.Failed
	c.mergeType(rel, t)
}

func (c *RelCounts) add(other RelCounts) {
	c.Written += other.Written
	c.Skipped += other.Skipped
	c.Failed += other.Failed
	for rel, t := range other.ByType {
		c.mergeType(rel, t)
	}
}

func (c *RelCounts) mergeType(rel string, t EdgeTally) {
	if c.ByType == nil {
		c.ByType = make(map[string]EdgeTally)
	}
	cur := c.ByType[rel]
	cur.Written += t.Written
	cur.Skipped += t.Skipped
	cur.Failed += t.Failed
	c.ByType[rel] = cur
}

// Syncer projects relational records of any registered entity type into the
// graph. It is stateless and safe for concurrent use; batch work fans out
// over a bounded worker pool.
type Syncer struct {
	src         *source.SQLSource
	writer      *graph.Writer
	linker      *graph.Linker
	reg         *ontology.Registry
	log         *zap.Logger
	workers     int
	itemTimeout time.Duration
}

func NewSyncer(src *source.SQLSource, writer *graph.Writer, linker *graph.Linker, reg *ontology.Registry, log *zap.Logger, workers int, itemTimeout time.Duration) *Syncer {
	if workers < 1 {
		workers = 1
	}
	return &Syncer{
		src:         src,
		writer:      writer,
		linker:      linker,
		reg:         reg,
		log:         log,
		workers:     workers,
		itemTimeout: itemTimeout,
	}
}

// DescriptorFor resolves a wire entity type, e.g. "candidates".
func DescriptorFor(entityType string) (Descriptor, error) {
	d, ok := descriptors[entityType]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownEntity, entityType)
	}
	return d, nil
}

// SyncNodeByID projects a single record into its graph node and links it to
// its class definition node.
func (s *Syncer) SyncNodeByID(ctx context.Context, d Descriptor, id string) error {
	rec, err := s.src.FetchByID(ctx, d.Queries, id)
	if err != nil {
		return err
	}
	return s.syncNode(ctx, d, rec)
}

// SyncAllNodes projects up to limit records (all of them when limit is zero).
// Per-item failures are counted and logged; the batch only aborts when the
// graph store itself is unreachable.
func (s *Syncer) SyncAllNodes(ctx context.Context, d Descriptor, limit int) (BatchResult, error) {
	records, err := s.src.FetchAll(ctx, d.Queries, limit)
	if err != nil {
		return BatchResult{}, err
	}
	res := BatchResult{Total: len(records)}

	var success, failed atomic.Int64
	err = s.forEach(ctx, records, func(itemCtx context.Context, rec source.Record) error {
		if err := s.syncNode(itemCtx, d, rec); err != nil {
			if errors.Is(err, graph.ErrStoreUnavailable) {
				return err
			}
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %s", ErrTimeout, err)
			}
			failed.Add(1)
			s.log.Warn("node sync failed",
				zap.String("entity", d.EntityType),
				zap.String("id", rec.String(s.keyField(d))),
				zap.Error(err))
			return nil
		}
		success.Add(1)
		return nil
	})

	res.Success = int(success.Load())
	res.Failed = int(failed.Load())
	if err != nil {
		return res, err
	}

	s.log.Info("node batch complete",
		zap.String("entity", d.EntityType),
		zap.Int("total", res.Total),
		zap.Int("success", res.Success),
		zap.Int("failed", res.Failed))
	return res, nil
}

// SyncRelationshipsByID writes every edge derivable from one record's
// foreign keys.
func (s *Syncer) SyncRelationshipsByID(ctx context.Context, d Descriptor, id string) (RelCounts, error) {
	rec, err := s.src.FetchByID(ctx, d.Queries, id)
	if err != nil {
		return RelCounts{}, err
	}
	return s.syncRecordEdges(ctx, d, rec)
}

// SyncAllRelationships runs the edge pass over up to limit records.
func (s *Syncer) SyncAllRelationships(ctx context.Context, d Descriptor, limit int) (RelCounts, error) {
	records, err := s.src.FetchAll(ctx, d.Queries, limit)
	if err != nil {
		return RelCounts{}, err
	}

	var counts RelCounts
	var mu sync.Mutex
	err = s.forEach(ctx, records, func(itemCtx context.Context, rec source.Record) error {
		c, err := s.syncRecordEdges(itemCtx, d, rec)
		mu.Lock()
		counts.add(c)
		mu.Unlock()
		if err != nil && errors.Is(err, graph.ErrStoreUnavailable) {
			return err
		}
		return nil
	})
	if err != nil {
		return counts, err
	}

	s.log.Info("relationship batch complete",
		zap.String("entity", d.EntityType),
		zap.Int("written", counts.Written),
		zap.Int("skipped", counts.Skipped),
		zap.Int("failed", counts.Failed))
	return counts, nil
}

func (s *Syncer) syncNode(ctx context.Context, d Descriptor, rec source.Record) error {
	class, err := s.reg.ClassByName(d.Class)
	if err != nil {
		return err
	}
	key := rec.String(class.KeyField)
	if key == "" {
		return fmt.Errorf("%w: %s record has no %s", ErrMissingIdentifier, d.EntityType, class.KeyField)
	}

	props := make(map[string]any, len(d.PropFields))
	for _, f := range d.PropFields {
		if rec.Has(f) {
			props[f] = rec.Value(f)
		}
	}

	// Instances carry the instance marker plus every ancestor class label
	// between their class and the root; the root label itself stays off.
	chain, err := s.reg.LabelChain(class.Name)
	if err != nil {
		return err
	}
	extraLabels := []string{ontology.InstanceLabel}
	for _, label := range chain[1:] {
		if label == ontology.RootClassName {
			continue
		}
		extraLabels = append(extraLabels, label)
	}

	node := graph.Node{
		Ref: graph.NodeRef{
			Label:    class.Name,
			KeyField: class.KeyField,
			Key:      key,
		},
		ExtraLabels: extraLabels,
		Props:       props,
	}
	if err := s.writer.UpsertNode(ctx, node); err != nil {
		return err
	}
	return s.linker.LinkToClass(ctx, node.Ref, class.Name)
}

// syncRecordEdges writes one record's hinted edges. Edge failures are
// per-edge: one bad hint does not stop the others, but a store outage does.
func (s *Syncer) syncRecordEdges(ctx context.Context, d Descriptor, rec source.Record) (RelCounts, error) {
	var counts RelCounts
	for _, hint := range d.Hints {
		status, err := s.syncHint(ctx, d, rec, hint)
		if err != nil {
			if errors.Is(err, graph.ErrStoreUnavailable) {
				return counts, err
			}
			counts.tally(hint.Rel, EdgeTally{Failed: 1})
			s.log.Warn("edge sync failed",
				zap.String("entity", d.EntityType),
				zap.String("rel", hint.Rel),
				zap.Error(err))
			continue
		}
		switch status {
		case graph.EdgeWritten:
			counts.tally(hint.Rel, EdgeTally{Written: 1})
		case graph.EdgeSkipped:
			counts.tally(hint.Rel, EdgeTally{Skipped: 1})
		}
	}
	return counts, nil
}

// syncHint builds and writes the edge one hint implies for one record.
// A record that does not carry the hint's foreign key yields EdgeSkipped.
func (s *Syncer) syncHint(ctx context.Context, d Descriptor, rec source.Record, hint RelHint) (graph.EdgeStatus, error) {
	fk := rec.String(hint.FKField)
	if fk == "" {
		return graph.EdgeSkipped, nil
	}

	rel, err := s.reg.RelationshipByName(hint.Rel)
	if err != nil {
		return graph.EdgeSkipped, err
	}
	sourceClass, err := s.reg.ClassByName(rel.Source)
	if err != nil {
		return graph.EdgeSkipped, err
	}
	targetClass, err := s.reg.ClassByName(rel.Target)
	if err != nil {
		return graph.EdgeSkipped, err
	}

	recordClass, err := s.reg.ClassByName(d.Class)
	if err != nil {
		return graph.EdgeSkipped, err
	}
	recordKey := rec.String(recordClass.KeyField)
	if recordKey == "" {
		return graph.EdgeSkipped, fmt.Errorf("%w: %s record has no %s", ErrMissingIdentifier, d.EntityType, recordClass.KeyField)
	}

	edge := graph.Edge{
		Type: rel.Type,
		Source: graph.NodeRef{
			Label:    sourceClass.Name,
			KeyField: sourceClass.KeyField,
		},
		Target: graph.NodeRef{
			Label:    targetClass.Name,
			KeyField: targetClass.KeyField,
		},
	}
	if hint.RecordIsTarget {
		edge.Source.Key = fk
		edge.Target.Key = recordKey
	} else {
		edge.Source.Key = recordKey
		edge.Target.Key = fk
	}

	if len(hint.PropFields) > 0 {
		edge.Props = make(map[string]any, len(hint.PropFields))
		for _, f := range hint.PropFields {
			if rec.Has(f) {
				edge.Props[f] = rec.Value(f)
			}
		}
	}
	return s.writer.UpsertEdge(ctx, edge)
}

// forEach runs fn for every record on a bounded worker pool, each call under
// the per-item deadline. The first returned error cancels the rest of the
// batch.
func (s *Syncer) forEach(ctx context.Context, records []source.Record, fn func(context.Context, source.Record) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, rec := range records {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(rec source.Record) {
			defer wg.Done()
			defer func() { <-sem }()

			itemCtx := ctx
			if s.itemTimeout > 0 {
				var itemCancel context.CancelFunc
				itemCtx, itemCancel = context.WithTimeout(ctx, s.itemTimeout)
				defer itemCancel()
			}
			if err := fn(itemCtx, rec); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
			}
		}(rec)
	}
	wg.Wait()

	return firstErr
}

func (s *Syncer) keyField(d Descriptor) string {
	if class, err := s.reg.ClassByName(d.Class); err == nil {
		return class.KeyField
	}
	return "id"
}
