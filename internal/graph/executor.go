package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// CypherExecutor runs one Cypher statement and returns the result records as
// plain maps. The graph writer and linker depend on this interface rather
// than the driver so they can be exercised against an in-memory fake.
type CypherExecutor interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Neo4jExecutor is the driver-backed executor used in production.
type Neo4jExecutor struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewNeo4jExecutor(driver neo4j.DriverWithContext, database string) *Neo4jExecutor {
	return &Neo4jExecutor{driver: driver, database: database}
}

func (e *Neo4jExecutor) Run(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := e.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: e.database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.AsMap())
		}
		return rows, nil
	})
	if err != nil {
		if neo4j.IsConnectivityError(err) {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, fmt.Errorf("cypher run: %w", err)
	}

	rows, _ := out.([]map[string]any)
	return rows, nil
}
