package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type Neo4jOptions struct {
	URI      string
	User     string
	Password string
	PingTO   time.Duration
}

func OpenNeo4j(ctx context.Context, opt Neo4jOptions) (neo4j.DriverWithContext, error) {
	if opt.URI == "" {
		return nil, fmt.Errorf("NEO4J_URI is not set")
	}
	if opt.PingTO == 0 {
		opt.PingTO = 5 * time.Second
	}

	driver, err := neo4j.NewDriverWithContext(opt.URI, neo4j.BasicAuth(opt.User, opt.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j connect: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := driver.VerifyConnectivity(pctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j ping: %w", err)
	}

	return driver, nil
}
