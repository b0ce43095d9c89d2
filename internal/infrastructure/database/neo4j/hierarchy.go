// Package neo4j provides the graph-database-backed is-a hierarchy oracle.
// The ontology graph stores one :Term node per (namespace, id) pair with
// [:ISA] edges from child to parent.
package neo4j

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/biotext/bioground/internal/config"
	domaingrounding "github.com/biotext/bioground/internal/domain/grounding"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	apperrors "github.com/biotext/bioground/pkg/errors"
	"github.com/biotext/bioground/pkg/types/grounding"
)

// NewDriver connects to Neo4j per cfg and verifies connectivity.
func NewDriver(ctx context.Context, cfg config.Neo4jConfig) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI,
		neo4j.BasicAuth(cfg.User, cfg.Password, ""),
		func(c *neo4j.Config) {
			if cfg.MaxConnectionPoolSize > 0 {
				c.MaxConnectionPoolSize = cfg.MaxConnectionPoolSize
			}
			if cfg.ConnectionTimeout > 0 {
				c.SocketConnectTimeout = cfg.ConnectionTimeout
			}
		})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to create neo4j driver")
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "failed to verify neo4j connectivity")
	}
	return driver, nil
}

// HierarchyOracle answers transitive is-a queries against the ontology graph.
// It satisfies grounding.HierarchyOracle.
type HierarchyOracle struct {
	driver   neo4j.DriverWithContext
	database string
	log      logging.Logger
}

// NewHierarchyOracle constructs an oracle over driver.
func NewHierarchyOracle(driver neo4j.DriverWithContext, database string, log logging.Logger) *HierarchyOracle {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HierarchyOracle{driver: driver, database: database, log: log.Named("hierarchy")}
}

const isaQuery = `
MATCH (c:Term {ns: $ns, id: $child})
RETURN EXISTS {
    MATCH (c)-[:ISA*1..]->(:Term {ns: $ns, id: $parent})
} AS isa
LIMIT 1`

// IsA reports whether child reaches parent through one or more [:ISA] edges.
// An absent child node answers false; only query failures produce errors.
func (h *HierarchyOracle) IsA(ctx context.Context, ns grounding.Namespace, child, parent string) (bool, error) {
	if ns == grounding.NamespaceChEBI {
		child = domaingrounding.StripChEBIPrefix(child)
		parent = domaingrounding.StripChEBIPrefix(parent)
	}
	if child == parent {
		return false, nil
	}

	result, err := neo4j.ExecuteQuery(ctx, h.driver, isaQuery,
		map[string]any{"ns": string(ns), "child": child, "parent": parent},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(h.database),
		neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeHierarchyQuery, "is-a query failed")
	}
	if len(result.Records) == 0 {
		return false, nil
	}
	isa, _, err := neo4j.GetRecordValue[bool](result.Records[0], "isa")
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeHierarchyQuery, "is-a result malformed")
	}
	return isa, nil
}

//Personal.AI order the ending
