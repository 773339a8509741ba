// SPDX-License-Identifier: MIT

package building

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/katalvlaran/indoornav/internal/ctxlog"
)

// Cypher queries used by Neo4jSource. Nodes are (:NavNode {building, id, x,
// y, floor}); corridors are undirected [:CONNECTS {distance}] relationships;
// aliases are (:Location {name})-[:AT]->(:NavNode).
const (
	cypherNodes = `MATCH (n:NavNode {building: $building})
RETURN n.id AS id, n.x AS x, n.y AS y, n.floor AS floor
ORDER BY id`

	cypherEdges = `MATCH (a:NavNode {building: $building})-[r:CONNECTS]-(b:NavNode {building: $building})
WHERE a.id < b.id
RETURN a.id AS from, b.id AS to, coalesce(r.distance, 0.0) AS distance
ORDER BY from, to`

	cypherLocations = `MATCH (l:Location)-[:AT]->(n:NavNode {building: $building})
RETURN l.name AS name, n.id AS node
ORDER BY name`
)

// result is the minimal interface needed from a neo4j result.
type result interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
	Err() error
}

// runner is the minimal interface needed from a neo4j session.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (result, error)
	Close(ctx context.Context) error
}

// sessionAdapter adapts neo4j.SessionWithContext to runner.
type sessionAdapter struct {
	sess neo4j.SessionWithContext
}

func (a *sessionAdapter) Run(ctx context.Context, cypher string, params map[string]any) (result, error) {
	return a.sess.Run(ctx, cypher, params)
}

func (a *sessionAdapter) Close(ctx context.Context) error {
	return a.sess.Close(ctx)
}

// Neo4jSource loads one building's topology from Neo4j.
type Neo4jSource struct {
	driver     neo4j.DriverWithContext
	building   string
	database   string
	newSession func(ctx context.Context) runner // for testing
}

// Neo4jOption configures a Neo4jSource.
type Neo4jOption func(*Neo4jSource)

// WithDatabase selects the Neo4j database. Default is the server default.
func WithDatabase(name string) Neo4jOption {
	return func(s *Neo4jSource) { s.database = name }
}

// NewNeo4jSource returns a Source reading the building with the given ID.
func NewNeo4jSource(driver neo4j.DriverWithContext, building string, opts ...Neo4jOption) *Neo4jSource {
	s := &Neo4jSource{driver: driver, building: building}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Neo4jSource) session(ctx context.Context) runner {
	if s.newSession != nil {
		return s.newSession(ctx)
	}
	return &sessionAdapter{sess: s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: s.database,
	})}
}

// Load implements Source.
func (s *Neo4jSource) Load(ctx context.Context) (Data, error) {
	logger := ctxlog.FromContext(ctx)
	sess := s.session(ctx)
	defer sess.Close(ctx)

	params := map[string]any{"building": s.building}
	d := Data{Name: s.building}

	// 1) Nodes
	err := s.each(ctx, sess, cypherNodes, params, func(rec *neo4j.Record) error {
		var n NodeSpec
		var err error
		if n.ID, err = str(rec, "id"); err != nil {
			return err
		}
		if n.X, err = num(rec, "x"); err != nil {
			return err
		}
		if n.Y, err = num(rec, "y"); err != nil {
			return err
		}
		if n.Floor, err = integer(rec, "floor"); err != nil {
			return err
		}
		d.Nodes = append(d.Nodes, n)
		return nil
	})
	if err != nil {
		return Data{}, err
	}

	// 2) Edges
	err = s.each(ctx, sess, cypherEdges, params, func(rec *neo4j.Record) error {
		var e EdgeSpec
		var err error
		if e.From, err = str(rec, "from"); err != nil {
			return err
		}
		if e.To, err = str(rec, "to"); err != nil {
			return err
		}
		if e.Distance, err = num(rec, "distance"); err != nil {
			return err
		}
		d.Edges = append(d.Edges, e)
		return nil
	})
	if err != nil {
		return Data{}, err
	}

	// 3) Locations
	err = s.each(ctx, sess, cypherLocations, params, func(rec *neo4j.Record) error {
		var l LocationSpec
		var err error
		if l.Name, err = str(rec, "name"); err != nil {
			return err
		}
		if l.Node, err = str(rec, "node"); err != nil {
			return err
		}
		d.Locations = append(d.Locations, l)
		return nil
	})
	if err != nil {
		return Data{}, err
	}

	logger.Debug("loaded building from neo4j", "building", s.building,
		"nodes", len(d.Nodes), "edges", len(d.Edges), "locations", len(d.Locations))
	return d, nil
}

func (s *Neo4jSource) each(ctx context.Context, sess runner, cypher string, params map[string]any, fn func(*neo4j.Record) error) error {
	res, err := sess.Run(ctx, cypher, params)
	if err != nil {
		return fmt.Errorf("building: neo4j query: %w", err)
	}
	for res.Next(ctx) {
		if err := fn(res.Record()); err != nil {
			return fmt.Errorf("building: neo4j record: %w", err)
		}
	}
	if err := res.Err(); err != nil {
		return fmt.Errorf("building: neo4j result: %w", err)
	}
	return nil
}

func field(rec *neo4j.Record, key string) (any, error) {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil, fmt.Errorf("missing %q", key)
	}
	return v, nil
}

func str(rec *neo4j.Record, key string) (string, error) {
	v, err := field(rec, key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%q: want string, got %T", key, v)
	}
	return s, nil
}

func num(rec *neo4j.Record, key string) (float64, error) {
	v, err := field(rec, key)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%q: want number, got %T", key, v)
	}
}

func integer(rec *neo4j.Record, key string) (int, error) {
	v, err := field(rec, key)
	if err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case int64:
		return int(x), nil
	case float64:
		if x != float64(int(x)) {
			return 0, fmt.Errorf("%q: %v is not a whole number", key, x)
		}
		return int(x), nil
	default:
		return 0, fmt.Errorf("%q: want integer, got %T", key, v)
	}
}
