// SPDX-License-Identifier: MIT

package building

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/internal/ctxlog"
)

// hclBuildingFile is the top-level structure of a building file.
//
//	building = "main"
//
//	node "A" {
//	  x       = 0
//	  y       = 0
//	  floor   = 1
//	  aliases = ["1楼入口"]
//	}
//
//	edge {
//	  from     = "A"
//	  to       = "B"
//	  distance = var.corridor   # optional; planar distance when omitted,
//	                            # required between stacked stairs or lifts
//	}
//
//	location "1楼大厅" {
//	  node = "A"
//	}
type hclBuildingFile struct {
	Building  string        `hcl:"building,optional"`
	Nodes     []hclNode     `hcl:"node,block"`
	Edges     []hclEdge     `hcl:"edge,block"`
	Locations []hclLocation `hcl:"location,block"`
}

type hclNode struct {
	ID      string   `hcl:"id,label"`
	X       float64  `hcl:"x"`
	Y       float64  `hcl:"y"`
	Floor   int      `hcl:"floor"`
	Aliases []string `hcl:"aliases,optional"`
}

type hclEdge struct {
	From     string   `hcl:"from"`
	To       string   `hcl:"to"`
	Distance *float64 `hcl:"distance,optional"`
}

type hclLocation struct {
	Name string `hcl:"name,label"`
	Node string `hcl:"node"`
}

// HCLOption configures HCL decoding.
type HCLOption func(*hclConfig)

type hclConfig struct {
	vars map[string]cty.Value
}

// WithVariable exposes val to the file as var.<name>.
func WithVariable(name string, val cty.Value) HCLOption {
	if name == "" {
		panic("building: WithVariable with empty name")
	}
	return func(c *hclConfig) { c.vars[name] = val }
}

// WithNumber is WithVariable for a number.
func WithNumber(name string, v float64) HCLOption {
	return WithVariable(name, cty.NumberFloatVal(v))
}

// WithString is WithVariable for a string.
func WithString(name, v string) HCLOption {
	return WithVariable(name, cty.StringVal(v))
}

func (c *hclConfig) evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": cty.ObjectVal(c.vars)},
	}
}

func newHCLConfig(opts []HCLOption) *hclConfig {
	c := &hclConfig{vars: make(map[string]cty.Value)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadHCL parses and decodes the building file at path.
func LoadHCL(ctx context.Context, path string, opts ...HCLOption) (Data, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("decoding building file", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Data{}, fmt.Errorf("building: parse %s: %w", path, diags)
	}
	data, err := decodeHCL(file, path, newHCLConfig(opts))
	if err != nil {
		return Data{}, err
	}

	logger.Debug("decoded building file", "path", path,
		"nodes", len(data.Nodes), "edges", len(data.Edges), "locations", len(data.Locations))
	return data, nil
}

// DecodeHCL decodes building source held in memory. filename is used in
// diagnostics only.
func DecodeHCL(src []byte, filename string, opts ...HCLOption) (Data, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Data{}, fmt.Errorf("building: parse %s: %w", filename, diags)
	}
	return decodeHCL(file, filename, newHCLConfig(opts))
}

func decodeHCL(file *hcl.File, filename string, cfg *hclConfig) (Data, error) {
	var parsed hclBuildingFile
	if diags := gohcl.DecodeBody(file.Body, cfg.evalContext(), &parsed); diags.HasErrors() {
		return Data{}, fmt.Errorf("building: decode %s: %w", filename, diags)
	}

	d := Data{Name: parsed.Building}
	for _, n := range parsed.Nodes {
		d.Nodes = append(d.Nodes, NodeSpec{ID: n.ID, X: n.X, Y: n.Y, Floor: n.Floor, Aliases: n.Aliases})
	}
	for _, e := range parsed.Edges {
		spec := EdgeSpec{From: e.From, To: e.To}
		if e.Distance != nil {
			// An explicit zero is a data error, not a request for the
			// planar default.
			if *e.Distance == 0 {
				return Data{}, fmt.Errorf("building: decode %s: edge %s-%s: %w",
					filename, e.From, e.To, core.ErrInvalidDistance)
			}
			spec.Distance = *e.Distance
		}
		d.Edges = append(d.Edges, spec)
	}
	for _, l := range parsed.Locations {
		d.Locations = append(d.Locations, LocationSpec{Name: l.Name, Node: l.Node})
	}
	return d, nil
}

// HCLSource is a Source reading a building file from disk on every Load.
type HCLSource struct {
	Path    string
	Options []HCLOption
}

// Load implements Source.
func (s HCLSource) Load(ctx context.Context) (Data, error) {
	return LoadHCL(ctx, s.Path, s.Options...)
}
