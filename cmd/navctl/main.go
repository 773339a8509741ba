// SPDX-License-Identifier: MIT

// Command navctl parses requests and computes routes from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/indoornav/building"
	"github.com/katalvlaran/indoornav/congestion"
	"github.com/katalvlaran/indoornav/core"
	"github.com/katalvlaran/indoornav/internal/ctxlog"
	"github.com/katalvlaran/indoornav/navigator"
	"github.com/katalvlaran/indoornav/parser"
	"github.com/katalvlaran/indoornav/standardize"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "navctl",
		Short:         "Indoor navigation from spoken requests",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringP("building", "b", "", "HCL building file")
	root.PersistentFlags().StringSlice("var", nil, "HCL variable name=value (number or string), repeatable")
	root.PersistentFlags().Bool("json", false, "Print JSON")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log to stderr")

	standardizeCmd := &cobra.Command{
		Use:   "standardize <text>",
		Short: "Print the canonical location string",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), standardize.Standardize(strings.Join(args, "")))
			return nil
		},
	}

	parseCmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Classify a request and extract its destination",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}

	routeCmd := &cobra.Command{
		Use:   "route <text>",
		Short: "Compute a route through the building",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRoute,
	}
	routeCmd.Flags().StringP("start", "s", "", "Start node ID or location (default "+navigator.DefaultStart+")")
	routeCmd.Flags().StringSliceP("congestion", "c", nil, "Edge congestion from:to=factor, repeatable")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the building file for unreachable nodes",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
	validateCmd.Flags().String("root", navigator.DefaultStart, "Node ID or location reachability is measured from")

	locationsCmd := &cobra.Command{
		Use:   "locations",
		Short: "List the building's locations",
		Args:  cobra.NoArgs,
		RunE:  runLocations,
	}

	root.AddCommand(standardizeCmd, parseCmd, routeCmd, validateCmd, locationsCmd)
	return root
}

func runParse(cmd *cobra.Command, args []string) error {
	p := parser.Parse(strings.Join(args, ""))
	if asJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), p)
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "command:     %s\n", p.CommandType)
	fmt.Fprintf(w, "destination: %s\n", p.Destination)
	fmt.Fprintf(w, "floor:       %s\n", p.Floor)
	fmt.Fprintf(w, "room:        %s\n", p.RoomNumber)
	return nil
}

func runRoute(cmd *cobra.Command, args []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	nav, err := navigator.New(g, navigator.WithLogger(logger(cmd)))
	if err != nil {
		return err
	}

	start, _ := cmd.Flags().GetString("start")
	pairs, _ := cmd.Flags().GetStringSlice("congestion")
	snap, err := parseCongestion(pairs)
	if err != nil {
		return err
	}

	res, err := nav.ComputeRoute(strings.Join(args, ""), start, snap)
	if err != nil {
		return err
	}
	if asJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), res)
	}

	w := cmd.OutOrStdout()
	if res.NeedsClarification {
		fmt.Fprintln(w, "没有听清目的地，请再说一遍。")
		return nil
	}
	for i, step := range res.Instructions {
		fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}
	fmt.Fprintf(w, "全程%.1f米，约%.0f秒\n", res.Distance, res.EstimatedSeconds)
	for _, s := range res.Segments {
		if s.Level.Congested() {
			fmt.Fprintf(w, "注意：%s-%s %s\n", s.From, s.To, s.Level)
		}
	}
	return nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	root, _ := cmd.Flags().GetString("root")
	if !g.HasNode(root) {
		if n, err := g.NodeByLocation(root); err == nil {
			root = n.ID
		} else {
			root = ""
		}
	}
	rep, err := building.Validate(g, root)
	if err != nil {
		return err
	}
	if asJSON(cmd) {
		if err := printJSON(cmd.OutOrStdout(), rep); err != nil {
			return err
		}
		return rep.Err()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "nodes %d, edges %d, locations %d, floors %d, components %d\n",
		rep.Stats.NodeCount, rep.Stats.EdgeCount, rep.Stats.LocationCount, rep.Stats.FloorCount, len(rep.Components))
	fmt.Fprintf(w, "bridges %d, cut nodes %d\n", len(rep.Bridges), len(rep.CutNodes))
	if len(rep.Isolated) > 0 {
		fmt.Fprintf(w, "floors without stairs or lifts: %v\n", rep.Isolated)
	}
	if len(rep.Stranded) > 0 {
		fmt.Fprintf(w, "nodes cut off from stairs and lifts: %v\n", rep.Stranded)
	}
	return rep.Err()
}

func runLocations(cmd *cobra.Command, _ []string) error {
	g, err := loadGraph(cmd)
	if err != nil {
		return err
	}
	locs := g.Locations()
	if asJSON(cmd) {
		return printJSON(cmd.OutOrStdout(), locs)
	}
	for _, l := range locs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", l.Name, l.NodeID)
	}
	return nil
}

func loadGraph(cmd *cobra.Command) (*core.Graph, error) {
	path, _ := cmd.Flags().GetString("building")
	if path == "" {
		return nil, fmt.Errorf("navctl: --building is required")
	}
	vars, _ := cmd.Flags().GetStringSlice("var")
	opts, err := hclVars(vars)
	if err != nil {
		return nil, err
	}
	ctx := ctxlog.WithLogger(cmd.Context(), logger(cmd))
	data, err := building.LoadHCL(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return data.Build()
}

// hclVars turns name=value pairs into HCL variables. Values that parse as
// numbers become numbers.
func hclVars(pairs []string) ([]building.HCLOption, error) {
	var opts []building.HCLOption
	for _, kv := range pairs {
		name, val, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("navctl: bad --var %q, want name=value", kv)
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			opts = append(opts, building.WithNumber(name, f))
		} else {
			opts = append(opts, building.WithString(name, val))
		}
	}
	return opts, nil
}

// parseCongestion reads "from:to=factor" readings.
func parseCongestion(pairs []string) (congestion.Snapshot, error) {
	readings := make([]congestion.Reading, 0, len(pairs))
	for _, p := range pairs {
		edge, val, ok := strings.Cut(p, "=")
		from, to, ok2 := strings.Cut(edge, ":")
		if !ok || !ok2 {
			return congestion.Snapshot{}, fmt.Errorf("navctl: bad --congestion %q, want from:to=factor", p)
		}
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return congestion.Snapshot{}, fmt.Errorf("navctl: bad --congestion %q: %w", p, err)
		}
		readings = append(readings, congestion.Reading{From: from, To: to, Factor: f})
	}
	return congestion.FromReadings(readings)
}

func asJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func logger(cmd *cobra.Command) *slog.Logger {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
