package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/optim"
	"github.com/san-kum/simlab/internal/sketch"
)

var (
	sweepParams []string
	sweepMetric string
	sweepMax    bool
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [sketch]",
		Short: "run a sketch over a grid of parameters and rank a metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweep,
	}
	addSketchFlags(cmd)
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame time in seconds")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "host seconds to simulate")
	cmd.Flags().StringVarP(&integrator, "integrator", "i", config.DefaultIntegrator, "integrator")
	cmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=lo:hi:n or name=v1,v2,...")
	cmd.Flags().StringVarP(&sweepMetric, "metric", "m", "energy_drift", "metric to rank by")
	cmd.Flags().BoolVar(&sweepMax, "max", false, "rank by the highest value instead of the lowest")
	return cmd
}

// parseRange reads name=lo:hi:n or name=v1,v2,...
func parseRange(s string) (string, []float64, error) {
	name, rng, ok := strings.Cut(s, "=")
	if !ok || name == "" || rng == "" {
		return "", nil, fmt.Errorf("bad --param %q: want name=lo:hi:n or name=v1,v2", s)
	}
	if parts := strings.Split(rng, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return "", nil, fmt.Errorf("bad --param %q: want name=lo:hi:n", s)
		}
		return name, optim.Linspace(lo, hi, n), nil
	}
	var vals []float64
	for _, f := range strings.Split(rng, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --param %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := sketchConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("sweep needs at least one --param")
	}
	var names []string
	var ranges [][]float64
	for _, p := range sweepParams {
		name, vals, err := parseRange(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	grid, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	n := int(cfg.Duration/cfg.Dt + 0.5)

	sign := 1.0
	if sweepMax {
		sign = -1
	}
	objective := func(ctx context.Context, params map[string]float64) (float64, error) {
		runner, err := sketch.NewRunner(cfg, logger)
		if err != nil {
			return 0, err
		}
		sys, ok := runner.Sketch.System().(dynamo.Configurable)
		if !ok {
			return 0, fmt.Errorf("%s has no tunable parameters", cfg.Sketch)
		}
		for name, v := range params {
			if err := sys.SetParam(name, v); err != nil {
				return 0, err
			}
		}
		res, err := runner.Run(ctx, n, cfg.Dt)
		if err != nil {
			return 0, err
		}
		v, ok := res.Metrics[sweepMetric]
		if !ok {
			return 0, fmt.Errorf("unknown metric %q (have %v)", sweepMetric, sortedNames(res.Metrics))
		}
		return sign * v, nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Debug("sweep", "sketch", cfg.Sketch, "points", grid.Size(), "metric", sweepMetric)
	trials, best, err := grid.Search(ctx, objective)
	if err != nil {
		printTrials(names, trials, sign, -1)
		return err
	}
	printTrials(names, trials, sign, best)

	fmt.Printf("\nbest %s = %.6g at", sweepMetric, sign*trials[best].Value)
	keys := make([]string, 0, len(trials[best].Params))
	for k := range trials[best].Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf(" %s=%g", k, trials[best].Params[k])
	}
	fmt.Println()
	return nil
}

func printTrials(names []string, trials []optim.Trial, sign float64, best int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric)+"\t")
	for i, tr := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[name])
		}
		switch {
		case tr.Err != nil:
			fmt.Fprintf(w, "error: %v\t\n", tr.Err)
		case i == best:
			fmt.Fprintf(w, "%.6g\t*\n", sign*tr.Value)
		default:
			fmt.Fprintf(w, "%.6g\t\n", sign*tr.Value)
		}
	}
	w.Flush()
}
