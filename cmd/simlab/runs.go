package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/analysis"
	"github.com/san-kum/simlab/internal/export"
	"github.com/san-kum/simlab/internal/sketch"
	"github.com/san-kum/simlab/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKETCH\tPRESET\tTIME\tDURATION\tDT\tINTEG\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Sketch,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("sketch: %s\n", meta.Sketch)
	fmt.Printf("samples: %d\n\n", len(states))

	for j, name := range meta.Columns {
		data := make([]float64, len(states))
		for i := range states {
			if j < len(states[i]) {
				data[i] = states[i][j]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(plotRows),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	summary, err := analysis.Summarize(meta.Columns, states, times)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("sketch: %s (%s)\n\n", meta.Sketch, meta.Integrator)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tMIN\tMAX\tMEAN\tFREQ\tPERIOD")
	for _, c := range summary {
		freq, period := "-", "-"
		if c.Peak != nil {
			freq = fmt.Sprintf("%.4f hz", c.Peak.Frequency)
			period = fmt.Sprintf("%.4f s", c.Peak.Period)
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%s\t%s\n", c.Name, c.Min, c.Max, c.Mean, freq, period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for _, name := range sortedNames(meta.Metrics) {
			fmt.Printf("  %s: %.6f\n", name, meta.Metrics[name])
		}
	}

	portrait, err := analysis.NewPhasePortrait(states, xAxis, yAxis)
	if err != nil {
		return err
	}
	fmt.Printf("\nphase portrait: %s vs %s\n", axisName(meta, yAxis), axisName(meta, xAxis))
	fmt.Print(portrait.ASCII(70, 20))

	if phaseSVG != "" {
		svg := export.TrajectorySVG(portrait, 600, 400, "#00ccff", "#ffffff")
		if err := os.WriteFile(phaseSVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", phaseSVG)
	}
	return nil
}

func axisName(meta *storage.RunMetadata, i int) string {
	if i < len(meta.Columns) {
		return meta.Columns[i]
	}
	return fmt.Sprintf("x%d", i)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := sketchConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	names := args[1:]
	if len(names) == 0 {
		names = sketch.Integrators()
	}
	runner, err := sketch.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	n := int(cfg.Duration/cfg.Dt + 0.5)

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	results, err := runner.Compare(ctx, names, n, cfg.Dt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	cols := runner.Sketch.Columns()
	fmt.Printf("comparing integrators for %s (dt=%.4f, frames=%d, %v)\n\n", cfg.Sketch, cfg.Dt, n, elapsed)
	fmt.Printf("%-18s  %-12s  %-12s  %-12s\n", "integrator", "final_"+cols[0], "final_"+cols[1], "energy_drift")
	fmt.Println(strings.Repeat("-", 60))
	for i, res := range results {
		final := res.States[len(res.States)-1]
		fmt.Printf("%-18s  %12.6f  %12.6f  %12.2e\n", names[i], final[0], final[1], res.EnergyDrift)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, meta.Columns...)); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	data, err := storage.New(dataDir).Export(args[0])
	if err != nil {
		return err
	}
	if jsonOut != "" {
		return data.WriteFile(jsonOut)
	}
	return data.WriteJSON(os.Stdout)
}

func sortedNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
