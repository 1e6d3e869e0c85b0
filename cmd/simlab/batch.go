package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/automation"
	"github.com/san-kum/simlab/internal/storage"
)

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted scenario of headless runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	if sc.Description != "" {
		fmt.Printf("%s: %s\n", sc.Name, sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, storage.New(dataDir), logger)
	for _, r := range results {
		fmt.Printf("step %d  %-14s  %s  (%d steps)\n", r.Step, r.Sketch, r.RunID, r.Result.StepsTaken)
	}
	return err
}
