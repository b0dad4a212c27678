package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/tui"
)

type historyOptions struct {
	limit      int
	jsonOutput bool
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history [preset-id]",
		Short: "Show recent readiness runs",
		Long: `History lists the most recent runs recorded by the wizard, the dashboard
and headless verify, newest first. Pass a preset ID to filter.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset := flags.preset
			if len(args) == 1 {
				preset = args[0]
			}
			return runHistory(cmd, preset, opts)
		},
	}

	cmd.Flags().IntVar(&opts.limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runHistory(cmd *cobra.Command, preset string, opts *historyOptions) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), preset, opts.limit)
	if err != nil {
		return newCommandError("read history", "querying run history", err, "Check that the history database is readable.")
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	if opts.jsonOutput {
		return renderHistoryJSON(cmd, runs)
	}

	renderHistoryTable(cmd, runs)
	return nil
}

func renderHistoryTable(cmd *cobra.Command, runs []history.Run) {
	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"When", "Preset", "Surface", "Ready", "Score", "Result"})

	for _, run := range runs {
		result := text.Colors{text.FgRed}.Sprint("attention")
		if run.AllComplete {
			result = text.Colors{text.FgGreen}.Sprint("ready")
		}

		tw.AppendRow(table.Row{
			tui.FormatRelativeTime(run.FinishedAt),
			run.Preset,
			run.Surface,
			fmt.Sprintf("%d/%d", run.Completed, run.Total),
			fmt.Sprintf("%.0f%%", run.Score*100),
			result,
		})
	}

	tw.Render()
}

type historyJSONRun struct {
	ID          string    `json:"id"`
	Preset      string    `json:"preset"`
	Surface     string    `json:"surface"`
	Total       int       `json:"total"`
	Completed   int       `json:"completed"`
	Failed      int       `json:"failed"`
	Pending     int       `json:"pending"`
	Score       float64   `json:"score"`
	AllComplete bool      `json:"all_complete"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

func renderHistoryJSON(cmd *cobra.Command, runs []history.Run) error {
	payload := struct {
		Count int              `json:"count"`
		Runs  []historyJSONRun `json:"runs"`
	}{
		Count: len(runs),
		Runs:  make([]historyJSONRun, len(runs)),
	}

	for i, run := range runs {
		payload.Runs[i] = historyJSONRun{
			ID:          run.ID,
			Preset:      run.Preset,
			Surface:     run.Surface,
			Total:       run.Total,
			Completed:   run.Completed,
			Failed:      run.Failed,
			Pending:     run.Pending,
			Score:       run.Score,
			AllComplete: run.AllComplete,
			StartedAt:   run.StartedAt,
			FinishedAt:  run.FinishedAt,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
