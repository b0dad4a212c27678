package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/shipshape/internal/category"
	"github.com/alexisbeaulieu97/shipshape/internal/prefstore"
)

type reportOptions struct {
	Format  string
	Timeout time.Duration
}

func newReportCmd(flags *rootFlags) *cobra.Command {
	opts := reportOptions{}

	cmd := &cobra.Command{
		Use:   "report [config-file]",
		Short: "Score value-store dumps by category",
		Long: `Report reads the audit sources from the config, categorizes every key in
each dump, and prints a per-category compliance score.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(flags, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "table", "Output format: table, json or yaml")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Overall timeout for reading dumps")

	return cmd
}

func runReport(flags *rootFlags, args []string, opts reportOptions) error {
	_, cfg, err := resolveConfig(flags, args)
	if err != nil {
		return err
	}

	if cfg.Audit == nil || len(cfg.Audit.Sources) == 0 {
		return newCommandError(
			"build report",
			"config has no audit sources",
			fmt.Errorf("audit section missing or empty"),
			"Add an 'audit' section with at least one source to the config file",
		)
	}

	log, err := newLogger(flags)
	if err != nil {
		return err
	}

	auditor := category.NewAuditor(prefstore.New(log), cfg.Audit.SuccessValues, log)

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	aggregates, err := auditor.Run(ctx, cfg.Audit.Sources)
	if err != nil {
		return newCommandError(
			"build report",
			"audit run failed",
			err,
			"Check that every audit source path points at a readable dump file",
		)
	}

	switch opts.Format {
	case "table":
		printReportTable(aggregates)
		return nil
	case "json":
		return printReportJSON(aggregates)
	case "yaml":
		return printReportYAML(aggregates)
	default:
		return fmt.Errorf("unknown format %q (expected table, json or yaml)", opts.Format)
	}
}

func printReportTable(aggregates []category.Aggregate) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Category", "Passed", "Total", "Score"})

	passed, total := 0, 0
	for _, agg := range aggregates {
		name := agg.Name
		if agg.Icon != "" {
			name = agg.Icon + " " + name
		}
		tw.AppendRow(table.Row{name, agg.Passed, agg.Total, scoreCell(agg.Score())})
		passed += agg.Passed
		total += agg.Total
	}

	overall := 0.0
	if total > 0 {
		overall = float64(passed) / float64(total)
	}
	tw.AppendFooter(table.Row{"Overall", passed, total, scoreCell(overall)})
	tw.Render()
}

func scoreCell(score float64) string {
	label := fmt.Sprintf("%.0f%%", score*100)
	switch {
	case score >= 1:
		return text.Colors{text.FgGreen}.Sprint(label)
	case score >= 0.5:
		return text.Colors{text.FgYellow}.Sprint(label)
	default:
		return text.Colors{text.FgRed}.Sprint(label)
	}
}

type reportEntry struct {
	Category string  `json:"category" yaml:"category"`
	Icon     string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Passed   int     `json:"passed" yaml:"passed"`
	Total    int     `json:"total" yaml:"total"`
	Score    float64 `json:"score" yaml:"score"`
}

func reportEntries(aggregates []category.Aggregate) []reportEntry {
	entries := make([]reportEntry, len(aggregates))
	for i, agg := range aggregates {
		entries[i] = reportEntry{
			Category: agg.Name,
			Icon:     agg.Icon,
			Passed:   agg.Passed,
			Total:    agg.Total,
			Score:    agg.Score(),
		}
	}
	return entries
}

func printReportJSON(aggregates []category.Aggregate) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportEntries(aggregates))
}

func printReportYAML(aggregates []category.Aggregate) error {
	encoder := yaml.NewEncoder(os.Stdout)
	defer encoder.Close()
	return encoder.Encode(reportEntries(aggregates))
}
