package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
	shiperrors "github.com/alexisbeaulieu97/shipshape/pkg/errors"
)

type verifyOptions struct {
	JSON    bool
	Timeout time.Duration
}

var verifyCmdRunner = runVerify

func newVerifyCmd(flags *rootFlags) *cobra.Command {
	opts := verifyOptions{}

	cmd := &cobra.Command{
		Use:   "verify [config-file]",
		Short: "Check every item headlessly and report what needs attention",
		Long: `Verify runs every configured item's check without the TUI. Returns exit
code 0 when everything is ready, 1 when any item needs attention, 2 on a
configuration error, and 3 on an internal error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return verifyCmdRunner(flags, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output results in JSON format")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Per-item timeout; accepts Go duration strings (e.g. 60s)")

	return cmd
}

type itemReport struct {
	Item   config.Item
	Status inspect.Status
	Result inspect.Result
	Err    error
}

type verifySummary struct {
	Preset      string
	Total       int
	Ready       int
	Failed      int
	Pending     int
	AllComplete bool
	Duration    time.Duration
}

func (s verifySummary) ExitCode() int {
	if s.AllComplete {
		return 0
	}
	return 1
}

func runVerify(flags *rootFlags, args []string, opts verifyOptions) error {
	preset, cfg, err := resolveConfig(flags, args)
	if err != nil {
		var parseErr *shiperrors.ParseError
		var validationErr *shiperrors.ValidationError
		if errors.As(err, &parseErr) || errors.As(err, &validationErr) {
			fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	level := "info"
	if flags.verbose {
		level = "debug"
	}

	log, err := logger.New(logger.Options{Level: level, HumanReadable: !opts.JSON, NoColor: flags.noColor})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(3)
	}

	eval := inspect.FromConfig(cfg, log)
	tracker := inspect.NewTracker(cfg.Items)

	ctx := context.Background()
	if opts.Timeout > 0 {
		totalTimeout := opts.Timeout * time.Duration(len(cfg.Items))
		if len(cfg.Items) == 0 {
			totalTimeout = opts.Timeout
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, totalTimeout)
		defer cancel()
	}

	log.WithFields(map[string]any{
		"preset": preset,
		"items":  len(cfg.Items),
	}).Info("Starting verification")

	start := time.Now()
	results := make([]itemReport, 0, len(cfg.Items))
	for _, item := range cfg.Items {
		result, err := eval.Evaluate(ctx, item)
		if err != nil {
			if ctx.Err() != nil {
				fmt.Fprintf(os.Stderr, "Verification error: %v\n", ctx.Err())
				os.Exit(3)
			}
			tracker.MarkFailure(item.ID)
			results = append(results, itemReport{Item: item, Status: tracker.Status(item.ID), Err: err})
			continue
		}
		tracker.Apply(result)
		results = append(results, itemReport{Item: item, Status: tracker.Status(item.ID), Result: result})
	}

	counts := tracker.Counts()
	summary := verifySummary{
		Preset:      preset,
		Total:       tracker.Len(),
		Ready:       counts[inspect.StatusCompleted],
		Failed:      counts[inspect.StatusFailed],
		Pending:     counts[inspect.StatusPending],
		AllComplete: tracker.AllComplete(),
		Duration:    time.Since(start),
	}

	log.WithFields(map[string]any{
		"total":    summary.Total,
		"ready":    summary.Ready,
		"failed":   summary.Failed,
		"pending":  summary.Pending,
		"duration": summary.Duration.String(),
	}).Info("Verification complete")

	persistVerifyRun(log, summary)

	if opts.JSON {
		printVerifyJSON(results, summary)
	} else {
		printVerifyTable(results, summary)
	}

	os.Exit(summary.ExitCode())
	return nil
}

// persistVerifyRun updates the status cache and run history so the list and
// history commands see headless runs too. Best effort only.
func persistVerifyRun(log *logger.Logger, summary verifySummary) {
	score := 0.0
	if summary.Total > 0 {
		score = float64(summary.Ready) / float64(summary.Total)
	}

	if cache, err := openStatusCache(); err == nil {
		cache.Set(summary.Preset, registry.CachedStatus{
			AllComplete: summary.AllComplete,
			Score:       score,
			Counts: map[string]int{
				inspect.StatusCompleted.String(): summary.Ready,
				inspect.StatusFailed.String():    summary.Failed,
				inspect.StatusPending.String():   summary.Pending,
			},
			LastRun: time.Now(),
			Summary: fmt.Sprintf("%d/%d ready", summary.Ready, summary.Total),
		})
		if err := cache.Save(); err != nil {
			log.WithFields(map[string]any{"error": err}).Warn("status cache save failed")
		}
	}

	hist, err := openHistory()
	if err != nil {
		return
	}
	defer hist.Close()

	_, err = hist.Record(context.Background(), history.Run{
		Preset:      summary.Preset,
		Surface:     "verify",
		Total:       summary.Total,
		Completed:   summary.Ready,
		Failed:      summary.Failed,
		Pending:     summary.Pending,
		Score:       score,
		AllComplete: summary.AllComplete,
		FinishedAt:  time.Now(),
	})
	if err != nil {
		log.WithFields(map[string]any{"error": err}).Warn("history record failed")
	}
}

func printVerifyTable(results []itemReport, summary verifySummary) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Item", "Status", "Source", "Message"})

	for _, r := range results {
		message := r.Result.Message
		if r.Err != nil {
			message = r.Err.Error()
		}
		tw.AppendRow(table.Row{
			r.Item.DisplayName(),
			statusCell(r.Status),
			r.Result.Source,
			message,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMax: 32},
		{Number: 4, WidthMax: 48},
	})
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 40 {
		tw.SetAllowedRowLength(width)
	}
	tw.Render()

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total:     %d\n", summary.Total)
	fmt.Printf("  ✔ Ready:   %d\n", summary.Ready)
	fmt.Printf("  ✖ Failed:  %d\n", summary.Failed)
	fmt.Printf("  ○ Pending: %d\n", summary.Pending)
	fmt.Printf("  Duration:  %s\n", summary.Duration.Round(time.Millisecond))

	if summary.AllComplete {
		fmt.Println("\n✅ All items ready")
	} else {
		fmt.Println("\n❌ Attention needed - run 'shipshape wizard' to walk through fixes")
	}
}

func statusCell(status inspect.Status) string {
	label := fmt.Sprintf("%s %s", status.Icon(), status.String())
	switch status {
	case inspect.StatusCompleted:
		return text.Colors{text.FgGreen}.Sprint(label)
	case inspect.StatusFailed:
		return text.Colors{text.FgRed}.Sprint(label)
	case inspect.StatusRunning:
		return text.Colors{text.FgBlue}.Sprint(label)
	default:
		return text.Colors{text.FgHiBlack}.Sprint(label)
	}
}

func printVerifyJSON(results []itemReport, summary verifySummary) {
	type jsonResult struct {
		ItemID    string `json:"item_id"`
		Name      string `json:"name"`
		Status    string `json:"status"`
		Valid     bool   `json:"valid"`
		Installed bool   `json:"installed"`
		Source    string `json:"source,omitempty"`
		Message   string `json:"message,omitempty"`
		Error     string `json:"error,omitempty"`
		Timestamp string `json:"timestamp,omitempty"`
	}

	type jsonSummary struct {
		Preset      string  `json:"preset"`
		Total       int     `json:"total"`
		Ready       int     `json:"ready"`
		Failed      int     `json:"failed"`
		Pending     int     `json:"pending"`
		AllComplete bool    `json:"all_complete"`
		Duration    float64 `json:"duration_seconds"`
	}

	type jsonOutput struct {
		Summary jsonSummary  `json:"summary"`
		Results []jsonResult `json:"results"`
	}

	out := jsonOutput{
		Summary: jsonSummary{
			Preset:      summary.Preset,
			Total:       summary.Total,
			Ready:       summary.Ready,
			Failed:      summary.Failed,
			Pending:     summary.Pending,
			AllComplete: summary.AllComplete,
			Duration:    summary.Duration.Seconds(),
		},
		Results: make([]jsonResult, len(results)),
	}

	for i, r := range results {
		jr := jsonResult{
			ItemID:    r.Item.ID,
			Name:      r.Item.DisplayName(),
			Status:    r.Status.String(),
			Valid:     r.Result.Valid,
			Installed: r.Result.Installed,
			Source:    string(r.Result.Source),
			Message:   r.Result.Message,
		}
		if !r.Result.Timestamp.IsZero() {
			jr.Timestamp = r.Result.Timestamp.Format(time.RFC3339)
		}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		out.Results[i] = jr
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(out)
}
