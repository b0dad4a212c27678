package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/shipshape/internal/category"
	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/prefstore"
	"github.com/alexisbeaulieu97/shipshape/internal/tui/dashboard"
)

func newDashboardCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [config-file]",
		Short: "Launch the interactive readiness dashboard",
		Long:  `Launch the interactive TUI dashboard to watch every configured item, grouped by status, with category compliance scores.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(flags, args)
		},
	}

	return cmd
}

func runDashboard(flags *rootFlags, args []string) error {
	preset, cfg, err := resolveConfig(flags, args)
	if err != nil {
		return err
	}

	log, err := newLogger(flags)
	if err != nil {
		return newCommandError("dashboard", "creating logger", err, "Check the log.level setting in your tool config.")
	}

	cache, err := openStatusCache()
	if err != nil {
		return err
	}

	hist, err := openHistory()
	if err != nil {
		return err
	}
	defer func() {
		if keep := viper.GetInt("history.keep"); keep > 0 {
			if err := hist.Prune(context.Background(), keep); err != nil {
				log.WithFields(map[string]any{"error": err}).Warn("history prune failed")
			}
		}
		_ = hist.Close()
	}()

	eval := inspect.FromConfig(cfg, log)
	service := inspect.NewService(eval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Start(ctx)
	defer service.Stop()

	var auditor *category.Auditor
	if cfg.Audit != nil && len(cfg.Audit.Sources) > 0 {
		auditor = category.NewAuditor(prefstore.New(log), cfg.Audit.SuccessValues, log)
	}

	m := dashboard.NewModel(dashboard.Options{
		Config:    cfg,
		Preset:    preset,
		Evaluator: eval,
		Service:   service,
		Cache:     cache,
		History:   hist,
		Signals:   newSignals(log),
		Auditor:   auditor,
		Logger:    log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return newCommandError("dashboard", "running the dashboard", err, "Check that this terminal supports interactive programs.")
	}
	return nil
}
