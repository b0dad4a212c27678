package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shipshape/internal/inspect"
	"github.com/alexisbeaulieu97/shipshape/internal/tui/wizard"
)

func newWizardCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wizard [config-file]",
		Short: "Walk the guided readiness flow",
		Long: `Wizard walks the configured items one page at a time, validating each in
the background and saving progress so an interrupted run resumes. Exits 0
when the flow ends through the final page, 2 when skipped or quit early.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(flags, args)
		},
	}

	return cmd
}

func runWizard(flags *rootFlags, args []string) error {
	preset, cfg, err := resolveConfig(flags, args)
	if err != nil {
		return err
	}

	log, err := newLogger(flags)
	if err != nil {
		return newCommandError("wizard", "creating logger", err, "Check the log.level setting in your tool config.")
	}

	states, err := openStateStore()
	if err != nil {
		return err
	}

	eval := inspect.FromConfig(cfg, log)
	service := inspect.NewService(eval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Start(ctx)
	defer service.Stop()

	m := wizard.NewModel(wizard.Options{
		Config:    cfg,
		Preset:    preset,
		Evaluator: eval,
		Service:   service,
		States:    states,
		Signals:   newSignals(log),
		Logger:    log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return newCommandError("wizard", "running the wizard", err, "Check that this terminal supports interactive programs.")
	}

	final, ok := finalModel.(*wizard.Model)
	if !ok {
		return nil
	}
	if code := final.Outcome().ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}
