package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newResetCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <preset-id>",
		Short: "Clear saved wizard progress and cached status for a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd, args[0])
		},
	}

	return cmd
}

func runReset(cmd *cobra.Command, presetID string) error {
	if strings.TrimSpace(presetID) == "" {
		return newCommandError("reset", "validating preset ID", errors.New("preset ID cannot be empty"), "Provide the preset ID to reset.")
	}

	states, err := openStateStore()
	if err != nil {
		return err
	}
	if err := states.Delete(presetID); err != nil {
		return newCommandError("reset", fmt.Sprintf("clearing saved progress for %q", presetID), err, "Check state file permissions and try again.")
	}

	cache, err := openStatusCache()
	if err != nil {
		return err
	}
	cache.Invalidate(presetID)
	if err := cache.Save(); err != nil {
		return newCommandError("reset", "saving status cache", err, "Check disk space and file permissions, then retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared saved progress for '%s'\n", presetID)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nThe next wizard run will start from the first page.")

	return nil
}
