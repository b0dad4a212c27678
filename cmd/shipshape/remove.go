package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type removeOptions struct {
	force bool
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	opts := &removeOptions{}

	cmd := &cobra.Command{
		Use:   "remove <preset-id>",
		Short: "Remove a preset from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Remove without confirmation")

	return cmd
}

func runRemove(cmd *cobra.Command, presetID string, opts *removeOptions) error {
	if strings.TrimSpace(presetID) == "" {
		return newCommandError("remove", "validating preset ID", errors.New("preset ID cannot be empty"), "Provide the preset ID you wish to remove.")
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}

	preset, err := reg.Get(presetID)
	if err != nil {
		return newCommandError("remove", fmt.Sprintf("looking up preset %q", presetID), err, "Run 'shipshape list' to view registered presets.")
	}

	if !opts.force {
		confirmed, err := confirmRemoval(cmd, presetID, preset.Name)
		if err != nil {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := reg.Remove(presetID); err != nil {
		return newCommandError("remove", fmt.Sprintf("removing preset %q", presetID), err, "Verify the preset still exists using 'shipshape list'.")
	}

	if err := reg.Save(); err != nil {
		return newCommandError("remove", "saving registry", err, "Check disk space and file permissions, then retry.")
	}

	// Drop the cached status and any saved wizard progress along with the preset.
	if cache, err := openStatusCache(); err == nil {
		cache.Invalidate(presetID)
		_ = cache.Save()
	}
	if states, err := openStateStore(); err == nil {
		_ = states.Delete(presetID)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Removed preset '%s'\n", presetID)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nThe configuration file at %s was not deleted.\n", preset.Path)

	return nil
}

func confirmRemoval(cmd *cobra.Command, presetID, presetName string) (bool, error) {
	if !isTerminal(cmd.InOrStdin()) {
		return false, newCommandError("remove", "prompting for confirmation", errors.New("not a terminal"), "Use --force when running in non-interactive environments.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Remove preset '%s' (%s) from registry? [y/N]: ", presetID, presetName)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false, scanner.Err()
	}

	answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

func isTerminal(reader any) bool {
	if file, ok := reader.(*os.File); ok {
		return termIsTerminal(int(file.Fd()))
	}
	return false
}

var termIsTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}
