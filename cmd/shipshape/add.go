package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
)

type addOptions struct {
	id          string
	name        string
	description string
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add <config-path>",
		Short: "Register a readiness config as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, args[0], flags, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.id, "id", "i", "", "Preset ID (auto-generated if omitted)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Preset name (defaults to filename)")
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "Optional description")

	return cmd
}

func runAdd(cmd *cobra.Command, configPath string, flags *rootFlags, opts *addOptions) error {
	absPath, err := validateAndNormalizePath(configPath)
	if err != nil {
		return newCommandError("add", fmt.Sprintf("resolving config path %q", configPath), err, "Check that the file exists and you have permission to read it.")
	}

	if opts.name == "" {
		opts.name = deriveNameFromPath(absPath)
	}

	if opts.id == "" {
		opts.id = registry.GeneratePresetID(absPath)
	}

	if err := registry.ValidatePresetID(opts.id); err != nil {
		return newCommandError("add", "validating preset ID", err, "Provide an ID using lowercase letters, numbers, and hyphens. IDs must start and end with alphanumeric characters.")
	}

	if flags.verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "→ Validating config file: %s\n", absPath)
	}

	cfg, err := config.ParseConfig(absPath)
	if err != nil {
		return newCommandError("add", "validating configuration", err, "Fix the configuration errors shown above and try again.")
	}

	reg, err := openRegistry()
	if err != nil {
		return err
	}

	preset := registry.Preset{
		ID:           opts.id,
		Name:         opts.name,
		Path:         absPath,
		Description:  opts.description,
		RegisteredAt: time.Now().UTC(),
	}

	if err := reg.Add(preset); err != nil {
		return newCommandError("add", fmt.Sprintf("adding preset %q", opts.id), err, "Use a different ID or remove the existing preset first.")
	}

	if err := reg.Save(); err != nil {
		return newCommandError("add", "saving registry", err, "Check disk space and file permissions, then retry.")
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Added preset '%s' (%s)\n", preset.ID, preset.Name)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Path:  %s\n", preset.Path)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Items: %d\n", len(cfg.Items))

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'shipshape wizard --preset "+preset.ID+"' to walk through it.")

	return nil
}

func validateAndNormalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("config path cannot be empty")
	}

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a file", absPath)
	}

	return absPath, nil
}

func deriveNameFromPath(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return strings.TrimSpace(base)
}
