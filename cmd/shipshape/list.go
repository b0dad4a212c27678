package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/shipshape/internal/registry"
	"github.com/alexisbeaulieu97/shipshape/internal/tui"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(flags *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions) error {
	reg, err := openRegistry()
	if err != nil {
		return err
	}

	presets := reg.List()
	if len(presets) == 0 {
		return renderEmptyList(cmd)
	}

	cache, err := openStatusCache()
	if err != nil {
		return err
	}

	enriched := enrichPresetsWithStatus(presets, cache)

	if opts.jsonOutput {
		return renderListJSON(cmd, enriched)
	}

	return renderListTable(cmd, enriched)
}

type presetWithStatus struct {
	Preset registry.Preset
	Status registry.CachedStatus
	Known  bool
}

func enrichPresetsWithStatus(presets []registry.Preset, cache *registry.StatusCache) []presetWithStatus {
	enriched := make([]presetWithStatus, len(presets))

	for i, p := range presets {
		status, ok := cache.Get(p.ID)

		enriched[i] = presetWithStatus{
			Preset: p,
			Status: status,
			Known:  ok,
		}
	}

	sort.Slice(enriched, func(i, j int) bool {
		return enriched[i].Preset.ID < enriched[j].Preset.ID
	})

	return enriched
}

func renderEmptyList(cmd *cobra.Command) error {
	fmt.Fprintln(cmd.OutOrStdout(), "No presets registered yet.")
	fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'shipshape add <config-path>' to add your first preset.")
	return nil
}

func renderListTable(cmd *cobra.Command, presets []presetWithStatus) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "ID\tNAME\tSTATUS\tLAST RUN\tPATH")

	useUnicode := supportsUnicode(cmd.OutOrStdout())

	for _, p := range presets {
		statusStr := formatReadiness(p.Status, p.Known, useUnicode)
		lastRun := tui.FormatRelativeTime(p.Status.LastRun)

		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			p.Preset.ID,
			valueOrFallback(p.Preset.Name, "(no name)"),
			statusStr,
			lastRun,
			p.Preset.Path,
		)
	}

	return writer.Flush()
}

type listJSONPreset struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Path         string    `json:"path"`
	Description  string    `json:"description"`
	RegisteredAt time.Time `json:"registered_at"`
	AllComplete  bool      `json:"all_complete"`
	Score        float64   `json:"score"`
	LastRun      time.Time `json:"last_run"`
	Summary      string    `json:"summary"`
}

type listJSONPayload struct {
	Version string           `json:"version"`
	Count   int              `json:"count"`
	Presets []listJSONPreset `json:"presets"`
}

func renderListJSON(cmd *cobra.Command, presets []presetWithStatus) error {
	payload := listJSONPayload{
		Version: "1.0",
		Count:   len(presets),
		Presets: make([]listJSONPreset, len(presets)),
	}

	for i, p := range presets {
		payload.Presets[i] = listJSONPreset{
			ID:           p.Preset.ID,
			Name:         p.Preset.Name,
			Path:         p.Preset.Path,
			Description:  p.Preset.Description,
			RegisteredAt: p.Preset.RegisteredAt,
			AllComplete:  p.Status.AllComplete,
			Score:        p.Status.Score,
			LastRun:      p.Status.LastRun,
			Summary:      p.Status.Summary,
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatReadiness(status registry.CachedStatus, known bool, useUnicode bool) string {
	if !known {
		return "unknown"
	}

	icon := "✖"
	if status.AllComplete {
		icon = "✔"
	}
	if !useUnicode {
		icon = "[!!]"
		if status.AllComplete {
			icon = "[OK]"
		}
	}

	if status.Summary != "" {
		return fmt.Sprintf("%s %s", icon, status.Summary)
	}
	if status.AllComplete {
		return icon + " ready"
	}
	return icon + " attention"
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
