package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/shipshape/internal/beacon"
	"github.com/alexisbeaulieu97/shipshape/internal/config"
	"github.com/alexisbeaulieu97/shipshape/internal/history"
	"github.com/alexisbeaulieu97/shipshape/internal/logger"
	"github.com/alexisbeaulieu97/shipshape/internal/registry"
)

// resolveConfig turns a positional config path or the --preset flag into a
// preset ID plus the parsed config. A bare path gets a derived preset ID so
// state and history stay addressable.
func resolveConfig(flags *rootFlags, args []string) (string, *config.Config, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	presetID := flags.preset
	if path == "" {
		if presetID == "" {
			return "", nil, newCommandError(
				"resolve config",
				"locating a configuration",
				errors.New("no config file or preset given"),
				"Pass a config path, or --preset <id> for a registered preset. Run 'shipshape list' to see what is registered.",
			)
		}

		reg, err := openRegistry()
		if err != nil {
			return "", nil, err
		}
		preset, err := reg.Get(presetID)
		if err != nil {
			return "", nil, newCommandError(
				"resolve config",
				fmt.Sprintf("looking up preset %q", presetID),
				err,
				"Run 'shipshape list' to see registered presets.",
			)
		}
		path = preset.Path
	}

	cfg, err := config.ParseConfig(path)
	if err != nil {
		return "", nil, newCommandError(
			"resolve config",
			fmt.Sprintf("parsing %s", path),
			err,
			"Fix the configuration errors shown above and try again.",
		)
	}

	if presetID == "" {
		presetID = registry.GeneratePresetID(path)
	}
	return presetID, cfg, nil
}

func newLogger(flags *rootFlags) (*logger.Logger, error) {
	level := viper.GetString("log.level")
	if flags.verbose {
		level = "debug"
	}

	return logger.New(logger.Options{Level: level, HumanReadable: true, NoColor: flags.noColor})
}

func newSignals(log *logger.Logger) *beacon.Beacon {
	return beacon.New(viper.GetString("signals.dir"), log)
}

func openRegistry() (*registry.Registry, error) {
	path, err := defaultRegistryPath()
	if err != nil {
		return nil, newCommandError("open registry", "determining registry path", err, "Ensure your HOME directory is set correctly.")
	}

	reg, err := registry.NewRegistry(path)
	if err != nil {
		return nil, newCommandError("open registry", "loading preset registry", err, "Check registry file permissions and try again.")
	}
	return reg, nil
}

func openStateStore() (*registry.StateStore, error) {
	path, err := defaultStatePath()
	if err != nil {
		return nil, newCommandError("open state", "determining state path", err, "Ensure your HOME directory is set correctly.")
	}

	states, err := registry.NewStateStore(path)
	if err != nil {
		return nil, newCommandError("open state", "loading saved wizard runs", err, "Check state file permissions and try again.")
	}
	return states, nil
}

func openStatusCache() (*registry.StatusCache, error) {
	path, err := defaultStatusCachePath()
	if err != nil {
		return nil, newCommandError("open status cache", "determining status cache path", err, "Ensure your HOME directory is set correctly.")
	}

	cache, err := registry.NewStatusCache(path)
	if err != nil {
		return nil, newCommandError("open status cache", "loading status cache", err, "Check status cache file permissions and try again.")
	}
	return cache, nil
}

func openHistory() (*history.Store, error) {
	path, err := defaultHistoryPath()
	if err != nil {
		return nil, newCommandError("open history", "determining history path", err, "Ensure your HOME directory is set correctly.")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, newCommandError("open history", "creating the data directory", err, "Check directory permissions and try again.")
	}

	store, err := history.Open(path)
	if err != nil {
		return nil, newCommandError("open history", "opening the run history database", err, "Check database file permissions and try again.")
	}
	return store, nil
}
