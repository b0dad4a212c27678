package main

import (
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootFlags struct {
	verbose bool
	noColor bool
	preset  string
}

var cfgFile string

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "shipshape",
		Short:         "Shipshape checks a machine against its readiness config",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// If no subcommand is provided, launch the dashboard
			if len(args) == 0 {
				return runDashboard(flags, args)
			}
			return cmd.Help()
		},
	}

	cobra.OnInitialize(initConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Tool config file (default is $HOME/.shipshape.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVarP(&flags.preset, "preset", "p", "", "Registered preset to operate on")

	cmd.AddCommand(newWizardCmd(flags))
	cmd.AddCommand(newDashboardCmd(flags))
	cmd.AddCommand(newVerifyCmd(flags))
	cmd.AddCommand(newReportCmd(flags))
	cmd.AddCommand(newAddCmd(flags))
	cmd.AddCommand(newRemoveCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newHistoryCmd(flags))
	cmd.AddCommand(newResetCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// initConfig reads in the tool config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".shipshape")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SHIPSHAPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			if home != "" {
				if err := viper.SafeWriteConfigAs(filepath.Join(home, ".shipshape.yaml")); err != nil {
					fmt.Fprintf(os.Stderr, "Error creating config file: %s\n", err)
				}
			}
		}
	}

	viper.SetDefault("log.level", "info")
	viper.SetDefault("signals.dir", "")
	viper.SetDefault("history.keep", 200)
}
