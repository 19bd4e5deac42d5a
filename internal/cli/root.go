// Package cli implements the conditions command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/conditions/internal/config"
	"github.com/i474232898/conditions/internal/logger"
)

type app struct {
	build      Builder
	configPath string
	verbose    bool
	cfg        *config.AppConfig
}

// NewRootCmd returns the root command. build supplies the service graph.
func NewRootCmd(build Builder) *cobra.Command {
	a := &app{build: build}

	root := &cobra.Command{
		Use:           "conditions",
		Short:         "Current weather for a postal code, your stored location or your IP",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger.SetLogLevel(cfg.LogLevel)
			if a.verbose {
				logger.SetLevel(logger.LevelDebug)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/conditions/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		a.currentCmd(),
		a.locationCmd(),
		a.weatherAPIKeyCmd(),
		a.unitCmd(),
		a.configCmd(),
		a.watchCmd(),
		a.serveCmd(),
	)
	return root
}

// withDeps builds the service graph for the duration of fn.
func (a *app) withDeps(ctx context.Context, longRunning bool, fn func(*Deps) error) error {
	deps, err := a.build(ctx, a.cfg, longRunning)
	if err != nil {
		return err
	}
	defer func() {
		if deps.Close == nil {
			return
		}
		if err := deps.Close(); err != nil {
			logger.Warnf("closing cache: %v", err)
		}
	}()
	return fn(deps)
}

func printJSON(cmd *cobra.Command, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
