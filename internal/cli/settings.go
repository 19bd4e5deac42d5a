package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/conditions/internal/weather"
)

func (a *app) locationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Manage the stored location",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set POSTAL_CODE,COUNTRY",
			Short: "Resolve a region and store it as the default location",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withDeps(cmd.Context(), false, func(d *Deps) error {
					loc, err := d.Service.Resolve(cmd.Context(), args[0], nil)
					if err != nil {
						return err
					}
					a.cfg.Stored.Location = &loc
					if err := a.cfg.Save(); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "location stored successfully")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "view",
			Short: "Show the stored location, or the one inferred from your IP",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if loc := a.cfg.Stored.Location; loc != nil {
					fmt.Fprintln(cmd.OutOrStdout(), loc)
					return nil
				}
				return a.withDeps(cmd.Context(), false, func(d *Deps) error {
					loc, err := d.Service.Resolve(cmd.Context(), "", nil)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), loc)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "unset",
			Short: "Forget the stored location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cfg.Stored.Location = nil
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "location unset successfully")
				return nil
			},
		},
	)
	return cmd
}

func (a *app) weatherAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather-api-key",
		Short: "Manage the weatherapi.com API key",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set KEY",
			Short: "Store the weatherapi.com key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cfg.Stored.WeatherAPIKey = args[0]
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "weatherapi.com key stored successfully")
				return nil
			},
		},
		&cobra.Command{
			Use:   "view",
			Short: "Show the stored weatherapi.com key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if a.cfg.Stored.WeatherAPIKey == "" {
					fmt.Fprintln(cmd.OutOrStdout(), "no weatherapi.com key stored")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "token stored as: %s\n", a.cfg.Stored.WeatherAPIKey)
				return nil
			},
		},
		&cobra.Command{
			Use:   "unset",
			Short: "Remove the stored weatherapi.com key",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cfg.Stored.WeatherAPIKey = ""
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "weatherapi.com key unset successfully")
				return nil
			},
		},
	)
	return cmd
}

func (a *app) unitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unit",
		Short: "Manage the temperature unit",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:       "set c|f",
			Short:     "Store the temperature unit (anything but c means fahrenheit)",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"c", "f"},
			RunE: func(cmd *cobra.Command, args []string) error {
				a.cfg.Stored.Unit = weather.ParseUnit(args[0])
				if err := a.cfg.Save(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "unit stored as: %s\n", a.cfg.Stored.Unit)
				return nil
			},
		},
		&cobra.Command{
			Use:   "view",
			Short: "Show the effective temperature unit",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintf(cmd.OutOrStdout(), "unit stored as: %s\n", a.cfg.Unit())
				return nil
			},
		},
	)
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "view",
			Short: "Print the stored configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), a.cfg.Stored)
				return nil
			},
		},
	)
	return cmd
}
