package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) currentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current [POSTAL_CODE,COUNTRY]",
		Short: "Print current conditions as {\"temp\",\"icon\"} JSON",
		Long: `Print the current temperature and a weather glyph.

The location is the region argument when given, otherwise the stored
location, otherwise the one inferred from your public IP address.`,
		Example: "  conditions current\n  conditions current 10001,US",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region := ""
			if len(args) == 1 {
				region = args[0]
			}

			return a.withDeps(cmd.Context(), false, func(d *Deps) error {
				out, err := d.Service.Current(cmd.Context(), region, a.cfg.Settings())
				if err != nil {
					return err
				}
				return printJSON(cmd, out)
			})
		},
	}
}
