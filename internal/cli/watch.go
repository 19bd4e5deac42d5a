package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/conditions/internal/scheduler"
)

func (a *app) watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch [POSTAL_CODE,COUNTRY]",
		Short: "Print a conditions JSON line now and then on every interval",
		Long: `Print a conditions JSON line now and then on every interval, for status bars.
A failed refresh is logged and the next interval tries again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			region := ""
			if len(args) == 1 {
				region = args[0]
			}
			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.WatchInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.withDeps(ctx, true, func(d *Deps) error {
				sched := scheduler.New(interval, func(jobCtx context.Context) error {
					out, err := d.Service.Current(jobCtx, region, a.cfg.Settings())
					if err != nil {
						return err
					}
					return printJSON(cmd, out)
				})
				if err := sched.Start(); err != nil {
					return err
				}
				defer sched.Stop()

				<-ctx.Done()
				return nil
			})
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 15*time.Minute, "refresh interval (default from WATCH_INTERVAL)")
	return cmd
}
