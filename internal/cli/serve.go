package cli

import (
	"context"
	"errors"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/conditions/internal/api/http"
	"github.com/i474232898/conditions/internal/logger"
	"github.com/i474232898/conditions/internal/weather"
)

func (a *app) serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conditions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = a.cfg.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.withDeps(ctx, true, func(d *Deps) error {
				settings := func() weather.Settings { return a.cfg.Settings() }
				srv := httpapi.NewApp(d.Service, settings, httpapi.Options{AccessLog: true})

				ln, err := net.Listen("tcp", net.JoinHostPort("", port))
				if err != nil {
					return err
				}
				logger.Infof("serve: listening on %s", ln.Addr())

				errCh := make(chan error, 1)
				go func() {
					errCh <- srv.Listener(ln)
				}()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Errorf("error during shutdown: %v", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "listen port (default from PORT)")
	return cmd
}
