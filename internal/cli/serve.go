package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dori/zendo/internal/api"
	"github.com/dori/zendo/internal/app"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret := []byte(c.cfg.Secret().Unmask())
			if len(secret) == 0 {
				return fmt.Errorf("%w: set api.secret in the config or ZENDO_API_SECRET", api.ErrNoSecret)
			}
			if addr == "" {
				addr = c.cfg.API.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return c.withApp(ctx, true, func(a *app.App) error {
				srv := api.NewServer(a.Tasks, a.DB, api.Config{
					Secret:         secret,
					AllowedOrigins: c.cfg.API.AllowedOrigins,
					Logger:         a.Log,
				})
				return srv.Run(ctx, addr)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

func (c *cli) tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if ttl <= 0 {
				ttl = c.cfg.API.TokenTTL
			}
			tok, err := api.GenerateToken([]byte(c.cfg.Secret().Unmask()), subject, ttl, time.Now())
			if errors.Is(err, api.ErrNoSecret) {
				return fmt.Errorf("%w: set api.secret in the config or ZENDO_API_SECRET", err)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "zendo", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default from config)")
	return cmd
}
