package command

import (
	"context"
	"errors"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/stolasapp/catalog/internal/app"
	"github.com/stolasapp/catalog/internal/app/devseed"
	"github.com/stolasapp/catalog/internal/config"
	"github.com/stolasapp/catalog/internal/sec"
	"github.com/stolasapp/catalog/internal/server"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "serve the product catalog API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (runErr error) {
			cfg, logger, store, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					runErr = errors.Join(runErr, err)
				}
			}()

			grp, ctx := errgroup.WithContext(cmd.Context())

			// In dev mode, fill an empty store with demo products
			if cfg.DevMode {
				if _, err = devseed.Populate(ctx, logger, store, devseed.Seed()); err != nil {
					return err
				}
			}

			auth := sec.NewAuthenticator(
				sec.StaticCredentials{
					Username:     cfg.Credentials.Username,
					PasswordHash: []byte(cfg.Credentials.PasswordHash),
				},
				sec.NewTokens([]byte(cfg.SigningSecret), sec.WithTTL(cfg.TokenTTL)),
			)
			appServer := app.New(cfg, logger, store, auth)

			serveApp(ctx, grp, cfg, logger, appServer)
			return grp.Wait()
		},
	}
}

func serveApp(
	ctx context.Context,
	grp *errgroup.Group,
	cfg *config.Config,
	logger *slog.Logger,
	srv *echo.Echo,
) {
	addr := cfg.Address()
	listener, err := server.Listen(ctx, addr)
	if err != nil {
		grp.Go(func() error { return err })
		return
	}

	logger.InfoContext(ctx,
		"starting app server...",
		slog.String("address", listener.Addr().String()),
		slog.String("db", cfg.DBFilepath),
	)
	server.Serve(ctx, grp, logger, srv.Server, listener)
}
