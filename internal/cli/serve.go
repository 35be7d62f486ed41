package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formdesigner"
	"github.com/goliatone/go-formdesigner/internal/auth"
	"github.com/goliatone/go-formdesigner/internal/logging"
	"github.com/goliatone/go-formdesigner/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr   string
		secure bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the designer API and HTML preview",
		Long: `Start the HTTP surface. Users sign in through POST /api/session and each
gets a private in-memory workspace. Session tokens are signed with
FORMDESIGNER_SESSION_SECRET; when unset a random secret is generated and
sessions end with the process.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig(map[string]any{"server.addr": addr})
			if err != nil {
				return err
			}
			logger := a.logger(cfg, cmd.ErrOrStderr())
			defer logger.Sync()

			authCfg, err := auth.LoadConfigFromEnv(time.Now)
			if err != nil {
				return err
			}
			if authCfg.Ephemeral {
				logger.Warn("FORMDESIGNER_SESSION_SECRET not set, using an ephemeral secret")
			}
			gate, err := auth.NewGate(authCfg)
			if err != nil {
				return err
			}

			wsOpts, err := workspaceOptions(cfg)
			if err != nil {
				return err
			}
			if _, err := formdesigner.NewWorkspace(wsOpts...); err != nil {
				return err
			}
			srv, err := server.New(gate,
				server.WithLogger(logger.Named("http")),
				server.WithWorkspaceFactory(func() (*formdesigner.Workspace, error) {
					return formdesigner.NewWorkspace(wsOpts...)
				}),
				server.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
				server.WithSecureCookies(secure),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return listen(ctx, cfg.Server.Addr, srv.Handler(), logger)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8080)")
	cmd.Flags().BoolVar(&secure, "secure-cookies", false, "Mark the session cookie Secure")
	return cmd
}

func listen(ctx context.Context, addr string, handler http.Handler, logger *logging.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", logging.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
