package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blogem/form-intake/authenticator"
	"github.com/blogem/form-intake/controllers"
	"github.com/blogem/form-intake/database"
	"github.com/blogem/form-intake/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP intake server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var verifier authenticator.Verifier
		if a.cfg.Admin.Issuer != "" {
			v, err := authenticator.NewOIDCVerifier(cmd.Context(), authenticator.OIDCConfig{
				Issuer:   a.cfg.Admin.Issuer,
				ClientID: a.cfg.Admin.ClientID,
			})
			if err != nil {
				return fmt.Errorf("failed to initialize admin verifier: %w", err)
			}
			verifier = v
		}

		ctrl := controllers.NewControllers(a.services, a.cfg, a.log)
		server := &http.Server{
			Addr:    a.cfg.Server.Addr,
			Handler: controllers.NewRouter(ctrl, verifier, a.cfg.Server.Timeout, a.log),
		}

		// signal.Notify requires the channel to be buffered
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)

		version, err := database.SchemaVersion(a.db)
		if err != nil {
			return err
		}

		errs := make(chan error, 1)
		go func() {
			a.log.Info("server starting",
				"schema_version", version,
				"addr", server.Addr,
				"env", a.cfg.Env,
				"version", a.cfg.Version,
				"store", a.cfg.Store.Path,
				"forms", a.services.Intake.Forms(),
				"admin_auth", verifier != nil,
			)
			errs <- server.ListenAndServe()
		}()

		select {
		case err := <-errs:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		case sig := <-stop:
			a.log.Info("shutting down", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			a.log.Error("graceful shutdown failed", logger.Err(err))
			return server.Close()
		}

		a.log.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
