package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	jwttoken "mediaconsole/internal/jwt_token"
	"mediaconsole/internal/platform/config"
	"mediaconsole/internal/platform/logger"
	id "mediaconsole/pkg/domain"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "mediaconsole",
		Short:        "Media console backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotEnv(opts.envFile)
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")

	serve := newServeCmd(opts)
	root.AddCommand(serve, newConfigCmd(opts), newTokenCmd(opts))
	// serve is the default action.
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			level, err := logger.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			log := logger.New(os.Stdout, level, cfg.Log.Format)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			if seed {
				if err := seedDemo(ctx, app); err != nil {
					return fmt.Errorf("seed demo data: %w", err)
				}
				log.InfoContext(ctx, "demo data seeded", "partner_id", demoPartner)
			}

			srv := app.Server()
			errCh := make(chan error, 1)
			go func() {
				log.InfoContext(ctx, "starting mediaconsole", "addr", cfg.Server.Addr)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "load demo entries, playlists and permissions (in-memory stores only)")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the example configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "mediaconsole.toml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.CreateConfigFile(path); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			cfg.Auth.JWTSigningKey = "<redacted>"
			out, err := config.Encode(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	})
	return cmd
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		user    string
		partner int64
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a session token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cfg.Client.Production {
				return errors.New("token minting is disabled in production")
			}
			userID := id.UserID(uuid.New())
			if user != "" {
				if userID, err = id.ParseUserID(user); err != nil {
					return err
				}
			}
			svc := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
			token, err := svc.GenerateSessionToken(userID, id.PartnerID(partner), ttl)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", demoUser.String(), "user id (UUID)")
	cmd.Flags().Int64Var(&partner, "partner", int64(demoPartner), "partner id")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
