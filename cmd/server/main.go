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

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	router "github.com/dkeye/CallSignal/internal/adapters/http"
	"github.com/dkeye/CallSignal/internal/app"
	"github.com/dkeye/CallSignal/internal/app/gateway"
	"github.com/dkeye/CallSignal/internal/config"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "callsignal",
		Short:        "WebRTC call-signaling relay: rooms, presence, offer/answer relay",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.Flags())
		},
	}
	cmd.Flags().String("config-env", "", "config file suffix, config/config.<env>.yaml (default $CONFIG_ENV or dev)")
	cmd.Flags().Int("port", 8080, "HTTP listen port")
	cmd.Flags().String("mode", "release", "gin mode: debug or release")
	cmd.Flags().String("log-level", "info", "zerolog level")
	cmd.Flags().String("static-path", "./web", "directory served at /static")
	return cmd
}

func run(ctx context.Context, flags *pflag.FlagSet) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(flags)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return err
	}
	setupLogger(cfg)

	policy, err := app.PolicyByName(cfg.SendPolicy)
	if err != nil {
		log.Error().Err(err).Msg("bad send policy")
		return err
	}

	gw := gateway.New(app.NewPresenceRegistry(), app.NewRoomDirectory(), app.NewSessionTable())
	gw.Policy = policy
	gw.JoinLimiter = app.NewRateLimiter(cfg.JoinRateLimit, cfg.JoinRateInterval)

	r := router.SetupRouter(ctx, cfg, gw)
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Msg("signal server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return err
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}

func setupLogger(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	// JSON lines in release, human-friendly output otherwise.
	if cfg.Mode == "release" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
}
