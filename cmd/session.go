package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jfmyers9/soundstats/internal/config"
	"github.com/jfmyers9/soundstats/pkg/spotify"
	"github.com/rs/zerolog"
)

// env is what every API command starts from.
type env struct {
	cfg    *config.Config
	logger zerolog.Logger
	client *spotify.Client
}

// signalContext returns a context cancelled on the first interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// loadEnv reads configuration and sets up logging. Flags override the
// configured log level and TLS setting.
func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if insecure {
		cfg.Insecure = true
	}

	return &env{
		cfg:    cfg,
		logger: setupLogger(logFile, cfg.LogLevel),
	}, nil
}

// login builds a client from the configured credentials and exchanges
// them for a session.
func (e *env) login(ctx context.Context) error {
	if !e.cfg.HasCredentials() {
		return fmt.Errorf("missing Spotify credentials: set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET, or run 'soundstats auth --save'")
	}

	if e.cfg.Insecure {
		e.logger.Warn().Msg("TLS certificate verification is disabled")
	}

	client, err := spotify.NewClient(spotify.Config{
		ClientID:           e.cfg.Spotify.ClientID,
		ClientSecret:       e.cfg.Spotify.ClientSecret,
		InsecureSkipVerify: e.cfg.Insecure,
		Logger:             debugLogger{logger: e.logger.With().Str("component", "spotify").Logger()},
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	if _, err := client.Auth().Login(ctx); err != nil {
		return err
	}
	e.logger.Debug().Msg("Authenticated with Spotify")

	e.client = client
	return nil
}

// connect loads configuration and logs in.
func connect(ctx context.Context) (*env, error) {
	e, err := loadEnv()
	if err != nil {
		return nil, err
	}
	if err := e.login(ctx); err != nil {
		return nil, err
	}
	return e, nil
}
