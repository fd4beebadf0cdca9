package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diogo/geminichat/internal/config"
	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/gateway"
	"github.com/diogo/geminichat/internal/logging"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
	"github.com/diogo/geminichat/internal/session"
)

// app is everything a chat or ask run needs once startup succeeded
type app struct {
	cfg        config.Config
	appearance models.Appearance
	logger     *slog.Logger
	gateway    gateway.Gateway
}

// loadConfig reads .env, the config file and env overrides, then applies
// command-line flags on top.
func loadConfig(global *globalOptions) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return cfg, err
	}

	if global != nil {
		if global.model != "" {
			cfg.Model = global.model
		}
		if global.appearance != "" {
			cfg.Appearance = strings.ToLower(global.appearance)
		}
		if global.logLevel != "" {
			cfg.LogLevel = global.logLevel
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, apierrors.NewConfigError("command line", err)
	}
	return cfg, nil
}

// loadApp performs startup: configuration, logging, appearance and the
// gateway. A missing API key stops here, before any UI is shown.
func loadApp(ctx context.Context, deps *Dependencies, global *globalOptions) (*app, error) {
	cfg, err := loadConfig(global)
	if err != nil {
		return nil, err
	}

	logger, err := logging.Init(cfg)
	if err != nil {
		// Logging is best effort; the logger discards output in this case
		logger.Debug("log_file_unavailable", "error", err)
	}

	appearance, err := render.ResolveAppearance(cfg.Appearance)
	if err != nil {
		return nil, apierrors.NewConfigError("appearance", err)
	}

	apiKey, err := config.APIKey()
	if err != nil {
		logger.Error("startup_failed", "error", err)
		return nil, err
	}

	gw, err := deps.NewGateway(ctx, apiKey, cfg)
	if err != nil {
		logger.Error("gateway_init_failed", "error", err)
		return nil, fmt.Errorf("failed to create gateway: %w", err)
	}

	logger.Info("startup",
		"model", models.ModelFromName(cfg.Model),
		"appearance", appearance.String(),
		"version", Version,
	)

	return &app{
		cfg:        cfg,
		appearance: appearance,
		logger:     logger,
		gateway:    gw,
	}, nil
}

// newSession creates a conversation session for this run
func (a *app) newSession() *session.Session {
	return session.New(
		session.WithAppearance(a.appearance),
		session.WithLogger(a.logger),
	)
}
