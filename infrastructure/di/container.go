// Package di wires the client together. Construction order matters:
// keystore before tokens, tokens before gateway, gateway before store,
// store before guard. The container owns that order so nothing else
// has to.
package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"blogspace-client/application/guard"
	"blogspace-client/application/store"
	"blogspace-client/domain/events"
	"blogspace-client/infrastructure/config"
	"blogspace-client/infrastructure/gateway"
	"blogspace-client/infrastructure/keystore"
	"blogspace-client/pkg/alerts"
	"blogspace-client/pkg/auth"
)

// Container holds every long-lived component of the client.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Alerter  alerts.Alerter
	Keystore *keystore.Store
	Emitter  *events.Emitter
	Tokens   *auth.Manager
	Gateway  *gateway.Client
	Store    *store.Store
	Guard    *guard.Guard
}

// NewContainer builds the full dependency graph. alerter may be nil,
// in which case alerts are discarded.
func NewContainer(cfg *config.Config, alerter alerts.Alerter) (*Container, error) {
	if alerter == nil {
		alerter = alerts.Noop{}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	ks := keystore.New(cfg.StateDir, logger)
	emitter := events.NewEmitter()

	tokens := auth.NewManager(ks, emitter, logger)
	tokens.SetIntervals(cfg.TokenCheckInterval, cfg.TokenRefreshWindow)

	gw := gateway.NewClient(cfg, tokens, emitter, logger)
	st := store.New(cfg, gw, tokens, emitter, alerter, logger)
	g := guard.New(st, tokens, cfg.GuardValidationWait, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Alerter:  alerter,
		Keystore: ks,
		Emitter:  emitter,
		Tokens:   tokens,
		Gateway:  gw,
		Store:    st,
		Guard:    g,
	}, nil
}

// Start begins the background work: the silent token refresh loop.
func (c *Container) Start(ctx context.Context) {
	c.Tokens.StartRefreshLoop(ctx, c.Gateway.RefreshToken)
	c.Logger.Info("client started",
		zap.String("baseUrl", c.Config.BaseURL),
		zap.String("environment", c.Config.Environment))
}

// Shutdown stops background work and flushes the logger.
func (c *Container) Shutdown() {
	c.Tokens.StopRefreshLoop()
	c.Store.Close()
	c.Logger.Info("client stopped")
	_ = c.Logger.Sync()
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}
