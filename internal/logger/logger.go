package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/wordroots-bot/internal/config"
)

// New builds the application logger: JSON output in production,
// human-readable console output everywhere else.
func New(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Env == "production" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l.With(zap.String("env", cfg.Env)), nil
}
