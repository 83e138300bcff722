package app

import (
	"os"

	"bakery-dispatch/internal/config"
	"bakery-dispatch/internal/logx"
)

// NewLogger builds the service logger: slog JSON on stdout, or zap when LOG_BACKEND=zap.
func NewLogger(cfg *config.Config) (logx.Logger, error) {
	if cfg.Log.Backend == "zap" {
		return logx.NewZapProduction(cfg.Log.Level)
	}
	return logx.NewJSON(os.Stdout, cfg.Log.Level), nil
}
