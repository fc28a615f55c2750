package commands

import (
	"go.uber.org/zap"

	"github.com/jakechorley/bonuspool/internal/config"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
}
