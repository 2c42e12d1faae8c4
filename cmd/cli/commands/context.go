package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config

	// SheetsClient is nil unless the config names a staff or roster spreadsheet
	SheetsClient *sheetsclient.Client

	Logger *zap.Logger
	Ctx    context.Context
}

