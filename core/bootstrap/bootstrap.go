// Package bootstrap initializes the infrastructure the bot depends on before
// any Telegram traffic is served: logging and the spreadsheet backend.
package bootstrap

import (
	"context"
	"fmt"

	coreconfig "github.com/m3rciful/expensebot/core/config"
	"github.com/m3rciful/expensebot/core/logger"
	"github.com/m3rciful/expensebot/sheets"
	"log/slog"
)

// Options control the bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	NewClient  func(ctx context.Context, credentialsJSON []byte) (*sheets.Client, error)
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Client  *sheets.Client
	Catalog *sheets.Catalog
}

// Run initializes the logger, authenticates with Google Sheets and, when a
// spreadsheet is configured, verifies access and loads the category catalog.
// An unreachable configured spreadsheet is a startup failure; an empty or
// unreadable category sheet is not.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.Init
	}
	if err := loggerInit(cfg); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	newClient := opts.NewClient
	if newClient == nil {
		newClient = sheets.New
	}
	client, err := newClient(ctx, []byte(cfg.Sheets.CredentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("bootstrap: sheets initialization failed: %w", err)
	}

	catalog := sheets.NewCatalog(client, cfg.Sheets.CategorySheet)

	if id := cfg.Sheets.SpreadsheetID; id != "" {
		client.SetSpreadsheet(id)
		if err := client.Verify(ctx); err != nil {
			return nil, fmt.Errorf("bootstrap: configured spreadsheet check failed: %w", err)
		}
		if err := catalog.Reload(ctx); err != nil {
			logger.Warn(ctx, "bootstrap", "catalog.load_failed",
				slog.String("spreadsheet_id", id),
				slog.String("err", err.Error()),
			)
		} else {
			logger.Info(ctx, "bootstrap", "catalog.loaded",
				slog.String("spreadsheet_id", id),
				slog.Int("categories", catalog.Len()),
			)
		}
	} else {
		logger.Warn(ctx, "bootstrap", "spreadsheet.unset")
	}

	return &Result{Client: client, Catalog: catalog}, nil
}
