package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/m3rciful/expensebot/bot"
	coreconfig "github.com/m3rciful/expensebot/core/config"
	corebootstrap "github.com/m3rciful/expensebot/core/bootstrap"
	corecmd "github.com/m3rciful/expensebot/core/cmd"
)

func main() {
	// Local development convenience; the file is absent in production.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		Bootstrap: func(ctx context.Context, cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
			res, err := corebootstrap.Run(ctx, corebootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return bot.NewApp(cfg, res.Client, res.Catalog), nil
		},
	})
	if err != nil {
		log.Fatalf("expensebot: %v", err)
	}
}
