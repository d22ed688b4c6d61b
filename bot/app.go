// Package bot assembles the expense bot: it binds the conversation engine and
// the spreadsheet backend to the Telegram command and callback surface.
package bot

import (
	coreconfig "github.com/m3rciful/expensebot/core/config"
	tg "github.com/m3rciful/expensebot/core/telegram"
	tghelpers "github.com/m3rciful/expensebot/core/telegram/helpers"
	"github.com/m3rciful/expensebot/core/telegram/router"
	"github.com/m3rciful/expensebot/bot/flow"
	"github.com/m3rciful/expensebot/sheets"

	tele "gopkg.in/telebot.v4"
)

const (
	msgRateLimited = "⏳ Too fast, give it a second."
	msgAdminOnly   = "🔒 This command is for the bot admin."
	msgUnknownText = "🤔 I don't understand. Use /add_expense to record an expense or /help for the command list."
)

// App wires configuration, the Sheets backend and the dialogue engine into a
// runnable Telegram bot.
type App struct {
	cfg      *coreconfig.Config
	client   *sheets.Client
	catalog  *sheets.Catalog
	engine   *flow.Engine
	registry *tg.Registry
}

// NewApp builds the application over an authenticated Sheets client and a
// loaded (possibly empty) category catalog.
func NewApp(cfg *coreconfig.Config, client *sheets.Client, catalog *sheets.Catalog) *App {
	sink := sheets.NewSink(client, cfg.Sheets.ExpenseSheet, cfg.Sheets.IdentityColumn)
	engine := flow.New(catalog, sink, flow.Options{
		IncludeSubmitter: cfg.Sheets.IdentityColumn,
	})

	app := &App{
		cfg:      cfg,
		client:   client,
		catalog:  catalog,
		engine:   engine,
		registry: tg.NewRegistry(),
	}
	app.registerCommands()
	app.registerCallbacks()
	return app
}

// Registry exposes the command registry, mainly for tests.
func (a *App) Registry() *tg.Registry { return a.registry }

// TelegramRunOptions returns everything tg.RunTelegram needs to serve the bot.
func (a *App) TelegramRunOptions() tg.RunOptions {
	reg := a.registry

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Telegram.AdminID,
		OnAdminReject: func(c tele.Context) error {
			return tghelpers.SendText(c, msgAdminOnly)
		},
	})
	routes = append(routes, router.TextRoutes(a.engine, reg, router.TextOptions{
		UnknownText: func(c tele.Context) error {
			return tghelpers.SendText(c, msgUnknownText)
		},
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	return tg.RunOptions{
		Config:   a.cfg,
		Registry: reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, func(c tele.Context) error {
			return tghelpers.SendText(c, msgRateLimited)
		}),
		Routes: routes,
	}
}

func (a *App) registerCallbacks() {
	_ = a.registry.RegisterCallback(flow.CallbackDate, a.engine.HandleDateChoice)
}
