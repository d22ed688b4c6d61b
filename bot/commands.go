package bot

import (
	"fmt"
	"strings"

	"github.com/m3rciful/expensebot/core/logger"
	"github.com/m3rciful/expensebot/core/telegram/commands"
	tghelpers "github.com/m3rciful/expensebot/core/telegram/helpers"
	"github.com/m3rciful/expensebot/sheets"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

const (
	msgGreeting = "👋 Hi! I record your expenses into a Google Spreadsheet.\n\n" +
		"Use /add_expense to record one, /help for the full command list."
	msgNoSpreadsheet = "📄 No spreadsheet connected yet. Ask the admin to run /set_sheet with a Google Sheets link."
	msgSetSheetUsage = "Usage: /set_sheet <Google Sheets link>\n" +
		"The service account must have edit access to the spreadsheet."
)

func (a *App) registerCommands() {
	reg := a.registry

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Greeting and a short intro",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.handleHelp,
		Description: "List available commands",
	})
	reg.RegisterCommand("/add_expense", commands.Command{
		Handler:     a.handleAddExpense,
		Description: "Record a new expense",
	})
	reg.RegisterCommand("/skip", commands.Command{
		Handler:     a.engine.Skip,
		Description: "Skip the comment step",
		Hidden:      true,
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.engine.Cancel,
		Description: "Cancel the current entry",
	})
	reg.RegisterCommand("/set_sheet", commands.Command{
		Handler:     a.handleSetSheet,
		Description: "Connect a Google Spreadsheet",
		AdminOnly:   true,
	})
}

func (a *App) handleStart(c tele.Context) error {
	return tghelpers.SendText(c, msgGreeting)
}

func (a *App) handleHelp(c tele.Context) error {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, cmd := range a.registry.ListCommands(false) {
		fmt.Fprintf(&b, "%s — %s\n", cmd.Text, cmd.Description)
	}
	b.WriteString("\n")
	if id := a.client.SpreadsheetID(); id != "" {
		fmt.Fprintf(&b, "Connected spreadsheet: %s", id)
	} else {
		b.WriteString("No spreadsheet connected.")
	}
	return tghelpers.SendText(c, b.String())
}

func (a *App) handleAddExpense(c tele.Context) error {
	if a.client.SpreadsheetID() == "" {
		return tghelpers.SendText(c, msgNoSpreadsheet)
	}
	return a.engine.Start(c)
}

// handleSetSheet connects a spreadsheet by link, verifies access and reloads
// the category catalog. A reload failure does not roll the switch back: the
// spreadsheet may simply not have its category sheet filled in yet.
func (a *App) handleSetSheet(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)

	arg := strings.TrimSpace(c.Message().Payload)
	if arg == "" {
		return tghelpers.SendText(c, msgSetSheetUsage)
	}

	id, err := sheets.ParseSpreadsheetURL(arg)
	if err != nil {
		return tghelpers.SendText(c, "❌ "+err.Error())
	}

	previous := a.client.SpreadsheetID()
	a.client.SetSpreadsheet(id)
	if err := a.client.Verify(ctx); err != nil {
		a.client.SetSpreadsheet(previous)
		logger.Warn(ctx, "bot", "set_sheet.verify_failed",
			slog.String("spreadsheet_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "❌ Cannot open that spreadsheet. Check the link and the service account's access.")
	}

	if err := a.catalog.Reload(ctx); err != nil {
		logger.Warn(ctx, "bot", "set_sheet.catalog_reload_failed",
			slog.String("spreadsheet_id", id),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c,
			"✅ Spreadsheet connected, but loading categories failed. "+
				"Fill the '"+a.cfg.Sheets.CategorySheet+"' sheet and run /set_sheet again.")
	}

	logger.Info(ctx, "bot", "set_sheet.ok",
		slog.String("spreadsheet_id", id),
		slog.Int("categories", a.catalog.Len()),
	)
	return tghelpers.SendText(c, fmt.Sprintf("✅ Spreadsheet connected. Loaded %d categories.", a.catalog.Len()))
}
