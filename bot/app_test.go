package bot

import (
	"strings"
	"testing"

	coreconfig "github.com/m3rciful/expensebot/core/config"
	"github.com/m3rciful/expensebot/sheets"

	tele "gopkg.in/telebot.v4"
)

type fakeTeleContext struct {
	tele.Context

	sender  *tele.User
	payload string
	sent    []string
	store   map[string]interface{}
}

func newFakeContext() *fakeTeleContext {
	return &fakeTeleContext{
		sender: &tele.User{ID: 1, Username: "tester"},
		store:  map[string]interface{}{},
	}
}

func (f *fakeTeleContext) Sender() *tele.User  { return f.sender }
func (f *fakeTeleContext) Chat() *tele.Chat    { return &tele.Chat{ID: f.sender.ID} }
func (f *fakeTeleContext) Update() tele.Update { return tele.Update{ID: 1} }
func (f *fakeTeleContext) Message() *tele.Message {
	return &tele.Message{Payload: f.payload}
}

func (f *fakeTeleContext) Get(key string) interface{}      { return f.store[key] }
func (f *fakeTeleContext) Set(key string, val interface{}) { f.store[key] = val }

func (f *fakeTeleContext) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	return nil
}

func (f *fakeTeleContext) lastSent() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func testConfig() *coreconfig.Config {
	return &coreconfig.Config{
		Sheets: coreconfig.SheetsConfig{
			CategorySheet: "cat",
			ExpenseSheet:  "exp",
		},
	}
}

func newTestApp() *App {
	client := &sheets.Client{}
	catalog := sheets.NewCatalog(client, "cat")
	return NewApp(testConfig(), client, catalog)
}

func TestAppRegistersCommands(t *testing.T) {
	app := newTestApp()
	reg := app.Registry()

	for _, name := range []string{"/start", "/help", "/add_expense", "/skip", "/cancel", "/set_sheet"} {
		if _, _, ok := reg.LookupCommand(name); !ok {
			t.Errorf("command %s not registered", name)
		}
	}

	_, setSheet, _ := reg.LookupCommand("/set_sheet")
	if !setSheet.AdminOnly {
		t.Error("/set_sheet is not admin-only")
	}

	if _, ok := reg.GetCallback("exp_date"); !ok {
		t.Error("date menu callback not registered")
	}
}

func TestAppHidesSkipFromMenu(t *testing.T) {
	app := newTestApp()
	for _, cmd := range app.Registry().ListCommands(true) {
		if cmd.Text == "/skip" {
			t.Error("/skip exposed in the visible command menu")
		}
	}
}

func TestAddExpenseRequiresSpreadsheet(t *testing.T) {
	app := newTestApp()
	c := newFakeContext()
	if err := app.handleAddExpense(c); err != nil {
		t.Fatal(err)
	}
	if c.lastSent() != msgNoSpreadsheet {
		t.Fatalf("sent %q, want the no-spreadsheet notice", c.lastSent())
	}
	if app.engine.InProgress(c.sender.ID) {
		t.Error("dialogue started without a spreadsheet")
	}
}

func TestSetSheetRejectsBadInput(t *testing.T) {
	app := newTestApp()

	c := newFakeContext()
	if err := app.handleSetSheet(c); err != nil {
		t.Fatal(err)
	}
	if c.lastSent() != msgSetSheetUsage {
		t.Fatalf("sent %q, want usage", c.lastSent())
	}

	c = newFakeContext()
	c.payload = "https://example.com/spreadsheets/d/abc"
	if err := app.handleSetSheet(c); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(c.lastSent(), "❌") {
		t.Fatalf("sent %q, want a rejection", c.lastSent())
	}
	if app.client.SpreadsheetID() != "" {
		t.Error("rejected link still switched the spreadsheet")
	}
}

func TestHelpListsCommandsAndSpreadsheet(t *testing.T) {
	app := newTestApp()
	c := newFakeContext()
	if err := app.handleHelp(c); err != nil {
		t.Fatal(err)
	}
	out := c.lastSent()
	for _, name := range []string{"/add_expense", "/cancel", "/set_sheet"} {
		if !strings.Contains(out, name) {
			t.Errorf("help output missing %s", name)
		}
	}
	if !strings.Contains(out, "No spreadsheet connected") {
		t.Error("help output does not mention the missing spreadsheet")
	}
}
