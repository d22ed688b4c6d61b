// Package flow implements the expense capture dialogue: a small finite-state
// machine advancing one session per user through date, category, amount and
// comment, then handing the completed record to the sink.
package flow

import (
	"context"
	"strconv"
	"time"

	"github.com/m3rciful/expensebot/core/logger"
	"github.com/m3rciful/expensebot/core/telegram/callbacks"
	tghelpers "github.com/m3rciful/expensebot/core/telegram/helpers"
	"github.com/m3rciful/expensebot/core/telegram/keyboard"
	"github.com/m3rciful/expensebot/expense"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// CallbackDate is the callback key of the date menu buttons.
const CallbackDate = "exp_date"

// Date menu tokens.
const (
	tokenToday     = "today"
	tokenYesterday = "yesterday"
	tokenOther     = "other"
)

const (
	msgDatePrompt      = "📅 Choose the expense date:"
	msgDateManual      = "✏️ Enter the date as DD.MM.YYYY (for example, 25.12.2023)"
	msgDateInvalid     = "❌ Invalid date. Enter it as DD.MM.YYYY:"
	msgCategoryPrompt  = "📁 Choose an expense category:"
	msgCategoryUnknown = "❌ Unknown category. Pick one from the list:"
	msgNoCategories    = "ℹ️ No categories configured. Add them to the 'cat' sheet of your spreadsheet."
	msgAmountPrompt    = "💵 Enter the amount (digits only):"
	msgAmountInvalid   = "❌ Invalid amount. Enter a positive number (for example: 1500.50):"
	msgCommentPrompt   = "📝 Enter a comment (or /skip to leave it empty):"
	msgSaved           = "✅ Expense saved!"
	msgSaveFailed      = "⚠️ Could not save to the spreadsheet. Try again later."
	msgCancelled       = "❌ Operation cancelled"
	msgNothingToDo     = "Nothing to cancel."
)

// Catalog is the engine's read-only view of valid category labels.
type Catalog interface {
	Contains(candidate string) bool
	Labels() []string
	Empty() bool
}

// Sink persists a completed record.
type Sink interface {
	Append(ctx context.Context, rec expense.Record) error
}

// Engine drives the capture dialogue. It owns the session store; handlers are
// routed here by channel kind first (callback, text, command), then by step.
type Engine struct {
	store     *Store
	catalog   Catalog
	sink      Sink
	submitter bool
	now       func() time.Time
}

// Options tune engine behaviour.
type Options struct {
	// IncludeSubmitter stores the sender identity with every record.
	IncludeSubmitter bool
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// New builds an engine over the given catalog and sink.
func New(catalog Catalog, sink Sink, opts Options) *Engine {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		store:     NewStore(),
		catalog:   catalog,
		sink:      sink,
		submitter: opts.IncludeSubmitter,
		now:       now,
	}
}

// InProgress reports whether the user has an active dialogue.
func (e *Engine) InProgress(userID int64) bool {
	return e.store.Active(userID)
}

// Start begins a fresh dialogue, discarding any session already in flight,
// and renders the date menu.
func (e *Engine) Start(c tele.Context) error {
	userID := c.Sender().ID
	e.store.Begin(userID)

	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "flow", "dialogue.start", slog.Int64("user_id", userID))

	menu := keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "Today", Unique: CallbackDate, Data: tokenToday},
		{Text: "Yesterday", Unique: CallbackDate, Data: tokenYesterday},
		{Text: "Other date", Unique: CallbackDate, Data: tokenOther},
	})
	return tghelpers.SendKeyboard(c, msgDatePrompt, menu)
}

// HandleDateChoice processes a date menu selection. Selections arriving
// outside the date step are ignored rather than advancing anything.
func (e *Engine) HandleDateChoice(c tele.Context) error {
	userID := c.Sender().ID
	sess, ok := e.store.Get(userID)
	if !ok || sess.Step != StepDate {
		return nil
	}

	switch callbacks.CallbackPayload(c) {
	case tokenToday:
		return e.setDate(c, sess, e.now())
	case tokenYesterday:
		return e.setDate(c, sess, e.now().AddDate(0, 0, -1))
	case tokenOther:
		// Stay on the date step; the next free-text message is the date.
		return tghelpers.EditText(c, msgDateManual)
	}
	return nil
}

// HandleText processes free-text input for whichever step the session is on.
// Session fields mutate only after the input fully validates.
func (e *Engine) HandleText(c tele.Context) error {
	userID := c.Sender().ID
	sess, ok := e.store.Get(userID)
	if !ok {
		return nil
	}

	text := c.Text()
	switch sess.Step {
	case StepDate:
		t, err := ParseDate(text)
		if err != nil {
			return tghelpers.SendText(c, msgDateInvalid)
		}
		return e.setDate(c, sess, t)

	case StepCategory:
		if !e.catalog.Contains(text) {
			if err := tghelpers.SendText(c, msgCategoryUnknown); err != nil {
				return err
			}
			return e.askCategory(c)
		}
		sess.Record.Category = text
		sess.Step = StepAmount
		e.logAdvance(c, sess)
		return tghelpers.SendKeyboard(c, msgAmountPrompt, keyboard.RemoveKeyboard())

	case StepAmount:
		amount, err := ParseAmount(text)
		if err != nil {
			return tghelpers.SendText(c, msgAmountInvalid)
		}
		sess.Record.Amount = amount
		sess.Step = StepComment
		e.logAdvance(c, sess)
		return tghelpers.SendText(c, msgCommentPrompt)

	case StepComment:
		sess.Record.Comment = text
		return e.save(c, sess)
	}
	return nil
}

// Skip stores an empty comment and saves. Valid only on the comment step;
// anywhere else the signal does not match the expected input and is ignored.
func (e *Engine) Skip(c tele.Context) error {
	userID := c.Sender().ID
	sess, ok := e.store.Get(userID)
	if !ok || sess.Step != StepComment {
		ctx := tghelpers.BuildContext(c)
		logger.Debug(ctx, "flow", "skip.ignored", slog.Int64("user_id", userID))
		return nil
	}
	sess.Record.Comment = ""
	return e.save(c, sess)
}

// Cancel aborts the dialogue from any step without touching the sink.
func (e *Engine) Cancel(c tele.Context) error {
	userID := c.Sender().ID
	if !e.store.Active(userID) {
		return tghelpers.SendText(c, msgNothingToDo)
	}
	e.store.End(userID)

	ctx := tghelpers.BuildContext(c)
	logger.Info(ctx, "flow", "dialogue.cancelled", slog.Int64("user_id", userID))
	return tghelpers.SendKeyboard(c, msgCancelled, keyboard.RemoveKeyboard())
}

func (e *Engine) setDate(c tele.Context, sess *Session, t time.Time) error {
	sess.Record.Date = t.Format(expense.DateLayout)
	sess.Step = StepCategory
	e.logAdvance(c, sess)
	return e.askCategory(c)
}

func (e *Engine) askCategory(c tele.Context) error {
	if e.catalog.Empty() {
		return tghelpers.SendText(c, msgNoCategories)
	}
	return tghelpers.SendKeyboard(c, msgCategoryPrompt, keyboard.ReplyColumn(e.catalog.Labels()))
}

// save hands the record to the sink and tears the session down regardless of
// the outcome. A failed save is reported to the user and the data dropped.
func (e *Engine) save(c tele.Context, sess *Session) error {
	userID := c.Sender().ID
	rec := sess.Record
	if e.submitter {
		rec.Submitter = senderName(c.Sender())
	}

	ctx := tghelpers.BuildContext(c)
	err := e.sink.Append(ctx, rec)
	e.store.End(userID)
	if err != nil {
		logger.Error(ctx, "flow", "save.failed",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendKeyboard(c, msgSaveFailed, keyboard.RemoveKeyboard())
	}

	logger.Info(ctx, "flow", "save.ok",
		slog.Int64("user_id", userID),
		slog.String("category", rec.Category),
	)
	return tghelpers.SendKeyboard(c, msgSaved, keyboard.RemoveKeyboard())
}

func (e *Engine) logAdvance(c tele.Context, sess *Session) {
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "flow", "step.advance",
		slog.Int64("user_id", c.Sender().ID),
		slog.String("step", sess.Step.String()),
	)
}

func senderName(u *tele.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return strconv.FormatInt(u.ID, 10)
}
