package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bz888/policyask/internal/config"
	"github.com/bz888/policyask/internal/form"
	"github.com/bz888/policyask/internal/logger"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	title       = "Youth Policy Notifier"
	placeholder = "Ask about youth policies..."
	hint        = "Enter: ask  Alt+Enter: new line  /help: commands"
)

var (
	app          *tview.Application
	debugConsole *tview.TextView
	localLogger  *logger.Logger
)

// view is what the panels show for one form state.
type view struct {
	ButtonLabel string
	Disabled    bool
	ErrorText   string
	AnswerText  string
}

func render(s form.State) view {
	v := view{
		ButtonLabel: "Ask",
		Disabled:    s.IsLoading,
	}
	if s.IsLoading {
		v.ButtonLabel = "Asking..."
	}
	if s.Error != "" {
		v.ErrorText = "[red::]Error: " + tview.Escape(s.Error) + "[-::]"
	}
	if s.Answer != "" {
		v.AnswerText = tview.Escape(s.Answer)
	}
	return v
}

type screen struct {
	form *form.Form

	root        *tview.Flex
	formColumn  *tview.Flex
	questionBox *tview.TextArea
	askButton   *tview.Button
	errorView   *tview.TextView
	answerView  *tview.TextView
	statusView  *tview.TextView
	debugShown  bool
}

// Init creates the application and the debug console so the logger can be
// attached before Run.
func Init() {
	app = tview.NewApplication()
	app.EnablePaste(true)
	app.EnableMouse(true)

	debugConsole = initDebugConsole()
}

func initDebugConsole() *tview.TextView {
	console := tview.NewTextView().
		SetChangedFunc(func() {
			app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	console.ScrollToEnd()
	return console
}

func GetDebugConsole() (*tview.TextView, error) {
	if debugConsole == nil {
		return nil, errors.New("debug console not initialized")
	}
	return debugConsole, nil
}

// Run shows the question form until the user quits.
func Run(f *form.Form) error {
	if app == nil {
		return errors.New("ui not initialized")
	}
	localLogger = logger.NewLogger("views")

	s := newScreen(f)
	f.OnChange(func(form.State) {
		// Always draw the latest state so out-of-order updates cannot regress the screen.
		go app.QueueUpdateDraw(func() {
			s.apply(s.form.State())
		})
	})
	s.apply(f.State())

	return app.SetRoot(s.root, true).SetFocus(s.questionBox).Run()
}

func newScreen(f *form.Form) *screen {
	s := &screen{form: f}

	header := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText("[::b]" + title + "[::-]")

	s.questionBox = tview.NewTextArea().
		SetPlaceholder(placeholder)
	s.questionBox.SetTitle("Question").SetBorder(true)
	s.questionBox.SetChangedFunc(func() {
		s.form.SetQuestion(s.questionBox.GetText())
	})

	s.askButton = tview.NewButton("Ask").SetSelectedFunc(s.submit)

	s.errorView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	s.answerView = tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true).
		SetScrollable(true)
	s.answerView.SetTitle("Answer:").SetBorder(true)

	s.statusView = tview.NewTextView().
		SetDynamicColors(true).
		SetText(hint)

	buttonRow := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(s.askButton, 14, 0, false)

	s.formColumn = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 1, 0, false).
		AddItem(s.questionBox, 6, 0, true).
		AddItem(buttonRow, 1, 0, false).
		AddItem(s.errorView, 0, 0, false).
		AddItem(s.answerView, 0, 0, false).
		AddItem(nil, 0, 1, false).
		AddItem(s.statusView, 1, 0, false)

	s.root = tview.NewFlex().
		AddItem(s.formColumn, 0, 2, true)

	if config.Dev {
		s.root.AddItem(debugConsole, 0, 1, false)
		s.debugShown = true
	}

	s.setInputCapture()
	return s
}

func (s *screen) setInputCapture() {
	s.questionBox.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter:
			if event.Modifiers()&tcell.ModAlt != 0 {
				return tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
			}
			s.submit()
			return nil
		case tcell.KeyTab:
			app.SetFocus(s.askButton)
			return nil
		}
		return event
	})

	s.askButton.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab, tcell.KeyBacktab, tcell.KeyESC:
			app.SetFocus(s.questionBox)
			return nil
		}
		return event
	})

	s.answerView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyESC, tcell.KeyEnter:
			app.SetFocus(s.questionBox)
			return nil
		}
		return event
	})
}

// submit runs on the event loop. Commands are handled in place; questions are
// sent from a goroutine.
func (s *screen) submit() {
	if s.form.State().IsLoading {
		return
	}

	content := s.questionBox.GetText()
	if s.runCommand(strings.TrimSpace(content)) {
		s.questionBox.SetText("", true)
		return
	}

	s.form.SetQuestion(content)
	go func() {
		ctx := context.Background()
		if config.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, config.Timeout)
			defer cancel()
		}
		if _, err := s.form.Submit(ctx); err != nil {
			localLogger.Warn("Question not answered:", err)
		}
	}()
}

func (s *screen) runCommand(command string) bool {
	switch command {
	case "/help":
		s.listHelp()
	case "/clear":
		s.form.Reset()
		s.statusView.SetText(hint)
	case "/debug":
		s.toggleDebugConsole()
	case "/bye", "/quit", "/exit":
		quitApp()
	default:
		return false
	}
	localLogger.Info("Command executed:", command)
	return true
}

// apply must run on the event loop.
func (s *screen) apply(state form.State) {
	v := render(state)

	// The button stays selectable while loading; submit drops the click.
	s.askButton.SetLabel(v.ButtonLabel)
	s.questionBox.SetDisabled(v.Disabled)

	s.errorView.SetText(v.ErrorText)
	if v.ErrorText != "" {
		s.formColumn.ResizeItem(s.errorView, 2, 0)
	} else {
		s.formColumn.ResizeItem(s.errorView, 0, 0)
	}

	s.answerView.SetText(v.AnswerText)
	if v.AnswerText != "" {
		s.formColumn.ResizeItem(s.answerView, 0, 4)
		s.answerView.ScrollToBeginning()
	} else {
		s.formColumn.ResizeItem(s.answerView, 0, 0)
	}
}

func (s *screen) toggleDebugConsole() {
	if s.debugShown {
		s.root.RemoveItem(debugConsole)
		s.statusView.SetText("Debug console disabled")
	} else {
		s.root.AddItem(debugConsole, 0, 1, false)
		s.statusView.SetText("Debug console enabled")
	}
	s.debugShown = !s.debugShown
}

func (s *screen) listHelp() {
	s.statusView.SetText(fmt.Sprintf("%s | %s | %s | %s",
		"/help: this list",
		"/clear: reset the form",
		"/debug: toggle the debug console",
		"/bye: exit",
	))
}

func quitApp() {
	localLogger.Info("Shutting down gracefully.")
	app.Stop()
}
