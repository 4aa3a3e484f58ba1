package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hammamikhairi/mealbot/internal/conversation"
	"github.com/hammamikhairi/mealbot/internal/engine"
	"github.com/hammamikhairi/mealbot/internal/logger"
)

// Handler answers one event.
type Handler interface {
	Handle(ctx context.Context, ev engine.Event) conversation.Reply
}

// App is a single-user console conversation.
type App struct {
	handler Handler
	ui      *UI
	log     *logger.Logger
	userID  string
	last    conversation.Reply
}

// NewApp creates a console session for userID.
func NewApp(handler Handler, ui *UI, userID string, log *logger.Logger) *App {
	return &App{handler: handler, ui: ui, userID: userID, log: log}
}

// Run drives the conversation until ctx ends, the user quits, or the
// UI closes. It blocks on the Bubble Tea loop.
func (a *App) Run(ctx context.Context) error {
	a.ui.Println(RenderBanner(TermWidth()))
	a.ui.Println(hintStyle.Render("  Type a number to press a button, 'quit' to exit."))

	go func() {
		a.ui.WaitReady()
		a.loop(ctx)
		a.ui.Quit()
	}()
	return a.ui.Run()
}

func (a *App) loop(ctx context.Context) {
	a.dispatch(ctx, engine.ResetEvent(a.userID))
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.ui.QuitChan():
			return
		case line := <-a.ui.InputChan():
			ev, quit := Resolve(a.userID, line, a.last)
			if quit {
				return
			}
			a.dispatch(ctx, ev)
		}
	}
}

func (a *App) dispatch(ctx context.Context, ev engine.Event) {
	a.log.Debug("%s event from %s", ev.Kind, ev.UserID)
	ev.Progress = func(text string) { a.ui.Println(hintStyle.Render("  " + Plain(text))) }
	reply := a.handler.Handle(ctx, ev)
	a.last = reply
	a.ui.Println(FormatReply(reply))
}

// Resolve maps one input line to an event. A number presses the matching
// button of the last reply, raw callback data is passed through, and
// anything else is free text.
func Resolve(userID, line string, last conversation.Reply) (engine.Event, bool) {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "quit", "exit", "q":
		return engine.Event{}, true
	}

	if n, err := strconv.Atoi(line); err == nil {
		opts := last.Flatten()
		if n >= 1 && n <= len(opts) {
			return engine.CallbackEvent(userID, opts[n-1].Data), false
		}
	}
	if _, err := conversation.ParseCallback(line); err == nil {
		return engine.CallbackEvent(userID, line), false
	}
	return engine.TextEvent(userID, line), false
}

var markdown = strings.NewReplacer(`\_`, "_", `\*`, "*", "\\`", "`", `\[`, "[", "*", "")

// Plain strips the Markdown the renderers emit for chat transports.
func Plain(s string) string {
	return markdown.Replace(s)
}

// FormatReply renders the reply text and numbers its buttons in reading
// order, one keyboard row per line.
func FormatReply(r conversation.Reply) string {
	var b strings.Builder
	for _, line := range strings.Split(Plain(r.Text), "\n") {
		b.WriteString(botStyle.Render("  " + line))
		b.WriteByte('\n')
	}

	n := 0
	for _, row := range r.Options {
		b.WriteString(" ")
		for _, o := range row {
			n++
			fmt.Fprintf(&b, " %s %s", optionNumStyle.Render(fmt.Sprintf("[%d]", n)), optionStyle.Render(o.Label))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
