package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hammamikhairi/mealbot/internal/conversation"
)

// keyboard converts reply options to an inline keyboard; nil when there
// are none.
func keyboard(r conversation.Reply) *tgbotapi.InlineKeyboardMarkup {
	if len(r.Options) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Options))
	for _, row := range r.Options {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, o := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(o.Label, o.Data))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}

// send posts a new message. Markdown is tried first; text the parser
// rejects is resent plain.
func (b *Bot) send(chatID int64, r conversation.Reply) {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if kb := keyboard(r); kb != nil {
		msg.ReplyMarkup = *kb
	}
	_, err := b.out.Send(msg)
	if err == nil {
		return
	}
	b.log.Debug("markdown send to %d failed, retrying plain: %v", chatID, err)

	msg.ParseMode = ""
	if _, err := b.out.Send(msg); err != nil {
		b.log.Error("sending to %d: %v", chatID, err)
	}
}

// edit replaces the message carrying the pressed button, falling back to
// a new message when Telegram refuses the edit.
func (b *Bot) edit(chatID int64, messageID int, r conversation.Reply) {
	for _, mode := range []string{tgbotapi.ModeMarkdown, ""} {
		cfg := tgbotapi.NewEditMessageText(chatID, messageID, r.Text)
		cfg.ParseMode = mode
		cfg.ReplyMarkup = keyboard(r)
		_, err := b.out.Send(cfg)
		if err == nil {
			return
		}
		b.log.Debug("edit %d/%d (mode %q) failed: %v", chatID, messageID, mode, err)
	}
	b.send(chatID, r)
}
