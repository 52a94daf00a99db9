package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/historybot/internal/database"
	"github.com/edgard/historybot/internal/text"
)

const (
	sendMessageTimeout = 10 * time.Second
	dbSaveTimeout      = 5 * time.Second
)

// sendReply sends a plain text reply.
func sendReply(ctx context.Context, deps HandlerDeps, chatID int64, replyText string) {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	if _, err := deps.Messenger.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   replyText,
	}); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// sendMarkdownReply escapes replyText for MarkdownV2 and sends it with the
// matching parse mode. All generated content goes through here.
func sendMarkdownReply(ctx context.Context, deps HandlerDeps, chatID int64, replyText string) {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()

	if _, err := deps.Messenger.SendMessage(sendCtx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text.EscapeMarkdownV2(replyText),
		ParseMode: models.ParseModeMarkdown,
	}); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to send reply", "error", err, "chat_id", chatID)
	}
}

// saveInteraction records a served request in the interaction log. Failures
// are logged and never surfaced to the user.
func saveInteraction(ctx context.Context, deps HandlerDeps, interaction *database.Interaction) {
	if deps.Store == nil {
		return
	}

	saveCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()

	if err := deps.Store.SaveInteraction(saveCtx, interaction); err != nil {
		deps.Logger.ErrorContext(ctx, "Failed to record interaction",
			"error", err, "chat_id", interaction.ChatID, "kind", interaction.Kind)
	}
}
