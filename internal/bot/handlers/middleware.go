// Package handlers contains Telegram bot command and message handlers,
// along with their registration logic and middleware.
package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AdminOnly creates a middleware that checks the message sender against the
// admin allow-list. Non-admins get no reply at all: the denial is silent by
// policy, only a warning is logged.
func AdminOnly(deps HandlerDeps) tgbot.Middleware {
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			if update.Message == nil || update.Message.From == nil {
				return
			}

			userID := update.Message.From.ID
			if !deps.Config.Telegram.IsAdmin(userID) {
				deps.Logger.WarnContext(ctx, "Unauthorized command attempt",
					"middleware", "AdminOnly",
					"user_id", userID,
					"chat_id", update.Message.Chat.ID)
				return
			}

			next(ctx, b, update)
		}
	}
}
