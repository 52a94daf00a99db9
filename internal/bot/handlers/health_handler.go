package handlers

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewHealthHandler returns a handler for the /health command. Registration
// wraps it in AdminOnly, so only allow-listed users ever reach it.
func NewHealthHandler(deps HandlerDeps) bot.HandlerFunc {
	return healthHandler{deps}.Handle
}

type healthHandler struct {
	deps HandlerDeps
}

func (h healthHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "health")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Health handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	userID := update.Message.From.ID
	log.InfoContext(ctx, "Health check requested", "user_id", userID)

	if h.deps.Store != nil {
		statsCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
		totals, err := h.deps.Store.UsageSince(statsCtx, time.Now().Add(-24*time.Hour))
		cancel()
		if err != nil {
			log.WarnContext(ctx, "Failed to read usage totals", "error", err)
		} else {
			log.InfoContext(ctx, "Usage over the last 24h",
				"requests", totals.Requests, "total_tokens", totals.TotalTokens)
		}
	}

	sendReply(ctx, h.deps, update.Message.Chat.ID, h.deps.Config.Messages.HealthOK)
	log.InfoContext(ctx, "Health check confirmed", "user_id", userID)
}
