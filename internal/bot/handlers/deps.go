package handlers

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/historybot/internal/ai"
	"github.com/edgard/historybot/internal/config"
	"github.com/edgard/historybot/internal/database"
	"github.com/edgard/historybot/internal/geocode"
)

// Messenger is the outbound message surface handlers reply through.
// *bot.Bot satisfies it; tests inject a fake.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// HandlerDeps provides dependencies for Telegram command and message handlers.
type HandlerDeps struct {
	Logger    *slog.Logger
	Config    *config.Config
	Messenger Messenger
	AI        ai.Client
	Geocoder  geocode.Geocoder
	Store     database.Store
}
