package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/historybot/internal/ai"
	"github.com/edgard/historybot/internal/database"
)

// NewRouterHandler returns the default handler for non-command messages.
// It dispatches on the message kind: location messages go through reverse
// geocoding and the generator, free text goes straight to the generator.
func NewRouterHandler(deps HandlerDeps) bot.HandlerFunc {
	return routerHandler{deps}.Handle
}

type routerHandler struct {
	deps HandlerDeps
}

func (h routerHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch {
	case msg.Location != nil:
		h.handleLocation(ctx, msg)
	case msg.Text != "" && !strings.HasPrefix(msg.Text, "/"):
		h.handleText(ctx, msg)
	}
}

// handleLocation resolves the coordinates to a locality and asks the
// generator about them. An unresolvable locality is a normal outcome and
// gets the fixed not-found reply without a generator call.
func (h routerHandler) handleLocation(ctx context.Context, msg *models.Message) {
	deps := h.deps
	log := deps.Logger.With("handler", "location")

	lat := msg.Location.Latitude
	lon := msg.Location.Longitude
	chatID := msg.Chat.ID

	log.InfoContext(ctx, "Handling location message", "chat_id", chatID, "latitude", lat, "longitude", lon)

	geo, err := deps.Geocoder.Reverse(ctx, lat, lon)
	if err != nil {
		log.ErrorContext(ctx, "Reverse geocoding failed", "error", err, "chat_id", chatID)
		sendMarkdownReply(ctx, deps, chatID, deps.Config.Messages.GeneralError)
		return
	}

	if geo.Locality == "" {
		log.InfoContext(ctx, "No locality for coordinates", "chat_id", chatID)
		sendMarkdownReply(ctx, deps, chatID, deps.Config.Messages.LocationNotFound)
		return
	}

	country := geo.CountryName
	if country == "" {
		country = "Unknown country"
	}
	locationInfo := fmt.Sprintf("You are in %s, %s.", geo.Locality, country)

	prompt := strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lon, 'f', -1, 64)

	startTime := time.Now()
	res, err := ai.Generate(ctx, deps.AI, prompt, "")
	if err != nil {
		log.ErrorContext(ctx, "Failed to generate location answer", "error", err, "chat_id", chatID)
		sendMarkdownReply(ctx, deps, chatID, deps.Config.Messages.GeneralError)
		return
	}

	sendMarkdownReply(ctx, deps, chatID, locationInfo+"\n\n"+res.Text)

	saveInteraction(ctx, deps, &database.Interaction{
		ChatID:           chatID,
		UserID:           msg.From.ID,
		Kind:             database.KindLocation,
		Prompt:           prompt,
		Reply:            res.Text,
		PromptTokens:     res.PromptTokens,
		CompletionTokens: res.CompletionTokens,
		TotalTokens:      res.TotalTokens,
		DurationMS:       time.Since(startTime).Milliseconds(),
	})
}

// handleText sends the raw message text to the generator and replies with
// the escaped answer.
func (h routerHandler) handleText(ctx context.Context, msg *models.Message) {
	deps := h.deps
	log := deps.Logger.With("handler", "text")

	chatID := msg.Chat.ID
	log.InfoContext(ctx, "Handling text message", "chat_id", chatID, "user_id", msg.From.ID)

	startTime := time.Now()
	res, err := ai.Generate(ctx, deps.AI, msg.Text, "")
	if err != nil {
		log.ErrorContext(ctx, "Failed to generate answer", "error", err, "chat_id", chatID)
		sendMarkdownReply(ctx, deps, chatID, deps.Config.Messages.GeneralError)
		return
	}

	sendMarkdownReply(ctx, deps, chatID, res.Text)

	saveInteraction(ctx, deps, &database.Interaction{
		ChatID:           chatID,
		UserID:           msg.From.ID,
		Kind:             database.KindText,
		Prompt:           msg.Text,
		Reply:            res.Text,
		PromptTokens:     res.PromptTokens,
		CompletionTokens: res.CompletionTokens,
		TotalTokens:      res.TotalTokens,
		DurationMS:       time.Since(startTime).Milliseconds(),
	})
}
