package service

import (
	"context"
	"log"

	"github.com/ade-gb/investlite-demo-platform/internal/assistant"
)

// fallbackReply is returned when the gateway is unreachable or not
// configured. The assistant degrades to a friendly canned answer instead
// of surfacing an error to the user.
const fallbackReply = "I'm having trouble connecting. Please try again!"

// AssistantService relays free-text messages to the chat gateway. It is
// stateless and has no effect on ledger state.
type AssistantService struct {
	client   assistant.Client
	settings *SettingsService
}

// NewAssistantService creates a new AssistantService with the provided
// gateway client and settings service.
func NewAssistantService(client assistant.Client, settings *SettingsService) *AssistantService {
	return &AssistantService{
		client:   client,
		settings: settings,
	}
}

// Reply sends one message to the assistant and returns its answer.
// Gateway and configuration failures are logged and replaced with the
// fallback reply; the caller always gets a usable answer.
func (s *AssistantService) Reply(ctx context.Context, message string) string {
	apiKey, err := s.settings.GetAssistantKey(ctx)
	if err != nil {
		log.Printf("assistant key unavailable: %v", err)
		return fallbackReply
	}

	reply, err := s.client.Reply(ctx, apiKey, message)
	if err != nil {
		log.Printf("assistant gateway error: %v", err)
		return fallbackReply
	}

	return reply
}
