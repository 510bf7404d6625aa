package request

// AssistantMessageRequest is the body for POST /api/assistant/message.
type AssistantMessageRequest struct {
	Message string `json:"message"`
}

// SetAssistantKeyRequest is the body for the admin endpoint that stores
// the assistant gateway API key.
type SetAssistantKeyRequest struct {
	APIKey string `json:"apiKey"`
}
