package handlers

import (
	"net/http"
	"strings"

	"github.com/ade-gb/investlite-demo-platform/internal/api/request"
	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
)

// AssistantHandler handles investment-assistant HTTP requests
type AssistantHandler struct {
	assistantService *service.AssistantService
	settingsService  *service.SettingsService
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantService *service.AssistantService, settingsService *service.SettingsService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		settingsService:  settingsService,
	}
}

// AssistantReplyResponse represents the assistant message response
type AssistantReplyResponse struct {
	Reply string `json:"reply"`
}

// Message handles POST requests asking the investment assistant a
// question. The assistant always answers: gateway failures produce a
// friendly fallback reply rather than an error status.
//
// Endpoint: POST /api/assistant/message
// Request Body: AssistantMessageRequest (message)
// Response: 200 OK with AssistantReplyResponse
// Error: 400 Bad Request if the message is empty
func (h *AssistantHandler) Message(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AssistantMessageRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "message is required")
		return
	}

	reply := h.assistantService.Reply(r.Context(), req.Message)
	response.RespondJSON(w, http.StatusOK, AssistantReplyResponse{Reply: reply})
}

// SetKey handles admin PUT requests to store the assistant gateway API
// key. The key is encrypted at rest.
//
// Endpoint: PUT /api/admin/assistant/key
// Request Body: SetAssistantKeyRequest (apiKey)
// Response: 204 No Content
// Error: 400 Bad Request if the key is empty
func (h *AssistantHandler) SetKey(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetAssistantKeyRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "apiKey is required")
		return
	}

	if err := h.settingsService.SetAssistantKey(r.Context(), req.APIKey); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store assistant key", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
