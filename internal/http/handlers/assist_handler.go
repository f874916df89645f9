package handlers

import (
	"sync"

	"lumina/internal/assist"
	"lumina/internal/state"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AssistHandler fronts the shopping-assistant chat. Sessions are keyed by a
// client-held id; each session is primed with the catalog at creation time.
type AssistHandler struct {
	State  *state.Store
	Assist *assist.Client

	mu       sync.Mutex
	sessions map[string]*assist.Chat
}

func (h *AssistHandler) session(id string) (string, *assist.Chat) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sessions == nil {
		h.sessions = make(map[string]*assist.Chat)
	}
	if id != "" {
		if ch, ok := h.sessions[id]; ok {
			return id, ch
		}
	}
	id = uuid.NewString()
	ch := h.Assist.NewChat(h.State.Products())
	h.sessions[id] = ch
	return id, ch
}

func (h *AssistHandler) Chat(c *fiber.Ctx) error {
	var body struct {
		SessionID string `json:"sessionId"`
		Message   string `json:"message"`
	}
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid payload")
	}
	if body.Message == "" {
		return badRequest(c, "message is required")
	}

	id, ch := h.session(body.SessionID)
	// Send never fails outward; a service error answers with the fixed apology.
	reply := ch.Send(c.Context(), body.Message)
	return c.JSON(fiber.Map{"sessionId": id, "reply": reply})
}
