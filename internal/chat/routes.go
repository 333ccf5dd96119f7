package chat

import "github.com/go-chi/chi/v5"

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/chat/message", h.HandleMessage)
	r.Get("/chat/history/{conversationId}", h.HandleHistory)
	r.Get("/chat/faqs", h.HandleFAQs)
}
