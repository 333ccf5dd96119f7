package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// maxMessageLen is the longest customer message accepted, counted in runes.
const maxMessageLen = 1000

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleMessage — POST /chat/message
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message        string `json:"message"`
		ConversationID *int64 `json:"conversationId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if strings.TrimSpace(payload.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}
	if utf8.RuneCountInString(payload.Message) > maxMessageLen {
		respondError(w, http.StatusBadRequest, "message exceeds 1000 characters")
		return
	}

	reply, convID, err := h.svc.HandleMessage(r.Context(), payload.ConversationID, payload.Message)
	if err != nil {
		log.WithFields(log.Fields{
			"request_id": RequestID(r.Context()),
			"error":      err.Error(),
		}).Error("message handling failed")
		respondError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"reply":          reply,
		"conversationId": convID,
	})
}

// HandleHistory — GET /chat/history/{conversationId}
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "conversationId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "conversation id must be numeric")
		return
	}

	msgs, err := h.svc.History(r.Context(), id)
	if errors.Is(err, ErrConversationNotFound) {
		respondError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if err != nil {
		log.WithFields(log.Fields{
			"request_id": RequestID(r.Context()),
			"error":      err.Error(),
		}).Error("history lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	if msgs == nil {
		msgs = []Message{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

// HandleFAQs — GET /chat/faqs
func (h *Handler) HandleFAQs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.svc.ListFAQs(r.Context())
	if err != nil {
		log.WithFields(log.Fields{
			"request_id": RequestID(r.Context()),
			"error":      err.Error(),
		}).Error("faq lookup failed")
		respondError(w, http.StatusInternalServerError, "failed to load faqs")
		return
	}

	if faqs == nil {
		faqs = []FAQ{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"faqs": faqs})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
