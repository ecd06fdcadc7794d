package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Salaheddine999/askio-sub000/internal/auth"
	"github.com/Salaheddine999/askio-sub000/internal/domain"
	"github.com/Salaheddine999/askio-sub000/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Client-visible error strings for the public read path. Invalid and missing
// ids get distinct statuses (400 vs 404); the bodies below are the contract.
const (
	errInvalidID = "Invalid chatbot ID"
	errNotFound  = "Chatbot configuration not found"
)

// ChatbotHandler handles chatbot configuration endpoints.
type ChatbotHandler struct {
	repo store.Repository
}

// NewChatbotHandler creates a new chatbot handler.
func NewChatbotHandler(repo store.Repository) *ChatbotHandler {
	return &ChatbotHandler{repo: repo}
}

// RegisterPublicRoutes registers the anonymous read path.
func (h *ChatbotHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/api/chatbot/{id}", h.GetPublic)
}

// RegisterDashboardRoutes registers the authenticated CRUD surface.
func (h *ChatbotHandler) RegisterDashboardRoutes(r chi.Router) {
	r.Route("/api/chatbots", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// validChatbotID reports whether id is a canonical UUID string
// (8-4-4-4-12 hex groups). uuid.Parse alone also accepts URN and braced
// forms, so the length check pins the canonical shape.
func validChatbotID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// GetPublic serves the sanitized configuration to anonymous third-party
// pages. The id is validated before any store access; the response is
// restricted to the public projection and never carries the owner id.
func (h *ChatbotHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validChatbotID(id) {
		Error(w, http.StatusBadRequest, errInvalidID)
		return
	}

	bot, err := h.repo.GetChatbot(r.Context(), id)
	if err != nil {
		slog.Error("Failed to fetch chatbot", "error", err, "chatbot_id", id)
		Error(w, http.StatusInternalServerError, "failed to load chatbot configuration")
		return
	}
	if bot == nil {
		Error(w, http.StatusNotFound, errNotFound)
		return
	}

	JSON(w, http.StatusOK, bot.PublicView())
}

// chatbotRequest is the dashboard write payload.
type chatbotRequest struct {
	Title          string            `json:"title"`
	PrimaryColor   string            `json:"primary_color"`
	SecondaryColor string            `json:"secondary_color"`
	Position       string            `json:"position"`
	InitialMessage string            `json:"initial_message"`
	Placeholder    string            `json:"placeholder"`
	FAQ            []domain.FAQEntry `json:"faq_data"`
}

func (req *chatbotRequest) apply(bot *domain.Chatbot) {
	bot.Title = req.Title
	bot.PrimaryColor = req.PrimaryColor
	bot.SecondaryColor = req.SecondaryColor
	bot.Position = domain.Position(req.Position)
	bot.InitialMessage = req.InitialMessage
	bot.Placeholder = req.Placeholder
	bot.FAQ = req.FAQ
}

// Create persists a new chatbot for the authenticated owner.
func (h *ChatbotHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerIDFromContext(r.Context())

	var req chatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Position == "" {
		req.Position = string(domain.PositionBottomRight)
	}

	now := time.Now()
	bot := &domain.Chatbot{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	req.apply(bot)

	if err := bot.Validate(); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.CreateChatbot(r.Context(), bot); err != nil {
		slog.Error("Failed to create chatbot", "error", err, "owner_id", ownerID)
		Error(w, http.StatusInternalServerError, "failed to create chatbot")
		return
	}

	slog.Info("Chatbot created", "chatbot_id", bot.ID, "owner_id", ownerID)
	JSON(w, http.StatusCreated, bot)
}

// List returns all chatbots owned by the caller, newest first.
func (h *ChatbotHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerIDFromContext(r.Context())

	bots, err := h.repo.ListChatbots(r.Context(), ownerID)
	if err != nil {
		slog.Error("Failed to list chatbots", "error", err, "owner_id", ownerID)
		Error(w, http.StatusInternalServerError, "failed to list chatbots")
		return
	}
	if bots == nil {
		bots = []*domain.Chatbot{}
	}

	JSON(w, http.StatusOK, bots)
}

// Get returns one of the caller's chatbots with all dashboard fields.
func (h *ChatbotHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if !validChatbotID(id) {
		Error(w, http.StatusBadRequest, errInvalidID)
		return
	}

	bot, err := h.repo.GetChatbot(r.Context(), id)
	if err != nil {
		slog.Error("Failed to fetch chatbot", "error", err, "chatbot_id", id)
		Error(w, http.StatusInternalServerError, "failed to load chatbot")
		return
	}
	// A foreign chatbot reads as missing so the dashboard surface cannot
	// probe for other accounts' ids.
	if bot == nil || bot.OwnerID != ownerID {
		Error(w, http.StatusNotFound, errNotFound)
		return
	}

	JSON(w, http.StatusOK, bot)
}

// Update rewrites a chatbot's writable fields.
func (h *ChatbotHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if !validChatbotID(id) {
		Error(w, http.StatusBadRequest, errInvalidID)
		return
	}

	var req chatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bot := &domain.Chatbot{ID: id, OwnerID: ownerID}
	req.apply(bot)

	if err := bot.Validate(); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.UpdateChatbot(r.Context(), bot); err != nil {
		if errors.Is(err, store.ErrNotOwned) {
			Error(w, http.StatusNotFound, errNotFound)
			return
		}
		slog.Error("Failed to update chatbot", "error", err, "chatbot_id", id)
		Error(w, http.StatusInternalServerError, "failed to update chatbot")
		return
	}

	slog.Info("Chatbot updated", "chatbot_id", id, "owner_id", ownerID)
	JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete removes a chatbot owned by the caller.
func (h *ChatbotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.OwnerIDFromContext(r.Context())
	id := chi.URLParam(r, "id")
	if !validChatbotID(id) {
		Error(w, http.StatusBadRequest, errInvalidID)
		return
	}

	if err := h.repo.DeleteChatbot(r.Context(), id, ownerID); err != nil {
		if errors.Is(err, store.ErrNotOwned) {
			Error(w, http.StatusNotFound, errNotFound)
			return
		}
		slog.Error("Failed to delete chatbot", "error", err, "chatbot_id", id)
		Error(w, http.StatusInternalServerError, "failed to delete chatbot")
		return
	}

	slog.Info("Chatbot deleted", "chatbot_id", id, "owner_id", ownerID)
	JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
