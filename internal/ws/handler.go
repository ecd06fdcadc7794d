package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/Salaheddine999/askio-sub000/internal/domain"
	"github.com/Salaheddine999/askio-sub000/internal/protocol"
	"github.com/Salaheddine999/askio-sub000/internal/store"
	"github.com/Salaheddine999/askio-sub000/internal/widget"
	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Handler upgrades widget connections and bridges protocol frames to a
// server-side widget session.
type Handler struct {
	repo        store.Repository
	sm          *SessionManager
	sched       widget.Scheduler
	typingDelay time.Duration
}

// NewHandler creates a new widget channel handler.
func NewHandler(repo store.Repository, sm *SessionManager, typingDelay time.Duration) *Handler {
	return &Handler{
		repo:        repo,
		sm:          sm,
		sched:       widget.TimerScheduler{},
		typingDelay: typingDelay,
	}
}

// ServeHTTP handles GET /ws/widget/{id}.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	chatbotID := chi.URLParam(r, "id")
	if _, err := uuid.Parse(chatbotID); err != nil || len(chatbotID) != 36 {
		http.Error(w, "invalid chatbot id", http.StatusBadRequest)
		return
	}

	// The widget is embedded on arbitrary third-party pages, so the channel
	// accepts any origin. Tightening this to an embedding-origin allow-list
	// is a product decision tracked separately.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "chatbot_id", chatbotID)
		return
	}
	defer func() {
		if closeErr := conn.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "chatbot_id", chatbotID)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	bot, err := h.repo.GetChatbot(ctx, chatbotID)
	if err != nil {
		slog.Error("Failed to fetch chatbot for widget", "error", err, "chatbot_id", chatbotID)
		h.send(conn, protocol.TypeError, protocol.ErrorPayload{Error: "failed to load configuration"})
		return
	}
	if bot == nil {
		h.send(conn, protocol.TypeError, protocol.ErrorPayload{Error: "chatbot not found"})
		return
	}

	// The preview surface has no launcher and renders always-open.
	startOpen := r.URL.Query().Get("mode") == "preview"

	sink := func(msgType string, payload any) {
		h.send(conn, msgType, payload)
	}
	sess := widget.NewSession(bot.PublicView(), sink, h.sched, h.typingDelay, startOpen)
	defer sess.Close()

	connID := uuid.NewString()
	h.sm.Register(connID, conn, sess)
	defer h.sm.Unregister(connID, conn)

	sess.Start()
	h.readLoop(ctx, conn, connID, sess)
	slog.Info("Widget session ended", "chatbot_id", chatbotID, "conn_id", connID)
}

func (h *Handler) readLoop(ctx context.Context, conn *websocket.Conn, connID string, sess *widget.Session) {
	for {
		_, raw, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "conn_id", connID)
			} else {
				slog.Warn("WebSocket read error", "error", err, "conn_id", connID)
			}
			return
		}

		env, ok := protocol.Decode(raw)
		if !ok {
			// Malformed frames are dropped, never errored.
			continue
		}
		h.sm.Touch(connID)
		h.dispatch(env, sess)
	}
}

// dispatch routes one inbound envelope to the session. Each message is an
// independent event with an idempotent handler; unrecognized types are
// ignored so newer clients can speak to older servers.
func (h *Handler) dispatch(env protocol.Envelope, sess *widget.Session) {
	switch env.Type {
	case protocol.TypeToggle:
		var toggle protocol.TogglePayload
		if protocol.DecodePayload(env, &toggle) {
			// Host-relayed toggle: adopted unconditionally, last message wins.
			sess.ApplyToggle(toggle.Open)
		} else {
			// Launcher click inside the widget: a plain local flip.
			sess.ToggleLocal()
		}
	case protocol.TypeSendMessage:
		var text protocol.TextPayload
		if protocol.DecodePayload(env, &text) {
			sess.Submit(text.Text)
		}
	case protocol.TypePickSuggestion:
		var text protocol.TextPayload
		if protocol.DecodePayload(env, &text) {
			sess.PickSuggestion(text.Text)
		}
	case protocol.TypePositionChanged:
		var pos protocol.PositionPayload
		if protocol.DecodePayload(env, &pos) {
			sess.SetPosition(domain.Position(pos.Position))
		}
	}
}

// send delivers one event frame. Delivery is fire-and-forget: a failed
// write is logged and dropped, matching the channel's no-reliability
// contract.
func (h *Handler) send(conn *websocket.Conn, msgType string, payload any) {
	writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Write(writeCtx, websocket.MessageText, protocol.Encode(msgType, payload)); err != nil {
		slog.Debug("WebSocket write dropped", "type", msgType, "error", err)
	}
}
