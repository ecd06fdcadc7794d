// Package widget implements the render/interaction state machine for one
// widget session.
package widget

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Salaheddine999/askio-sub000/internal/domain"
	"github.com/Salaheddine999/askio-sub000/internal/faq"
	"github.com/Salaheddine999/askio-sub000/internal/protocol"
)

// NoAnswerText is the generic bot reply when no FAQ entry matches.
const NoAnswerText = "Sorry, I don't have an answer for that. Maybe one of these questions helps:"

// EventSink receives session events for delivery to the widget client.
// Delivery is fire-and-forget; the session never blocks on or retries a
// failed send.
type EventSink func(msgType string, payload any)

// Session owns the transient per-connection widget state: the append-only
// transcript, the open/closed flag, the typing indicator, and the current
// suggestion set. It is created when the widget connects and destroyed when
// the connection goes away; nothing here is persisted.
type Session struct {
	mu sync.Mutex

	bot         *domain.PublicChatbot
	messages    []domain.Message
	open        bool
	typing      bool
	suggestions []string
	showSuggest bool
	position    domain.Position
	closed      bool

	sink        EventSink
	sched       Scheduler
	typingDelay time.Duration
	cancelRound func()
}

// NewSession creates a session for one widget connection. startOpen reflects
// the surface: false for a host-page embed (launcher starts collapsed), true
// for the full-page preview surface which has no launcher at all.
func NewSession(bot *domain.PublicChatbot, sink EventSink, sched Scheduler, typingDelay time.Duration, startOpen bool) *Session {
	s := &Session{
		bot:         bot,
		open:        startOpen,
		position:    bot.Position,
		sink:        sink,
		sched:       sched,
		typingDelay: typingDelay,
	}
	s.suggestions = allQuestions(bot.FAQ)
	s.showSuggest = true
	return s
}

func allQuestions(entries []domain.FAQEntry) []string {
	qs := make([]string, 0, len(entries))
	for _, e := range entries {
		qs = append(qs, e.Question)
	}
	return qs
}

// Start emits the ready handshake followed by the initial greeting and the
// full suggestion set. Every reload starts from this same state.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sink(protocol.TypeReady, s.bot)
	if s.bot.InitialMessage != "" {
		s.appendLocked(domain.Message{Text: s.bot.InitialMessage, Sender: domain.SenderBot})
	}
	s.emitSuggestionsLocked()
}

// Open reports the current open/closed state.
func (s *Session) Open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []domain.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// ToggleLocal flips the open state in response to the user clicking the
// launcher inside the widget.
func (s *Session) ToggleLocal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.open = !s.open
	s.sink(protocol.TypeStateChanged, protocol.StatePayload{Open: s.open})
}

// ApplyToggle adopts a host-initiated toggle unconditionally. The widget is
// the authority for its own transitions, but an inbound toggle always wins
// over local pending state — never merged or reconciled.
func (s *Session) ApplyToggle(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.open = open
	s.sink(protocol.TypeStateChanged, protocol.StatePayload{Open: s.open})
}

// SetPosition changes the anchor position at runtime. Invalid values are
// ignored; the four-way enum is the whole contract.
func (s *Session) SetPosition(p domain.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !p.Valid() || p == s.position {
		return
	}
	s.position = p
	s.sink(protocol.TypePositionChanged, protocol.PositionPayload{Position: string(p)})
}

// Submit handles a user message. The typing window is a deliberate pacing
// delay, not a network wait: it elapses even though matching is instant, and
// the round always completes — an empty or malformed FAQ list still produces
// the generic no-answer reply rather than a session stuck in typing.
func (s *Session) Submit(text string) {
	input := strings.TrimSpace(text)
	if input == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.appendLocked(domain.Message{Text: input, Sender: domain.SenderUser})
	s.hideSuggestionsLocked()
	s.beginTypingLocked(func() { s.finishRound(input) })
}

// PickSuggestion handles a click on a suggested question. A suggestion by
// construction has a matching entry, so the no-hit branch is skipped; if the
// entry vanished (malformed list), the round still completes generically.
func (s *Session) PickSuggestion(question string) {
	if strings.TrimSpace(question) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.appendLocked(domain.Message{Text: question, Sender: domain.SenderUser})
	s.hideSuggestionsLocked()
	s.beginTypingLocked(func() { s.finishSuggestion(question) })
}

// Close tears the session down. Pending typing continuations are canceled;
// a callback that already fired lands on the closed flag and becomes a
// no-op, so a teardown-then-remount cycle can never apply stale state to a
// new session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancelRound != nil {
		s.cancelRound()
		s.cancelRound = nil
	}
}

func (s *Session) beginTypingLocked(fn func()) {
	if s.cancelRound != nil {
		// A new submit supersedes the pending round.
		s.cancelRound()
	}
	s.typing = true
	s.sink(protocol.TypeTyping, protocol.TypingPayload{Active: true})
	s.cancelRound = s.sched.Schedule(s.typingDelay, fn)
}

func (s *Session) finishRound(input string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelRound = nil

	res := faq.Match(input, s.bot.FAQ)
	if res.Exact {
		s.appendLocked(domain.Message{Text: res.Answer, Sender: domain.SenderBot})
	} else {
		s.appendLocked(domain.Message{Text: NoAnswerText, Sender: domain.SenderBot})
		s.suggestions = res.Suggestions
		s.showSuggest = true
	}
	s.endTypingLocked()
	if !res.Exact {
		s.emitSuggestionsLocked()
	}
}

func (s *Session) finishSuggestion(question string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.cancelRound = nil

	answer, ok := faq.AnswerFor(question, s.bot.FAQ)
	if !ok {
		slog.Warn("Suggestion without matching entry", "chatbot_id", s.bot.ID, "question", question)
		answer = NoAnswerText
	}
	s.appendLocked(domain.Message{Text: answer, Sender: domain.SenderBot})
	s.endTypingLocked()
}

func (s *Session) appendLocked(msg domain.Message) {
	s.messages = append(s.messages, msg)
	s.sink(protocol.TypeMessageAppended, msg)
}

func (s *Session) endTypingLocked() {
	s.typing = false
	s.sink(protocol.TypeTyping, protocol.TypingPayload{Active: false})
}

func (s *Session) hideSuggestionsLocked() {
	s.showSuggest = false
	s.sink(protocol.TypeSuggestions, protocol.SuggestionsPayload{Visible: false})
}

func (s *Session) emitSuggestionsLocked() {
	s.sink(protocol.TypeSuggestions, protocol.SuggestionsPayload{
		Questions: s.suggestions,
		Visible:   s.showSuggest,
	})
}
