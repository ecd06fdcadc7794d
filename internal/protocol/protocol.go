// Package protocol defines the message contract between the embedding host
// page, the widget iframe, and the widget session.
//
// The channel is fire-and-forget with at-most-once delivery and no ordering
// guarantee: no acknowledgments, no retries, no sequence numbers. Every
// inbound message is an independent event with an idempotent handler, and the
// rule for the open/closed flag is "last message wins" — the widget is the
// authority for its own transitions except immediately after an inbound
// toggle, which it must adopt unconditionally.
package protocol

import "encoding/json"

// Message kinds. Widget -> host: ready, stateChanged, positionChanged,
// chatbotHeight. Host -> widget: toggle. The widget channel additionally
// carries the session-driving kinds below.
const (
	TypeReady           = "ready"
	TypeStateChanged    = "stateChanged"
	TypePositionChanged = "positionChanged"
	TypeChatbotHeight   = "chatbotHeight"
	TypeToggle          = "toggle"

	// Session-driving kinds (widget client -> session).
	TypeSendMessage    = "sendMessage"
	TypePickSuggestion = "pickSuggestion"

	// Session state kinds (session -> widget client).
	TypeMessageAppended = "messageAppended"
	TypeTyping          = "typing"
	TypeSuggestions     = "suggestions"
	TypeError           = "error"
)

// Envelope is the universal wire format: a type discriminator plus a
// type-specific payload. Unknown types are dropped, never errored.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// TogglePayload carries the desired open state for a toggle message.
type TogglePayload struct {
	Open bool `json:"open"`
}

// StatePayload carries the widget's open state after a transition.
type StatePayload struct {
	Open bool `json:"open"`
}

// PositionPayload carries a runtime anchor-position change.
type PositionPayload struct {
	Position string `json:"position"`
}

// HeightPayload propagates content height for the non-iframe-chrome
// embedding mode with auto-resizing containers.
type HeightPayload struct {
	Height int `json:"height"`
}

// TextPayload carries user input for sendMessage and the picked question
// for pickSuggestion.
type TextPayload struct {
	Text string `json:"text"`
}

// TypingPayload carries the typing-indicator state.
type TypingPayload struct {
	Active bool `json:"active"`
}

// SuggestionsPayload carries the current suggestion set.
type SuggestionsPayload struct {
	Questions []string `json:"questions"`
	Visible   bool     `json:"visible"`
}

// ErrorPayload carries a user-visible error state.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Encode marshals an envelope with the given type and payload. A payload
// that fails to marshal yields a bare envelope rather than an error; the
// channel has no error surface for the sender.
func Encode(msgType string, payload any) []byte {
	env := Envelope{Type: msgType}
	if payload != nil {
		if data, err := json.Marshal(payload); err == nil {
			env.Payload = data
		}
	}
	data, err := json.Marshal(env)
	if err != nil {
		return []byte(`{"type":"` + msgType + `"}`)
	}
	return data
}

// Decode parses raw channel bytes into an envelope. Malformed frames and
// frames without a type discriminator return ok=false and are dropped by
// callers; the protocol treats them as lost messages, not errors.
func Decode(raw []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, false
	}
	if env.Type == "" {
		return Envelope{}, false
	}
	return env, true
}

// DecodePayload unmarshals an envelope's payload into dst. A missing or
// malformed payload returns false; the message is then ignored.
func DecodePayload(env Envelope, dst any) bool {
	if len(env.Payload) == 0 {
		return false
	}
	return json.Unmarshal(env.Payload, dst) == nil
}
