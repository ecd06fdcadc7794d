package protocol

import (
	"encoding/json"
	"testing"
)

func TestDecode_KnownTypes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"toggle", `{"type":"toggle","payload":{"open":true}}`, TypeToggle},
		{"stateChanged", `{"type":"stateChanged","payload":{"open":false}}`, TypeStateChanged},
		{"ready no payload", `{"type":"ready"}`, TypeReady},
		{"chatbotHeight", `{"type":"chatbotHeight","payload":{"height":420}}`, TypeChatbotHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := Decode([]byte(tt.raw))
			if !ok {
				t.Fatalf("Expected decode to succeed for %s", tt.raw)
			}
			if env.Type != tt.want {
				t.Errorf("Expected type %q, got %q", tt.want, env.Type)
			}
		})
	}
}

func TestDecode_MalformedDropped(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `toggle:true`},
		{"missing type", `{"payload":{"open":true}}`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Decode([]byte(tt.raw)); ok {
				t.Errorf("Expected decode to drop %q", tt.raw)
			}
		})
	}
}

func TestDecode_UnrecognizedTypePreserved(t *testing.T) {
	// Unknown types decode fine; dispatch layers ignore them. They must not
	// be treated as transport errors.
	env, ok := Decode([]byte(`{"type":"futureThing","payload":{}}`))
	if !ok {
		t.Fatal("Expected unknown type to decode")
	}
	if env.Type != "futureThing" {
		t.Errorf("Expected type preserved, got %q", env.Type)
	}
}

func TestDecodePayload(t *testing.T) {
	env, ok := Decode([]byte(`{"type":"toggle","payload":{"open":true}}`))
	if !ok {
		t.Fatal("Decode failed")
	}

	var toggle TogglePayload
	if !DecodePayload(env, &toggle) {
		t.Fatal("Expected payload decode to succeed")
	}
	if !toggle.Open {
		t.Error("Expected open=true")
	}

	// Missing payload is ignored, not an error.
	env, _ = Decode([]byte(`{"type":"toggle"}`))
	if DecodePayload(env, &toggle) {
		t.Error("Expected missing payload to be dropped")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	raw := Encode(TypeSuggestions, SuggestionsPayload{
		Questions: []string{"Do you ship internationally?"},
		Visible:   true,
	})

	env, ok := Decode(raw)
	if !ok || env.Type != TypeSuggestions {
		t.Fatalf("Expected suggestions envelope, got %+v (ok=%v)", env, ok)
	}

	var payload SuggestionsPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}
	if !payload.Visible || len(payload.Questions) != 1 {
		t.Errorf("Payload round-trip mismatch: %+v", payload)
	}
}
