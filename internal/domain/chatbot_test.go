package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPosition_Valid(t *testing.T) {
	for _, p := range []Position{PositionBottomRight, PositionBottomLeft, PositionTopRight, PositionTopLeft} {
		if !p.Valid() {
			t.Errorf("Expected %q to be valid", p)
		}
	}
	for _, p := range []Position{"center", "", "bottom"} {
		if Position(p).Valid() {
			t.Errorf("Expected %q to be invalid", p)
		}
	}
}

func TestValidColor(t *testing.T) {
	tests := []struct {
		color string
		want  bool
	}{
		{"#fff", true},
		{"#4f46e5", true},
		{"linear-gradient(to right, #4f46e5, #9333ea)", true},
		{"red", false},
		{"#4f46e", false},
		{"linear-gradient(", false},
	}
	for _, tt := range tests {
		if got := ValidColor(tt.color); got != tt.want {
			t.Errorf("ValidColor(%q) = %v, want %v", tt.color, got, tt.want)
		}
	}
}

func TestChatbot_Validate(t *testing.T) {
	valid := func() *Chatbot {
		return &Chatbot{
			Title:    "Support",
			Position: PositionBottomRight,
			FAQ:      []FAQEntry{{Question: "Hours?", Answer: "9-5"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Chatbot)
		wantErr bool
	}{
		{"valid", func(*Chatbot) {}, false},
		{"empty title", func(c *Chatbot) { c.Title = "  " }, true},
		{"bad position", func(c *Chatbot) { c.Position = "middle" }, true},
		{"bad color", func(c *Chatbot) { c.PrimaryColor = "blue" }, true},
		{"gradient color", func(c *Chatbot) { c.PrimaryColor = "linear-gradient(45deg, #000, #fff)" }, false},
		{"empty faq question", func(c *Chatbot) { c.FAQ = append(c.FAQ, FAQEntry{Question: " "}) }, true},
		{"duplicate questions allowed", func(c *Chatbot) {
			c.FAQ = append(c.FAQ, FAQEntry{Question: "Hours?", Answer: "24/7"})
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bot := valid()
			tt.mutate(bot)
			err := bot.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPublicView_NeverExposesOwner(t *testing.T) {
	bot := &Chatbot{
		ID:      "b7a9c9f0-0000-4000-8000-000000000001",
		OwnerID: "owner-secret",
		Title:   "Support",
		FAQ:     []FAQEntry{{Question: "Hours?", Answer: "9-5"}},
	}

	data, err := json.Marshal(bot.PublicView())
	if err != nil {
		t.Fatalf("Failed to marshal public view: %v", err)
	}
	if strings.Contains(string(data), "owner") || strings.Contains(string(data), "owner-secret") {
		t.Errorf("Public view leaked owner data: %s", data)
	}
}

func TestPublicView_CopiesFAQ(t *testing.T) {
	bot := &Chatbot{
		Title: "Support",
		FAQ:   []FAQEntry{{Question: "Hours?", Answer: "9-5"}},
	}

	view := bot.PublicView()
	view.FAQ[0].Answer = "changed"

	if bot.FAQ[0].Answer != "9-5" {
		t.Error("Expected public view to hold its own FAQ copy")
	}
}
