// Package domain contains core domain types for the Askio application.
package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Position is one of the four corner placements for the embedded widget.
type Position string

const (
	PositionBottomRight Position = "bottom-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionTopRight    Position = "top-right"
	PositionTopLeft     Position = "top-left"
)

// Valid returns true if p is one of the four supported corners.
func (p Position) Valid() bool {
	switch p {
	case PositionBottomRight, PositionBottomLeft, PositionTopRight, PositionTopLeft:
		return true
	}
	return false
}

// FAQEntry is a single question/answer pair. Entries are immutable once the
// widget starts matching against them.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Chatbot is the full widget configuration as stored. OwnerID and timestamps
// belong to the authenticated dashboard surface and must never cross the
// public read path.
type Chatbot struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id"`
	Title          string     `json:"title"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	Position       Position   `json:"position"`
	InitialMessage string     `json:"initial_message"`
	Placeholder    string     `json:"placeholder"`
	FAQ            []FAQEntry `json:"faq_data"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PublicChatbot is the sanitized projection served to anonymous third-party
// pages. Adding a field here widens a security boundary; see Validate on the
// write side for what is accepted into it.
type PublicChatbot struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	PrimaryColor   string     `json:"primaryColor"`
	SecondaryColor string     `json:"secondaryColor"`
	Position       Position   `json:"position"`
	InitialMessage string     `json:"initialMessage"`
	Placeholder    string     `json:"placeholder"`
	FAQ            []FAQEntry `json:"faqData"`
}

// PublicView returns the sanitized public projection of the chatbot.
func (c *Chatbot) PublicView() *PublicChatbot {
	faq := make([]FAQEntry, len(c.FAQ))
	copy(faq, c.FAQ)
	return &PublicChatbot{
		ID:             c.ID,
		Title:          c.Title,
		PrimaryColor:   c.PrimaryColor,
		SecondaryColor: c.SecondaryColor,
		Position:       c.Position,
		InitialMessage: c.InitialMessage,
		Placeholder:    c.Placeholder,
		FAQ:            faq,
	}
}

// Colors are either a hex token (#rgb / #rrggbb) or a CSS linear-gradient
// descriptor produced by the dashboard's picker.
var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is an accepted color value.
func ValidColor(s string) bool {
	if colorPattern.MatchString(s) {
		return true
	}
	return strings.HasPrefix(s, "linear-gradient(") && strings.HasSuffix(s, ")")
}

// Validate checks the chatbot's writable fields before persistence.
// Duplicate FAQ questions are legal; matching uses an explicit first-match
// policy, so later duplicates are shadowed rather than rejected here.
func (c *Chatbot) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if !c.Position.Valid() {
		return fmt.Errorf("invalid position %q", c.Position)
	}
	if c.PrimaryColor != "" && !ValidColor(c.PrimaryColor) {
		return fmt.Errorf("invalid primary color %q", c.PrimaryColor)
	}
	if c.SecondaryColor != "" && !ValidColor(c.SecondaryColor) {
		return fmt.Errorf("invalid secondary color %q", c.SecondaryColor)
	}
	for i, entry := range c.FAQ {
		if strings.TrimSpace(entry.Question) == "" {
			return fmt.Errorf("faq entry %d: question cannot be empty", i)
		}
	}
	return nil
}
