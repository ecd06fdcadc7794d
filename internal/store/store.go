// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"errors"

	"github.com/Salaheddine999/askio-sub000/internal/domain"
)

// ErrNotOwned is returned when a mutation targets a row that does not exist
// or belongs to a different owner. The two cases are deliberately collapsed
// so the dashboard surface cannot be used to probe for foreign chatbot ids.
var ErrNotOwned = errors.New("chatbot not found or not owned by caller")

// Repository defines the interface for persisting chatbot configurations.
type Repository interface {
	// CreateChatbot persists a new chatbot configuration.
	CreateChatbot(ctx context.Context, bot *domain.Chatbot) error

	// GetChatbot retrieves a chatbot by id. Returns (nil, nil) on a miss.
	GetChatbot(ctx context.Context, id string) (*domain.Chatbot, error)

	// ListChatbots retrieves all chatbots owned by ownerID, newest first.
	ListChatbots(ctx context.Context, ownerID string) ([]*domain.Chatbot, error)

	// UpdateChatbot updates a chatbot's writable fields. The update only
	// applies if the stored row is owned by bot.OwnerID; otherwise
	// ErrNotOwned is returned.
	UpdateChatbot(ctx context.Context, bot *domain.Chatbot) error

	// DeleteChatbot removes a chatbot owned by ownerID. Deleting a missing
	// or foreign row returns ErrNotOwned.
	DeleteChatbot(ctx context.Context, id, ownerID string) error

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
