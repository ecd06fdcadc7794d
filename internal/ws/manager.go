// Package ws provides the WebSocket channel between widget clients and
// their server-side sessions.
package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Salaheddine999/askio-sub000/internal/widget"
	"github.com/coder/websocket"
)

type entry struct {
	conn     *websocket.Conn
	sess     *widget.Session
	lastSeen time.Time
}

// SessionManager tracks active widget connections by connection id.
type SessionManager struct {
	mu     sync.RWMutex
	active map[string]*entry
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{active: make(map[string]*entry)}
}

// Register adds a new widget connection.
func (m *SessionManager) Register(connID string, conn *websocket.Conn, sess *widget.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, exists := m.active[connID]; exists && existing.conn != conn {
		existing.sess.Close()
		if existing.conn != nil {
			_ = existing.conn.Close(websocket.StatusNormalClosure, "session replaced")
		}
	}

	m.active[connID] = &entry{conn: conn, sess: sess, lastSeen: time.Now()}
	slog.Info("Widget session registered", "conn_id", connID)
}

// Unregister removes a widget connection.
func (m *SessionManager) Unregister(connID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if current, exists := m.active[connID]; exists && current.conn == conn {
		delete(m.active, connID)
		slog.Info("Widget session unregistered", "conn_id", connID)
	}
}

// Touch records activity on a connection for idle accounting.
func (m *SessionManager) Touch(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.active[connID]; ok {
		e.lastSeen = time.Now()
	}
}

// Count returns the number of active widget sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.active)
}

// CloseIdle tears down sessions with no activity for at least ttl and
// returns how many were closed.
func (m *SessionManager) CloseIdle(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	closed := 0
	for connID, e := range m.active {
		if e.lastSeen.Before(cutoff) {
			e.sess.Close()
			if e.conn != nil {
				_ = e.conn.Close(websocket.StatusNormalClosure, "session expired")
			}
			delete(m.active, connID)
			closed++
			slog.Info("Idle widget session closed", "conn_id", connID)
		}
	}
	return closed
}
