package ws

import (
	"testing"
	"time"

	"github.com/Salaheddine999/askio-sub000/internal/domain"
	"github.com/Salaheddine999/askio-sub000/internal/widget"
)

func newIdleSession() *widget.Session {
	bot := &domain.PublicChatbot{
		ID:       "b7a9c9f0-0000-4000-8000-000000000001",
		Position: domain.PositionBottomRight,
	}
	return widget.NewSession(bot, func(string, any) {}, widget.TimerScheduler{}, time.Second, false)
}

func TestSessionManager_RegisterAndCount(t *testing.T) {
	sm := NewSessionManager()

	sm.Register("conn-1", nil, newIdleSession())
	sm.Register("conn-2", nil, newIdleSession())

	if got := sm.Count(); got != 2 {
		t.Errorf("Expected 2 active sessions, got %d", got)
	}
}

func TestSessionManager_Unregister(t *testing.T) {
	sm := NewSessionManager()

	sm.Register("conn-1", nil, newIdleSession())
	sm.Unregister("conn-1", nil)

	if got := sm.Count(); got != 0 {
		t.Errorf("Expected 0 active sessions, got %d", got)
	}
}

func TestSessionManager_CloseIdle(t *testing.T) {
	sm := NewSessionManager()

	sm.Register("stale", nil, newIdleSession())
	sm.Register("fresh", nil, newIdleSession())

	// Age the stale connection past the TTL, keep the fresh one touched.
	sm.mu.Lock()
	sm.active["stale"].lastSeen = time.Now().Add(-time.Hour)
	sm.mu.Unlock()

	closed := sm.CloseIdle(30 * time.Minute)
	if closed != 1 {
		t.Errorf("Expected 1 session closed, got %d", closed)
	}
	if got := sm.Count(); got != 1 {
		t.Errorf("Expected 1 session remaining, got %d", got)
	}
}

func TestSessionManager_TouchKeepsAlive(t *testing.T) {
	sm := NewSessionManager()

	sm.Register("conn-1", nil, newIdleSession())
	sm.mu.Lock()
	sm.active["conn-1"].lastSeen = time.Now().Add(-time.Hour)
	sm.mu.Unlock()

	sm.Touch("conn-1")

	if closed := sm.CloseIdle(30 * time.Minute); closed != 0 {
		t.Errorf("Expected touched session to survive sweep, closed %d", closed)
	}
}
