// Package session keeps the client's bearer token in memory and refreshes it
// in the background before it expires. The refresh credential itself never
// passes through this package; it lives in the HTTP-only cookie jar.
package session

import (
	"context"
	"sync"
	"time"
)

// DefaultRefreshInterval is used before the first token arrives, when no
// expiration is known yet.
const DefaultRefreshInterval = time.Hour

// defaultRetryInterval paces refresh attempts after a transient failure, so
// one network blip does not end the rotation schedule.
const defaultRetryInterval = time.Minute

// RefreshFunc asks the server for a fresh bearer token. It returns the token
// and the number of seconds until it should be replaced. An empty token with
// a nil error means the server has no session for us (logged out).
type RefreshFunc func(ctx context.Context) (token string, expiration int64, err error)

// Manager schedules token refreshes and serves the current token to the API
// client. Refreshing is idempotent; overlapping refreshes settle on whichever
// response lands last, which is always a token newer than the one it replaces.
type Manager struct {
	mu            sync.Mutex
	token         string
	refresh       RefreshFunc
	timer         *time.Timer
	retryInterval time.Duration
	stopped       bool
}

// NewManager creates a Manager that calls refresh on the schedule derived
// from each token's expiration.
func NewManager(refresh RefreshFunc) *Manager {
	return &Manager{refresh: refresh, retryInterval: defaultRetryInterval}
}

// Token returns the current bearer token, empty when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// SetSession installs a token obtained out-of-band (login, register) and
// schedules the next background refresh for when it runs out.
func (m *Manager) SetSession(token string, expiration int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.scheduleLocked(time.Duration(expiration) * time.Second)
}

// Clear drops the token and stops the refresh schedule.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

// Refresh fetches a new token immediately and reschedules. Safe to call from
// the API client on an unexpected 401. A failed attempt keeps the current
// token and re-arms the timer at the retry pace; the schedule must survive
// transient failures or rotation silently stops.
func (m *Manager) Refresh(ctx context.Context) error {
	token, expiration, err := m.refresh(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.scheduleLocked(m.retryInterval)
		return err
	}

	m.token = token
	if token == "" {
		// No server-side session. Keep polling at the idle interval so a
		// login in another tab is eventually picked up.
		m.scheduleLocked(0)
		return nil
	}
	m.scheduleLocked(time.Duration(expiration) * time.Second)
	return nil
}

// Stop ends the background schedule for good.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) scheduleLocked(interval time.Duration) {
	if m.stopped {
		return
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(interval, func() {
		_ = m.Refresh(context.Background())
	})
}
