package studio

import (
	"context"
	"sync"
)

// DeviceOwner and UserOwner build the keys studios and their local state are stored under
func DeviceOwner(deviceID string) string { return "device:" + deviceID }

// UserOwner keys the studio of a signed-in user on one device. Clients that send no device id
// share a single studio per user.
func UserOwner(userID, deviceID string) string {
	if deviceID == "" {
		return "user:" + userID
	}
	return "user:" + userID + ":" + DeviceOwner(deviceID)
}

// Manager owns the live studios, one per device for guests and one per signed-in user and
// device. A user's devices share collections through the profile but keep their own edits.
type Manager struct {
	deps Deps

	mu      sync.Mutex
	studios map[string]*Studio
}

func NewManager(deps Deps) *Manager {
	return &Manager{
		deps:    deps,
		studios: make(map[string]*Studio),
	}
}

// ForDevice returns the guest studio of deviceID, creating it on first use
func (m *Manager) ForDevice(deviceID string) *Studio {
	m.mu.Lock()
	defer m.mu.Unlock()

	owner := DeviceOwner(deviceID)
	if st, ok := m.studios[owner]; ok {
		return st
	}
	st := New(owner, m.deps)
	m.studios[owner] = st
	return st
}

// ForUser returns the studio of sess.UserID on sess.DeviceID. A new studio is attached to
// sess before it is handed out.
func (m *Manager) ForUser(ctx context.Context, sess Session) (*Studio, error) {
	owner := UserOwner(sess.UserID, sess.DeviceID)

	m.mu.Lock()
	if st, ok := m.studios[owner]; ok {
		m.mu.Unlock()
		return st, nil
	}
	m.mu.Unlock()

	st := New(owner, m.deps)
	if err := st.AttachSession(ctx, sess); err != nil {
		st.Close()
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.studios[owner]; ok {
		// another request won the race
		st.Close()
		return existing, nil
	}
	m.studios[owner] = st
	return st, nil
}

// Logout tears down the studio of userID on deviceID. Studios on the user's other devices
// stay signed in.
func (m *Manager) Logout(userID, deviceID string) {
	owner := UserOwner(userID, deviceID)
	m.mu.Lock()
	st, ok := m.studios[owner]
	delete(m.studios, owner)
	m.mu.Unlock()

	if ok {
		st.Close()
	}
}

// Len is the number of live studios
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.studios)
}

// Close tears down every studio
func (m *Manager) Close() {
	m.mu.Lock()
	studios := m.studios
	m.studios = make(map[string]*Studio)
	m.mu.Unlock()

	for _, st := range studios {
		st.Close()
	}
}
