package studio

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/glow-studio/models"
)

// Session is the signed-in user a studio works for. It is created at login and torn down
// at logout.
type Session struct {
	UserID   string
	DeviceID string
	Name     string
	Email    string
}

// AttachSession binds the studio to sess, pulls the stored profile over the local
// collections and subscribes to changes made elsewhere. Any previous session is detached first.
func (s *Studio) AttachSession(ctx context.Context, sess Session) error {
	s.DetachSession()

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	if s.deps.Profiles != nil {
		u, err := s.deps.Profiles.GetProfile(ctx, sess.UserID)
		if err != nil {
			s.mu.Lock()
			s.session = nil
			s.mu.Unlock()
			return fmt.Errorf("fetch profile: %w", err)
		}
		s.mu.Lock()
		if s.session != nil {
			if s.session.Name == "" {
				s.session.Name = u.Name
			}
			if s.session.Email == "" {
				s.session.Email = u.Email
			}
		}
		s.mu.Unlock()
		s.ApplyRemote(u)
	}

	if s.deps.Updates == nil {
		return nil
	}
	unsubscribe, err := s.deps.Updates.Subscribe(ctx, sess.UserID, s.ApplyRemote)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", sess.UserID).Msg("live profile updates unavailable")
		return nil
	}

	s.mu.Lock()
	detached := s.session == nil || s.session.UserID != sess.UserID
	if !detached {
		s.unsubscribe = unsubscribe
	}
	s.mu.Unlock()

	// unsubscribe waits for an in-flight delivery, which takes s.mu
	if detached {
		unsubscribe()
	}
	return nil
}

// DetachSession drops the session and releases the live update subscription
func (s *Studio) DetachSession() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.session = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// Session returns the attached session, if any
func (s *Studio) Session() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

// ApplyRemote replaces the owned collections with those of u. The last write wins; there
// is no per-item merge.
func (s *Studio) ApplyRemote(u models.User) {
	s.mu.Lock()
	current := models.User{Favorites: s.favorites, CustomProducts: s.custom, SavedLooks: s.looks}
	models.CollectionsUpdate(u).ApplyTo(&current)
	s.setCollectionsLocked(current.Collections())
	c := s.collectionsLocked()
	s.mu.Unlock()

	if s.deps.Local != nil {
		if err := s.deps.Local.SaveCollections(s.owner, c); err != nil {
			s.log.Warn().Err(err).Msg("failed to write local collections")
		}
	}
}

// Close detaches the session and abandons any request still in flight
func (s *Studio) Close() {
	s.DetachSession()

	s.mu.Lock()
	s.generation++
	s.processing = false
	s.mu.Unlock()
}
