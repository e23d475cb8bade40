package domain

import "sync"

// Session holds the tracker connection of the logged-in user.
// It is shared by the use cases of one program run.
type Session struct {
	tracker Tracker
	user    *User
	profile Profile
	mu      sync.RWMutex
}

// NewSession returns an empty (logged-out) session.
func NewSession() *Session {
	return &Session{}
}

// Set records a successful login.
func (s *Session) Set(t Tracker, u *User, p Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracker, s.user, s.profile = t, u, p
}

// Clear logs the session out.
func (s *Session) Clear() {
	s.Set(nil, nil, Profile{})
}

// Tracker returns the connection, or ErrNotLoggedIn.
func (s *Session) Tracker() (Tracker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tracker == nil {
		return nil, ErrNotLoggedIn
	}
	return s.tracker, nil
}

// User returns the logged-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Profile returns the profile used to log in.
func (s *Session) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// LoggedIn reports whether a login succeeded.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracker != nil
}
