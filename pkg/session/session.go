package session

import "sync"

// Snapshot is a point-in-time copy of the session state
type Snapshot struct {
	LoggedIn        bool
	Username        string
	ProfileImageURL string
	Loading         bool
	PendingRequests int
}

// State is the process-wide UI session state: who is logged in and whether
// any request is outstanding. It is injected, never global.
type State struct {
	mu              sync.RWMutex
	loggedIn        bool
	username        string
	profileImageURL string
	pending         int
}

// New creates a logged-out, idle session
func New() *State {
	return &State{}
}

// Begin marks one request as outstanding and returns the function that ends it
func (s *State) Begin() (end func()) {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(s.End)
	}
}

// End marks one request as finished. Extra calls never drive the count below zero.
func (s *State) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending > 0 {
		s.pending--
	}
}

// Loading reports whether any request is outstanding
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending > 0
}

// LogIn records the authenticated user
func (s *State) LogIn(username, profileImageURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = true
	s.username = username
	s.profileImageURL = profileImageURL
}

// LogOut clears the user and the cached profile image
func (s *State) LogOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = false
	s.username = ""
	s.profileImageURL = ""
}

// SetProfileImageURL replaces the cached profile image
func (s *State) SetProfileImageURL(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profileImageURL = url
}

// LoggedIn reports whether a user is logged in
func (s *State) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		LoggedIn:        s.loggedIn,
		Username:        s.username,
		ProfileImageURL: s.profileImageURL,
		Loading:         s.pending > 0,
		PendingRequests: s.pending,
	}
}
