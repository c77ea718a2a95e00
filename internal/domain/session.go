package domain

import (
	"encoding/json"
	"fmt"
)

// SessionState replaces the loose "logged in" and "profile completed" flags of the
// client with one value. Onboarding is resumable: a signed-in user with an incomplete
// profile lands back in onboarding until the profile is saved.
type SessionState int

const (
	SessionLoggedOut SessionState = iota
	SessionOnboarding
	SessionActive
)

var sessionStateNames = map[SessionState]string{
	SessionLoggedOut:  "logged_out",
	SessionOnboarding: "onboarding",
	SessionActive:     "active",
}

func (s SessionState) String() string {
	if name, ok := sessionStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *SessionState) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for state, n := range sessionStateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown session state %q", name)
}

// CanTransition reports whether moving from s to next is allowed.
// A saved profile is always complete, so active never falls back to onboarding.
func (s SessionState) CanTransition(next SessionState) bool {
	switch s {
	case SessionLoggedOut:
		return next == SessionOnboarding || next == SessionActive
	case SessionOnboarding:
		return next == SessionActive || next == SessionLoggedOut
	case SessionActive:
		return next == SessionLoggedOut
	}
	return false
}

// ResolveSessionState derives the state for an authenticated user from their profile.
func ResolveSessionState(authenticated bool, profile *Profile) SessionState {
	if !authenticated {
		return SessionLoggedOut
	}
	if profile != nil && profile.IsComplete() {
		return SessionActive
	}
	return SessionOnboarding
}

type Session struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Email       string       `json:"email"`
	State       SessionState `json:"state"`
}
