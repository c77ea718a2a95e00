package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeProfile() *Profile {
	return &Profile{
		ID:            "u1",
		SkillsKnown:   []string{"a", "b", "c", "d", "e"},
		SkillsWanted:  []string{"f", "g", "h", "i", "j"},
		ProfilePhotos: []string{"p1", "p2", "p3"},
		IntroMediaURL: "https://cdn/intro.mp4",
	}
}

func TestProfile_IsComplete(t *testing.T) {
	p := completeProfile()
	assert.True(t, p.IsComplete())

	p.ProfilePhotos = append(p.ProfilePhotos, "p4", "p5", "p6", "p7")
	assert.False(t, p.IsComplete(), "more than six photos")

	p = completeProfile()
	p.IntroMediaURL = ""
	assert.False(t, p.IsComplete())

	p = completeProfile()
	p.SkillsWanted = p.SkillsWanted[:4]
	assert.False(t, p.IsComplete())

	assert.False(t, NewSeedProfile("u2", "Zoya Debug", "zoya@debug.com").IsComplete())
}

func TestProfile_HeroImageAndClone(t *testing.T) {
	p := completeProfile()
	assert.Equal(t, "p1", p.HeroImage())
	assert.Equal(t, "", (&Profile{}).HeroImage())

	c := p.Clone()
	c.ProfilePhotos[0] = "changed"
	assert.Equal(t, "p1", p.ProfilePhotos[0])
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("save: %w", NewValidationError([]string{"Add at least 3 photos"}))

	assert.True(t, errors.Is(err, ErrValidation))
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{"Add at least 3 photos"}, vErr.Problems)
}

func TestResolveSessionState(t *testing.T) {
	assert.Equal(t, SessionLoggedOut, ResolveSessionState(false, completeProfile()))
	assert.Equal(t, SessionOnboarding, ResolveSessionState(true, nil))
	assert.Equal(t, SessionOnboarding, ResolveSessionState(true, NewSeedProfile("u", "", "")))
	assert.Equal(t, SessionActive, ResolveSessionState(true, completeProfile()))
}

func TestSessionState_Transitions(t *testing.T) {
	tests := []struct {
		from, to SessionState
		allowed  bool
	}{
		{SessionLoggedOut, SessionOnboarding, true},
		{SessionLoggedOut, SessionActive, true},
		{SessionOnboarding, SessionActive, true},
		{SessionOnboarding, SessionLoggedOut, true},
		{SessionActive, SessionLoggedOut, true},
		{SessionActive, SessionOnboarding, false},
		{SessionLoggedOut, SessionLoggedOut, false},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransition(tt.to))
		})
	}
}

func TestSessionState_JSON(t *testing.T) {
	data, err := json.Marshal(Session{UserID: "u1", State: SessionOnboarding})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"state":"onboarding"`)

	var s Session
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, SessionOnboarding, s.State)

	assert.Error(t, json.Unmarshal([]byte(`{"state":"sleeping"}`), &s))
}
