package domain

import "time"

const (
	MinProfilePhotos = 3
	MaxProfilePhotos = 6
	MinSkills        = 5
)

// MediaKind tells whether an intro clip is a video or an audio recording.
type MediaKind string

const (
	MediaVideo MediaKind = "video"
	MediaAudio MediaKind = "audio"
)

type Profile struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Email          string    `json:"email" db:"email"`
	SkillsKnown    []string  `json:"skillsKnown" db:"skills_known"`
	SkillsWanted   []string  `json:"skillsWanted" db:"skills_wanted"`
	Vibe           string    `json:"vibe" db:"vibe"`
	Mood           string    `json:"mood" db:"mood"`
	Note           string    `json:"note" db:"note"`
	ProfilePhotos  []string  `json:"profilePhotos" db:"profile_photos"`
	HeroBlurHash   string    `json:"heroBlurHash,omitempty" db:"hero_blur_hash"`
	IntroMediaURL  string    `json:"introMediaURL" db:"intro_media_url"`
	IntroMediaKind MediaKind `json:"introMediaKind,omitempty" db:"intro_media_kind"`
	SavedProfiles  []string  `json:"savedProfiles" db:"saved_profiles"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// NewSeedProfile returns the empty record written when an account is registered.
func NewSeedProfile(id, name, email string) *Profile {
	return &Profile{
		ID:            id,
		Name:          name,
		Email:         email,
		SkillsKnown:   []string{},
		SkillsWanted:  []string{},
		ProfilePhotos: []string{},
		SavedProfiles: []string{},
	}
}

// HeroImage returns the primary display image, or "" when there are no photos.
func (p *Profile) HeroImage() string {
	if len(p.ProfilePhotos) == 0 {
		return ""
	}
	return p.ProfilePhotos[0]
}

func (p *Profile) IsComplete() bool {
	photos := len(p.ProfilePhotos)
	return photos >= MinProfilePhotos && photos <= MaxProfilePhotos &&
		len(p.SkillsKnown) >= MinSkills &&
		len(p.SkillsWanted) >= MinSkills &&
		p.IntroMediaURL != ""
}

func (p *Profile) HasSaved(profileID string) bool {
	for _, id := range p.SavedProfiles {
		if id == profileID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate slices freely.
func (p *Profile) Clone() *Profile {
	c := *p
	c.SkillsKnown = cloneStrings(p.SkillsKnown)
	c.SkillsWanted = cloneStrings(p.SkillsWanted)
	c.ProfilePhotos = cloneStrings(p.ProfilePhotos)
	c.SavedProfiles = cloneStrings(p.SavedProfiles)
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
