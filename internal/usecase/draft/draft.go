// Package draft holds the in-progress profile assembled during onboarding and the
// completeness rules it must pass before it may be saved.
package draft

import (
	"strings"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

// MaxDraftSkills caps skill and interest entry while the draft is being assembled.
const MaxDraftSkills = domain.MinSkills

// Photo is a raw image payload picked by the user, not yet encoded.
type Photo struct {
	Filename string
	Data     []byte
}

// Media is a raw intro clip.
type Media struct {
	Filename    string
	ContentType string
	Kind        domain.MediaKind
	Data        []byte
}

type Draft struct {
	Name      string
	Email     string
	Vibe      string
	Mood      string
	Note      string
	Photos    []Photo
	Skills    []string
	Interests []string
	Video     *Media
	Audio     *Media
}

// AddPhoto appends a photo. Additions beyond MaxProfilePhotos are dropped.
func (d *Draft) AddPhoto(p Photo) bool {
	if len(d.Photos) >= domain.MaxProfilePhotos {
		return false
	}
	d.Photos = append(d.Photos, p)
	return true
}

// ReplacePhoto swaps the photo at index, or appends when index is past the end.
func (d *Draft) ReplacePhoto(index int, p Photo) bool {
	if index >= 0 && index < len(d.Photos) {
		d.Photos[index] = p
		return true
	}
	return d.AddPhoto(p)
}

func (d *Draft) RemovePhoto(index int) {
	if index < 0 || index >= len(d.Photos) {
		return
	}
	d.Photos = append(d.Photos[:index], d.Photos[index+1:]...)
}

func (d *Draft) AddSkill(skill string) bool {
	return addCapped(&d.Skills, skill)
}

func (d *Draft) RemoveSkill(skill string) {
	d.Skills = remove(d.Skills, skill)
}

func (d *Draft) AddInterest(interest string) bool {
	return addCapped(&d.Interests, interest)
}

func (d *Draft) RemoveInterest(interest string) {
	d.Interests = remove(d.Interests, interest)
}

// IntroMedia returns the clip to upload. Video wins when both are present.
func (d *Draft) IntroMedia() *Media {
	if d.Video != nil && len(d.Video.Data) > 0 {
		return d.Video
	}
	if d.Audio != nil && len(d.Audio.Data) > 0 {
		return d.Audio
	}
	return nil
}

func addCapped(list *[]string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || len(*list) >= MaxDraftSkills {
		return false
	}
	for _, existing := range *list {
		if existing == value {
			return false
		}
	}
	*list = append(*list, value)
	return true
}

func remove(list []string, value string) []string {
	for i, existing := range list {
		if existing == value {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
