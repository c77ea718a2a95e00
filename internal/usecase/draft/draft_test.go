package draft

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

func photos(n int) []Photo {
	out := make([]Photo, n)
	for i := range out {
		out[i] = Photo{Filename: fmt.Sprintf("p%d.jpg", i), Data: []byte{byte(i)}}
	}
	return out
}

func completeDraft() *Draft {
	return &Draft{
		Photos:    photos(3),
		Skills:    []string{"UI", "React", "Swift", "Go", "Baking"},
		Interests: []string{"Guitar", "Painting", "Python", "Yoga", "Chess"},
		Video:     &Media{Filename: "intro.mov", Kind: domain.MediaVideo, Data: []byte("video")},
	}
}

func TestProblems_PhotoBounds(t *testing.T) {
	for n := 0; n <= domain.MaxProfilePhotos; n++ {
		t.Run(fmt.Sprintf("%d photos", n), func(t *testing.T) {
			d := completeDraft()
			d.Photos = photos(n)
			if n < 3 {
				assert.Contains(t, Problems(d), MsgPhotos)
			} else {
				assert.NotContains(t, Problems(d), MsgPhotos)
			}
		})
	}
}

func TestProblems_MediaRule(t *testing.T) {
	d := completeDraft()
	d.Video = nil
	assert.Equal(t, []string{MsgIntroMedia}, Problems(d))

	d.Audio = &Media{Kind: domain.MediaAudio, Data: []byte("m4a")}
	assert.Empty(t, Problems(d))

	d.Audio = &Media{Kind: domain.MediaAudio}
	assert.Equal(t, []string{MsgIntroMedia}, Problems(d), "empty payload does not count")
}

func TestProblems_AllRulesReportedInOrder(t *testing.T) {
	got := Problems(&Draft{})
	assert.Equal(t, []string{MsgPhotos, MsgSkills, MsgInterests, MsgIntroMedia}, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(completeDraft()))

	err := Validate(&Draft{Photos: photos(3)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Len(t, vErr.Problems, 3)
}

func TestDraft_AddPhotoCapsAtSix(t *testing.T) {
	d := &Draft{}
	for i, p := range photos(8) {
		added := d.AddPhoto(p)
		assert.Equal(t, i < domain.MaxProfilePhotos, added)
	}
	assert.Len(t, d.Photos, domain.MaxProfilePhotos)
	assert.Equal(t, "p0.jpg", d.Photos[0].Filename)
}

func TestDraft_ReplacePhoto(t *testing.T) {
	d := &Draft{Photos: photos(2)}

	assert.True(t, d.ReplacePhoto(0, Photo{Filename: "hero.jpg"}))
	assert.Equal(t, "hero.jpg", d.Photos[0].Filename)

	assert.True(t, d.ReplacePhoto(5, Photo{Filename: "late.jpg"}))
	assert.Len(t, d.Photos, 3)
	assert.Equal(t, "late.jpg", d.Photos[2].Filename)

	d.Photos = photos(6)
	assert.False(t, d.ReplacePhoto(6, Photo{Filename: "extra.jpg"}))
	assert.Len(t, d.Photos, 6)

	d.RemovePhoto(0)
	assert.Equal(t, "p1.jpg", d.Photos[0].Filename)
	d.RemovePhoto(42)
	assert.Len(t, d.Photos, 5)
}

func TestDraft_SkillEntry(t *testing.T) {
	d := &Draft{}
	assert.False(t, d.AddSkill("   "))
	assert.True(t, d.AddSkill(" UI "))
	assert.False(t, d.AddSkill("UI"), "duplicates are ignored")
	for _, s := range []string{"React", "Swift", "Go", "Baking"} {
		assert.True(t, d.AddSkill(s))
	}
	assert.False(t, d.AddSkill("Sixth"))
	assert.Equal(t, []string{"UI", "React", "Swift", "Go", "Baking"}, d.Skills)

	d.RemoveSkill("Swift")
	assert.Equal(t, []string{"UI", "React", "Go", "Baking"}, d.Skills)

	assert.True(t, d.AddInterest("Yoga"))
	d.RemoveInterest("Yoga")
	assert.Empty(t, d.Interests)
}

func TestDraft_IntroMediaPrefersVideo(t *testing.T) {
	d := &Draft{
		Video: &Media{Kind: domain.MediaVideo, Data: []byte("v")},
		Audio: &Media{Kind: domain.MediaAudio, Data: []byte("a")},
	}
	assert.Equal(t, domain.MediaVideo, d.IntroMedia().Kind)

	d.Video = nil
	assert.Equal(t, domain.MediaAudio, d.IntroMedia().Kind)
}
