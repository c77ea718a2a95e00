package draft

import "github.com/swappi-app/swappi-backend/internal/domain"

const (
	MsgPhotos     = "Add at least 3 photos"
	MsgSkills     = "Add at least 5 skills"
	MsgInterests  = "Add at least 5 interests"
	MsgIntroMedia = "Add an intro video or audio clip"
)

// Problems checks every rule independently and returns the failing ones in a fixed
// order. A nil result means the draft is complete.
func Problems(d *Draft) []string {
	var problems []string
	if len(d.Photos) < domain.MinProfilePhotos {
		problems = append(problems, MsgPhotos)
	}
	if len(d.Skills) < domain.MinSkills {
		problems = append(problems, MsgSkills)
	}
	if len(d.Interests) < domain.MinSkills {
		problems = append(problems, MsgInterests)
	}
	if d.IntroMedia() == nil {
		problems = append(problems, MsgIntroMedia)
	}
	return problems
}

// Validate wraps Problems into a *domain.ValidationError.
func Validate(d *Draft) error {
	if problems := Problems(d); len(problems) > 0 {
		return domain.NewValidationError(problems)
	}
	return nil
}
