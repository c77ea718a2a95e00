package match

import (
	"sort"
	"strings"

	"github.com/swappi-app/swappi-backend/internal/domain"
)

const (
	pointsPerSkill = 20
	moodPoints     = 10
	vibePoints     = 10
	maxScore       = 100
)

// Score rates how well candidate serves viewer, 0 to 100.
// Only viewer.SkillsWanted is compared with candidate.SkillsKnown, so
// Score(a, b) and Score(b, a) usually differ.
func Score(viewer, candidate *domain.Profile) int {
	wanted := make(map[string]struct{}, len(viewer.SkillsWanted))
	for _, s := range viewer.SkillsWanted {
		wanted[s] = struct{}{}
	}

	overlap := 0
	for _, s := range candidate.SkillsKnown {
		if _, ok := wanted[s]; ok {
			overlap++
			// each wanted skill counts once even if candidate lists it twice
			delete(wanted, s)
		}
	}

	score := overlap * pointsPerSkill
	if viewer.Mood == candidate.Mood {
		score += moodPoints
	}
	if strings.ToLower(viewer.Vibe) == strings.ToLower(candidate.Vibe) {
		score += vibePoints
	}
	return min(score, maxScore)
}

// Rank scores every candidate and orders them by descending score.
// Equal scores keep their fetch order.
func Rank(viewer *domain.Profile, candidates []*domain.Profile) []domain.ScoredCandidate {
	scored := make([]domain.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, domain.ScoredCandidate{Profile: c, Score: Score(viewer, c)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
