// Package mongo stores profiles, accounts and match records in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

const (
	profilesCollection = "profiles"
	accountsCollection = "accounts"
	matchesCollection  = "matches"
)

type profileDoc struct {
	ID             string    `bson:"_id"`
	Name           string    `bson:"name"`
	Email          string    `bson:"email"`
	SkillsKnown    []string  `bson:"skillsKnown"`
	SkillsWanted   []string  `bson:"skillsWanted"`
	Vibe           string    `bson:"vibe"`
	Mood           string    `bson:"mood"`
	Note           string    `bson:"note"`
	ProfilePhotos  []string  `bson:"profilePhotos"`
	HeroBlurHash   string    `bson:"heroBlurHash,omitempty"`
	IntroMediaURL  string    `bson:"introMediaURL"`
	IntroMediaKind string    `bson:"introMediaKind,omitempty"`
	SavedProfiles  []string  `bson:"savedProfiles"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

type profileRepository struct {
	coll    *mongo.Collection
	log     *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewProfileRepository(db *mongo.Database, log *zap.Logger, m *metrics.Metrics) repository.ProfileRepository {
	return &profileRepository{
		coll:    db.Collection(profilesCollection),
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	doc := profileDoc{
		ID:             profile.ID,
		Name:           profile.Name,
		Email:          profile.Email,
		SkillsKnown:    nonNil(profile.SkillsKnown),
		SkillsWanted:   nonNil(profile.SkillsWanted),
		Vibe:           profile.Vibe,
		Mood:           profile.Mood,
		Note:           profile.Note,
		ProfilePhotos:  nonNil(profile.ProfilePhotos),
		HeroBlurHash:   profile.HeroBlurHash,
		IntroMediaURL:  profile.IntroMediaURL,
		IntroMediaKind: string(profile.IntroMediaKind),
		SavedProfiles:  nonNil(profile.SavedProfiles),
		UpdatedAt:      r.now().UTC().Truncate(time.Millisecond),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	profile.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var raw bson.M
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return decodeProfileDoc(raw)
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*domain.Profile
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			r.skip(raw, err)
			continue
		}
		p, err := decodeProfileDoc(raw)
		if err != nil {
			r.skip(raw, err)
			continue
		}
		profiles = append(profiles, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) skip(raw bson.M, err error) {
	id, _ := raw["_id"].(string)
	r.log.Warn("skipping undecodable profile", zap.String("profile_id", id), zap.Error(err))
	r.metrics.SkippedDocuments.Inc()
}

func (r *profileRepository) AddSaved(ctx context.Context, viewerID, candidateID string) error {
	return r.updateSaved(ctx, viewerID, bson.M{"$addToSet": bson.M{"savedProfiles": candidateID}})
}

func (r *profileRepository) RemoveSaved(ctx context.Context, viewerID, candidateID string) error {
	return r.updateSaved(ctx, viewerID, bson.M{"$pull": bson.M{"savedProfiles": candidateID}})
}

func (r *profileRepository) updateSaved(ctx context.Context, viewerID string, update bson.M) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": viewerID}, update)
	if err != nil {
		return fmt.Errorf("failed to update saved profiles: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// decodeProfileDoc checks the required fields by hand so documents written by other
// clients with missing or mistyped fields are rejected with domain.ErrDecode.
func decodeProfileDoc(raw bson.M) (*domain.Profile, error) {
	id, _ := raw["_id"].(string)
	var problems []string

	str := func(key string) string {
		v, ok := raw[key].(string)
		if !ok {
			problems = append(problems, key)
		}
		return v
	}
	strs := func(key string) []string {
		v, ok := toStrings(raw[key])
		if !ok {
			problems = append(problems, key)
		}
		return v
	}

	p := &domain.Profile{
		ID:            id,
		Name:          str("name"),
		Email:         str("email"),
		SkillsKnown:   strs("skillsKnown"),
		SkillsWanted:  strs("skillsWanted"),
		Vibe:          str("vibe"),
		Mood:          str("mood"),
		ProfilePhotos: strs("profilePhotos"),
		IntroMediaURL: str("introMediaURL"),
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: profile %s has missing or mistyped %s",
			domain.ErrDecode, id, strings.Join(problems, ", "))
	}

	p.Note, _ = raw["note"].(string)
	p.HeroBlurHash, _ = raw["heroBlurHash"].(string)
	if kind, ok := raw["introMediaKind"].(string); ok {
		p.IntroMediaKind = domain.MediaKind(kind)
	}
	if saved, ok := toStrings(raw["savedProfiles"]); ok {
		p.SavedProfiles = saved
	} else {
		p.SavedProfiles = []string{}
	}
	if ts, ok := raw["updatedAt"].(primitive.DateTime); ok {
		p.UpdatedAt = ts.Time().UTC()
	}
	return p, nil
}

func toStrings(v interface{}) ([]string, bool) {
	var items []interface{}
	switch arr := v.(type) {
	case primitive.A:
		items = arr
	case []interface{}:
		items = arr
	case []string:
		return arr, true
	default:
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
