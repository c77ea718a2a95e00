package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

const profileColumns = `
	id, name, email, skills_known, skills_wanted, vibe, mood, note,
	profile_photos, hero_blur_hash, intro_media_url, intro_media_kind,
	saved_profiles, updated_at`

// profileRow mirrors the profiles table. Every column except id is nullable so a
// half-written row is detected on decode instead of failing the whole scan.
type profileRow struct {
	ID             string         `db:"id"`
	Name           sql.NullString `db:"name"`
	Email          sql.NullString `db:"email"`
	SkillsKnown    pq.StringArray `db:"skills_known"`
	SkillsWanted   pq.StringArray `db:"skills_wanted"`
	Vibe           sql.NullString `db:"vibe"`
	Mood           sql.NullString `db:"mood"`
	Note           sql.NullString `db:"note"`
	ProfilePhotos  pq.StringArray `db:"profile_photos"`
	HeroBlurHash   sql.NullString `db:"hero_blur_hash"`
	IntroMediaURL  sql.NullString `db:"intro_media_url"`
	IntroMediaKind sql.NullString `db:"intro_media_kind"`
	SavedProfiles  pq.StringArray `db:"saved_profiles"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

type profileRepository struct {
	db      *sqlx.DB
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewProfileRepository(db *sqlx.DB, log *zap.Logger, m *metrics.Metrics) repository.ProfileRepository {
	return &profileRepository{db: db, log: log, metrics: m}
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, name, email, skills_known, skills_wanted, vibe, mood, note,
			profile_photos, hero_blur_hash, intro_media_url, intro_media_kind, saved_profiles
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, email = EXCLUDED.email,
			skills_known = EXCLUDED.skills_known, skills_wanted = EXCLUDED.skills_wanted,
			vibe = EXCLUDED.vibe, mood = EXCLUDED.mood, note = EXCLUDED.note,
			profile_photos = EXCLUDED.profile_photos, hero_blur_hash = EXCLUDED.hero_blur_hash,
			intro_media_url = EXCLUDED.intro_media_url, intro_media_kind = EXCLUDED.intro_media_kind,
			saved_profiles = EXCLUDED.saved_profiles,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.Name, profile.Email,
		pq.Array(nonNil(profile.SkillsKnown)), pq.Array(nonNil(profile.SkillsWanted)),
		profile.Vibe, profile.Mood, profile.Note,
		pq.Array(nonNil(profile.ProfilePhotos)), profile.HeroBlurHash,
		profile.IntroMediaURL, string(profile.IntroMediaKind),
		pq.Array(nonNil(profile.SavedProfiles)),
	).Scan(&profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return decodeProfileRow(row)
}

func (r *profileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at, id`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for _, row := range rows {
		p, err := decodeProfileRow(row)
		if err != nil {
			r.log.Warn("skipping undecodable profile", zap.String("profile_id", row.ID), zap.Error(err))
			r.metrics.SkippedDocuments.Inc()
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *profileRepository) AddSaved(ctx context.Context, viewerID, candidateID string) error {
	query := `
		UPDATE profiles
		SET saved_profiles = CASE
				WHEN $2::text = ANY(COALESCE(saved_profiles, '{}')) THEN saved_profiles
				ELSE array_append(COALESCE(saved_profiles, '{}'), $2::text)
			END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.execOnProfile(ctx, query, viewerID, candidateID)
}

func (r *profileRepository) RemoveSaved(ctx context.Context, viewerID, candidateID string) error {
	query := `
		UPDATE profiles
		SET saved_profiles = array_remove(COALESCE(saved_profiles, '{}'), $2::text),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.execOnProfile(ctx, query, viewerID, candidateID)
}

func (r *profileRepository) execOnProfile(ctx context.Context, query string, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update saved profiles: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

// decodeProfileRow converts a row into a profile. NULL in a required column is
// reported as domain.ErrDecode; an empty string or empty array is accepted.
// pq.StringArray scans NULL as a nil slice and '{}' as an empty one.
func decodeProfileRow(row profileRow) (*domain.Profile, error) {
	var missing []string
	str := func(col string, v sql.NullString) string {
		if !v.Valid {
			missing = append(missing, col)
		}
		return v.String
	}
	arr := func(col string, v pq.StringArray) []string {
		if v == nil {
			missing = append(missing, col)
		}
		return []string(v)
	}

	p := &domain.Profile{
		ID:             row.ID,
		Name:           str("name", row.Name),
		Email:          str("email", row.Email),
		SkillsKnown:    arr("skills_known", row.SkillsKnown),
		SkillsWanted:   arr("skills_wanted", row.SkillsWanted),
		Vibe:           str("vibe", row.Vibe),
		Mood:           str("mood", row.Mood),
		ProfilePhotos:  arr("profile_photos", row.ProfilePhotos),
		IntroMediaURL:  str("intro_media_url", row.IntroMediaURL),
		Note:           row.Note.String,
		HeroBlurHash:   row.HeroBlurHash.String,
		IntroMediaKind: domain.MediaKind(row.IntroMediaKind.String),
		SavedProfiles:  nonNil(row.SavedProfiles),
	}
	if row.UpdatedAt.Valid {
		p.UpdatedAt = row.UpdatedAt.Time
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: profile %s missing %s", domain.ErrDecode, row.ID, strings.Join(missing, ", "))
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
