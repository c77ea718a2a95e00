package profile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/media"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
	"github.com/swappi-app/swappi-backend/internal/usecase/draft"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	encoder     *media.Encoder
	uploader    *media.Uploader
	log         *zap.Logger
	metrics     *metrics.Metrics
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	encoder *media.Encoder,
	uploader *media.Uploader,
	log *zap.Logger,
	m *metrics.Metrics,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		encoder:     encoder,
		uploader:    uploader,
		log:         log,
		metrics:     m,
	}
}

// SaveProfile validates the draft, encodes and uploads its media and overwrites the
// user's profile document. Nothing is written unless every step succeeds.
func (uc *ProfileUseCase) SaveProfile(ctx context.Context, userID string, d *draft.Draft) (*domain.Profile, error) {
	profile, err := uc.saveProfile(ctx, userID, d)
	if err != nil {
		uc.metrics.ProfileSaves.WithLabelValues(metrics.ResultFailure).Inc()
		return nil, err
	}
	uc.metrics.ProfileSaves.WithLabelValues(metrics.ResultSuccess).Inc()
	return profile, nil
}

func (uc *ProfileUseCase) saveProfile(ctx context.Context, userID string, d *draft.Draft) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := draft.Validate(d); err != nil {
		return nil, err
	}

	existing, err := uc.profileRepo.GetByID(ctx, userID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrDecode):
		existing = nil
	default:
		return nil, fmt.Errorf("failed to load current profile: %w", err)
	}

	photos := d.Photos
	if len(photos) > domain.MaxProfilePhotos {
		photos = photos[:domain.MaxProfilePhotos]
	}
	raw := make([][]byte, len(photos))
	for i, p := range photos {
		raw[i] = p.Data
	}
	encoded, err := uc.encoder.EncodeAll(raw)
	if err != nil {
		return nil, err
	}

	// the clip has no partial outcome, so it goes before the photos
	intro := d.IntroMedia()
	introURL, err := uc.uploader.UploadIntroMedia(ctx, intro.Filename, intro.ContentType, intro.Kind, intro.Data)
	if err != nil {
		return nil, err
	}

	urls, failures := uc.uploader.UploadPhotos(ctx, encoded.JPEGs)
	if len(urls) < domain.MinProfilePhotos {
		return nil, fmt.Errorf("%w: only %d of %d photos uploaded", domain.ErrUpload, len(urls), len(encoded.JPEGs))
	}
	heroBlurHash := encoded.HeroBlurHash
	if len(failures) > 0 && failures[0].Index == 0 {
		// the hero is now a different photo
		heroBlurHash = ""
	}

	profile := &domain.Profile{
		ID:             userID,
		Name:           d.Name,
		Email:          d.Email,
		SkillsKnown:    append([]string{}, d.Skills...),
		SkillsWanted:   append([]string{}, d.Interests...),
		Vibe:           d.Vibe,
		Mood:           d.Mood,
		Note:           d.Note,
		ProfilePhotos:  urls,
		HeroBlurHash:   heroBlurHash,
		IntroMediaURL:  introURL,
		IntroMediaKind: intro.Kind,
		SavedProfiles:  []string{},
	}
	if existing != nil {
		profile.SavedProfiles = existing.SavedProfiles
		if profile.Name == "" {
			profile.Name = existing.Name
		}
		if profile.Email == "" {
			profile.Email = existing.Email
		}
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	uc.log.Info("profile saved",
		zap.String("user_id", userID),
		zap.Int("photos", len(urls)),
		zap.Int("photo_failures", len(failures)),
		zap.String("intro_kind", string(intro.Kind)),
	)
	return profile, nil
}

// GetMyProfile returns the caller's own profile.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return uc.profileRepo.GetByID(ctx, userID)
}

func (uc *ProfileUseCase) GetProfile(ctx context.Context, profileID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, profileID)
}

// ToggleSaved flips the bookmark in the direction implied by the caller's view of it
// and returns the new state. Repeating a toggle with the same view is harmless.
func (uc *ProfileUseCase) ToggleSaved(ctx context.Context, viewerID, candidateID string, currentlySaved bool) (bool, error) {
	if viewerID == "" {
		return false, domain.ErrUnauthenticated
	}
	if candidateID == "" {
		return false, domain.ErrInvalidInput
	}

	if currentlySaved {
		if err := uc.profileRepo.RemoveSaved(ctx, viewerID, candidateID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := uc.profileRepo.AddSaved(ctx, viewerID, candidateID); err != nil {
		return false, err
	}
	return true, nil
}

// ListSaved resolves the viewer's bookmarks in bookmark order. Ids that no longer
// resolve to a readable profile are left out.
func (uc *ProfileUseCase) ListSaved(ctx context.Context, viewerID string) ([]*domain.Profile, error) {
	viewer, err := uc.GetMyProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	saved := make([]*domain.Profile, 0, len(viewer.SavedProfiles))
	for _, id := range viewer.SavedProfiles {
		p, err := uc.profileRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) || errors.Is(err, domain.ErrDecode) {
				uc.log.Debug("dropping unresolved bookmark", zap.String("profile_id", id), zap.Error(err))
				continue
			}
			return nil, err
		}
		saved = append(saved, p)
	}
	return saved, nil
}
