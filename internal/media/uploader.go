package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/metrics"
	"github.com/swappi-app/swappi-backend/internal/repository"
)

const (
	photoPrefix      = "profile_images/"
	introMediaPrefix = "intro_media/"

	maxParallelUploads = 4
)

// PhotoFailure records a photo that did not upload in the bulk path.
type PhotoFailure struct {
	Index int
	Err   error
}

type Uploader struct {
	store   repository.BlobStore
	log     *zap.Logger
	metrics *metrics.Metrics
	newID   func() string
}

func NewUploader(store repository.BlobStore, log *zap.Logger, m *metrics.Metrics) *Uploader {
	return &Uploader{
		store:   store,
		log:     log,
		metrics: m,
		newID:   uuid.NewString,
	}
}

// Upload stores a single payload and wraps any failure in domain.ErrUpload.
func (u *Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	url, err := u.store.Put(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}
	return url, nil
}

// UploadPhotos uploads JPEG payloads concurrently. Failed photos are dropped and
// reported; the returned URLs keep the input order of the ones that succeeded.
func (u *Uploader) UploadPhotos(ctx context.Context, photos [][]byte) ([]string, []PhotoFailure) {
	urls := make([]string, len(photos))
	errs := make([]error, len(photos))

	var g errgroup.Group
	g.SetLimit(maxParallelUploads)
	for i, data := range photos {
		g.Go(func() error {
			key := photoPrefix + u.newID() + ".jpg"
			urls[i], errs[i] = u.Upload(ctx, key, data, "image/jpeg")
			return nil
		})
	}
	_ = g.Wait()

	var (
		uploaded []string
		failures []PhotoFailure
	)
	for i := range photos {
		if errs[i] != nil {
			u.log.Warn("photo upload failed", zap.Int("index", i), zap.Error(errs[i]))
			u.metrics.MediaUploads.WithLabelValues("photo", metrics.ResultFailure).Inc()
			failures = append(failures, PhotoFailure{Index: i, Err: errs[i]})
			continue
		}
		u.metrics.MediaUploads.WithLabelValues("photo", metrics.ResultSuccess).Inc()
		uploaded = append(uploaded, urls[i])
	}
	return uploaded, failures
}

// UploadIntroMedia stores the intro clip under intro_media/<uuid>_<filename>.
func (u *Uploader) UploadIntroMedia(ctx context.Context, filename, contentType string, kind domain.MediaKind, data []byte) (string, error) {
	key := introMediaPrefix + u.newID() + "_" + sanitizeFilename(filename, kind)
	url, err := u.Upload(ctx, key, data, contentType)
	if err != nil {
		u.metrics.MediaUploads.WithLabelValues(string(kind), metrics.ResultFailure).Inc()
		return "", err
	}
	u.metrics.MediaUploads.WithLabelValues(string(kind), metrics.ResultSuccess).Inc()
	return url, nil
}

func sanitizeFilename(name string, kind domain.MediaKind) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == "_" {
		return string(kind)
	}
	return name
}
