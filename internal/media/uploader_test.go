package media

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/domain"
	"github.com/swappi-app/swappi-backend/internal/metrics"
)

// flakyStore fails any upload whose body equals failOn.
type flakyStore struct {
	mu     sync.Mutex
	failOn []byte
	keys   []string
}

func (s *flakyStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if s.failOn != nil && bytes.Equal(data, s.failOn) {
		return "", errors.New("connection reset")
	}
	s.mu.Lock()
	s.keys = append(s.keys, key)
	s.mu.Unlock()
	return "blob://" + string(data), nil
}

func newTestUploader(store *flakyStore) *Uploader {
	u := NewUploader(store, zap.NewNop(), metrics.NewNop())
	u.newID = func() string { return "id" }
	return u
}

func TestUploadPhotosKeepsOrderAndDropsFailures(t *testing.T) {
	store := &flakyStore{failOn: []byte("b")}
	u := newTestUploader(store)

	urls, failures := u.UploadPhotos(context.Background(), [][]byte{[]byte("a"), []byte("b"), []byte("c")})

	assert.Equal(t, []string{"blob://a", "blob://c"}, urls)
	require.Len(t, failures, 1)
	assert.Equal(t, 1, failures[0].Index)
	assert.ErrorIs(t, failures[0].Err, domain.ErrUpload)
}

func TestUploadPhotosManyInOrder(t *testing.T) {
	u := newTestUploader(&flakyStore{})
	var photos [][]byte
	var want []string
	for _, s := range []string{"1", "2", "3", "4", "5", "6"} {
		photos = append(photos, []byte(s))
		want = append(want, "blob://"+s)
	}

	urls, failures := u.UploadPhotos(context.Background(), photos)
	assert.Empty(t, failures)
	assert.Equal(t, want, urls)
}

func TestUploadPhotosUsesPhotoKeys(t *testing.T) {
	store := &flakyStore{}
	u := newTestUploader(store)

	_, _ = u.UploadPhotos(context.Background(), [][]byte{[]byte("a")})
	assert.Equal(t, []string{"profile_images/id.jpg"}, store.keys)
}

func TestUploadIntroMedia(t *testing.T) {
	store := &flakyStore{}
	u := newTestUploader(store)

	url, err := u.UploadIntroMedia(context.Background(), "../my clip.mp4", "video/mp4", domain.MediaVideo, []byte("v"))
	require.NoError(t, err)
	assert.Equal(t, "blob://v", url)
	assert.Equal(t, []string{"intro_media/id_my_clip.mp4"}, store.keys)
}

func TestUploadIntroMediaFailureWrapsUploadError(t *testing.T) {
	u := newTestUploader(&flakyStore{failOn: []byte("v")})

	_, err := u.UploadIntroMedia(context.Background(), "clip.m4a", "audio/mp4", domain.MediaAudio, []byte("v"))
	assert.ErrorIs(t, err, domain.ErrUpload)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "video", sanitizeFilename("", domain.MediaVideo))
	assert.Equal(t, "a_b.m4a", sanitizeFilename(`C:\tmp\a b.m4a`, domain.MediaAudio))
	assert.False(t, strings.Contains(sanitizeFilename("x/../../y.mp4", domain.MediaVideo), "/"))
}
