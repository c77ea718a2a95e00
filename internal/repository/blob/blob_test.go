package blob

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePut(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:8080/")
	require.NoError(t, err)

	url, err := store.Put(context.Background(), "profile_images/abc.jpg", []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/media/profile_images/abc.jpg", url)

	path, err := store.Path("profile_images/abc.jpg")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestLocalStoreRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "")
	require.NoError(t, err)

	for _, key := range []string{"", "../secret", "/etc/passwd", "a/../../b"} {
		_, err := store.Put(context.Background(), key, []byte("x"), "")
		assert.Error(t, err, key)
	}
}

func TestNewLocalStoreRequiresPath(t *testing.T) {
	_, err := NewLocalStore("", "")
	assert.Error(t, err)
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePut(t *testing.T) {
	putter := &fakePutter{}
	store := NewS3StoreWithClient(putter, "swappi-media", "eu-west-1", "")

	url, err := store.Put(context.Background(), "intro_media/x_clip.mp4", []byte("mp4"), "video/mp4")
	require.NoError(t, err)
	assert.Equal(t, "https://swappi-media.s3.eu-west-1.amazonaws.com/intro_media/x_clip.mp4", url)
	assert.Equal(t, "swappi-media", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "video/mp4", aws.ToString(putter.input.ContentType))
	assert.Equal(t, []byte("mp4"), putter.body)
}

func TestS3StoreUsesPublicBaseURL(t *testing.T) {
	store := NewS3StoreWithClient(&fakePutter{}, "b", "r", "https://cdn.example.com/")
	assert.Equal(t, "https://cdn.example.com/k.jpg", store.URL("k.jpg"))
}

func TestS3StoreWrapsErrors(t *testing.T) {
	store := NewS3StoreWithClient(&fakePutter{err: errors.New("denied")}, "b", "r", "")
	_, err := store.Put(context.Background(), "k", []byte("x"), "")
	assert.ErrorContains(t, err, "denied")
}
