package storage

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "ravi-kumar", SanitizeName("  Ravi   Kumar "))
	assert.Equal(t, "a-b", SanitizeName("A -- B!!"))
	assert.Equal(t, "", SanitizeName("***"))
	assert.Equal(t, "x", SanitizeName("-x-"))
	assert.Len(t, SanitizeName(strings.Repeat("a", 80)), 50)
}

func TestSanitizeFolder(t *testing.T) {
	assert.Equal(t, "my_docs/2024_", SanitizeFolder("my docs/2024!"))
	assert.Equal(t, "portfolio", SanitizeFolder("portfolio"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpg", Extension("photo.jpg"))
	assert.Equal(t, "gz", Extension("archive.tar.gz"))
	assert.Equal(t, "bin", Extension("README"))
	assert.Equal(t, "bin", Extension(""))
}

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("portfolio", "me.png", "12-ravi_1")
	assert.Regexp(t, regexp.MustCompile(`^portfolio/12-ravi_1-\d{13}-[0-9a-f]{16}\.png$`), key)

	key = GenerateKey("uploads/7/", "file", "")
	assert.Regexp(t, regexp.MustCompile(`^uploads/7/\d{13}-[0-9a-f]{16}\.bin$`), key)

	key = GenerateKey("", "a.txt", "")
	assert.True(t, strings.HasPrefix(key, "uploads/"))
}

func TestS3StorageURL(t *testing.T) {
	s, err := NewS3Storage(Config{Bucket: "cine", Region: "ap-south-1"})
	require.NoError(t, err)
	assert.Equal(t, "https://cine.s3.ap-south-1.amazonaws.com/profiles/a.jpg", s.URL("profiles/a.jpg"))

	s, err = NewS3Storage(Config{Bucket: "cine", PublicBaseURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profiles/a.jpg", s.URL("profiles/a.jpg"))
}

func TestS3StorageWithoutBucket(t *testing.T) {
	s, err := NewS3Storage(Config{})
	require.NoError(t, err)

	err = s.Put(context.Background(), "k", strings.NewReader("x"), "text/plain")
	assert.ErrorIs(t, err, ErrBucketNotConfigured)

	_, err = s.List(context.Background(), "app/banner/")
	assert.ErrorIs(t, err, ErrBucketNotConfigured)
	assert.Equal(t, "", s.URL("k"))
}

func TestLocalStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), PublicBaseURL: "http://localhost:3001/files/"})
	require.NoError(t, err)

	require.NoError(t, s.Put(ctx, "app/banner/1.jpg", strings.NewReader("one"), "image/jpeg"))
	require.NoError(t, s.Put(ctx, "app/banner/2.png", strings.NewReader("two!"), "image/png"))
	require.NoError(t, s.Put(ctx, "profiles/x.jpg", strings.NewReader("x"), "image/jpeg"))

	objects, err := s.List(ctx, "app/banner/")
	require.NoError(t, err)
	require.Len(t, objects, 2)

	assert.Equal(t, "http://localhost:3001/files/app/banner/1.jpg", s.URL("app/banner/1.jpg"))

	require.NoError(t, s.Delete(ctx, "app/banner/1.jpg"))
	require.NoError(t, s.Delete(ctx, "app/banner/1.jpg"))

	objects, err = s.List(ctx, "app/banner/")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "app/banner/2.png", objects[0].Key)
	assert.Equal(t, int64(4), objects[0].Size)
}
