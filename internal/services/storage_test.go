package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	svc := NewStorageService("/tmp/uploads", "http://localhost:8080")

	path := svc.ObjectPath("challenges", 3, 7, "group photo.jpg")

	require.True(t, strings.HasPrefix(path, "challenges/"), "object keeps its source folder")
	assert.Contains(t, path, "team-3_qr-7_")
	assert.True(t, strings.HasSuffix(path, "_group-photo.jpg"), "spaces become dashes")
	assert.NotContains(t, path, " ")
}

func TestObjectPathWithoutSource(t *testing.T) {
	svc := NewStorageService("/tmp/uploads", "http://localhost:8080")

	path := svc.ObjectPath("", 1, 2, "clip.mp4")
	assert.False(t, strings.Contains(path, "/"))
	assert.True(t, strings.HasSuffix(path, "_clip.mp4"))
}

func TestObjectPathStripsDirectories(t *testing.T) {
	svc := NewStorageService("/tmp/uploads", "http://localhost:8080")

	path := svc.ObjectPath("challenges", 1, 2, "../../etc/passwd")
	assert.True(t, strings.HasSuffix(path, "_passwd"))
	assert.NotContains(t, path, "..")
}

func TestObjectPathUnique(t *testing.T) {
	svc := NewStorageService("/tmp/uploads", "http://localhost:8080")

	a := svc.ObjectPath("challenges", 1, 2, "photo.jpg")
	b := svc.ObjectPath("challenges", 1, 2, "photo.jpg")
	assert.NotEqual(t, a, b, "same name twice must not collide")
}

func TestPublicURL(t *testing.T) {
	svc := NewStorageService("/tmp/uploads", "http://localhost:8080")

	url := svc.PublicURL("challenges/team-3_qr-7_x_photo.jpg")
	assert.Equal(t, "http://localhost:8080/uploads/challenges/team-3_qr-7_x_photo.jpg", url)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", sanitizeFilename("photo.jpg"))
	assert.Equal(t, "group-photo.jpg", sanitizeFilename("group photo.jpg"))
	assert.Equal(t, "file", sanitizeFilename(""))
	assert.Equal(t, "file", sanitizeFilename("."))
}
