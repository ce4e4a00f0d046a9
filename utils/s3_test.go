package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageObjectKey(t *testing.T) {
	assert.Equal(t, "u1/look-1.jpg", ImageObjectKey("u1", "look-1", "image/jpeg"))
	assert.Equal(t, "u1/scan-1.png", ImageObjectKey("u1", "scan-1", "image/png"))
	assert.Equal(t, "u1/scan-2.webp", ImageObjectKey("u1", "scan-2", "image/webp"))
	assert.Equal(t, "u1/x.jpg", ImageObjectKey("u1", "x", ""))
}

func TestThumbnailFallbackKeepsItsType(t *testing.T) {
	// undecodable input comes back unchanged, so the upload must use its own type
	original := EncodeDataURI("image/png", []byte("not really a png"))
	thumb := CreateThumbnail(original)
	assert.Equal(t, original, thumb)

	mimeType, _, err := ParseDataURI(thumb)
	assert.NoError(t, err)
	assert.Equal(t, "u1/look-1.png", ImageObjectKey("u1", "look-1", mimeType))
}
