package utils

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	mimeType, data, err := ParseDataURI(EncodeDataURI("image/png", []byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, _, err = ParseDataURI("data:image/png,plain")
	assert.Error(t, err)
	_, _, err = ParseDataURI("users/u1/look.jpg")
	assert.Error(t, err)
}

func TestIsEmbeddable(t *testing.T) {
	assert.True(t, IsEmbeddable("data:image/png;base64,AAAA"))
	assert.True(t, IsEmbeddable("https://cdn.example.com/a.jpg"))
	assert.True(t, IsEmbeddable("http://cdn.example.com/a.jpg"))
	assert.False(t, IsEmbeddable("users/u1/look.jpg"))
	assert.False(t, IsEmbeddable(""))
}

func TestValidateImageRef(t *testing.T) {
	assert.NoError(t, ValidateImageRef(EncodeDataURI("image/jpeg", []byte{0xff, 0xd8})))

	for _, ref := range []string{
		"",
		"http://169.254.169.254/latest/meta-data/",
		"https://example.com/a.jpg",
		"data:image/png,plain",
		EncodeDataURI("text/html", []byte("<html>")),
		"data:image/png;base64,",
	} {
		assert.ErrorIs(t, ValidateImageRef(ref), ErrNotInlineImage, ref)
	}
}

func TestLoadImage_NeverFetchesURLs(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("internal-secret"))
	}))
	defer srv.Close()

	_, data, err := LoadImage(srv.URL + "/latest/meta-data/")
	assert.Error(t, err)
	assert.Empty(t, data)
	assert.Zero(t, hits.Load())
}

func TestLoadImage(t *testing.T) {
	mimeType, data, err := LoadImage(EncodeDataURI("image/webp", []byte{7}))
	require.NoError(t, err)
	assert.Equal(t, "image/webp", mimeType)
	assert.Equal(t, []byte{7}, data)

	// bare base64 is sniffed
	png := []byte("\x89PNG\r\n\x1a\n0000")
	mimeType, data, err = LoadImage(EncodeDataURI("", png)[len("data:;base64,"):])
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, png, data)
}
