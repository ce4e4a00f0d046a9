package utils

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotInlineImage is returned for image references that are not base64 image data URIs
var ErrNotInlineImage = errors.New("image must be a base64 data URI")

// IsEmbeddable reports whether ref can be shown as is, without requesting a signed URL.
// Inline data URIs and fully-qualified http(s) URLs are embeddable.
func IsEmbeddable(ref string) bool {
	return strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// ParseDataURI splits a base64 data URI into its MIME type and decoded bytes
func ParseDataURI(ref string) (string, []byte, error) {
	if !strings.HasPrefix(ref, "data:") {
		return "", nil, fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data URI")
	}
	mimeType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return mimeType, data, nil
}

// EncodeDataURI builds a base64 data URI
func EncodeDataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ValidateImageRef accepts only inline base64 images, the form photos and captures are uploaded in
func ValidateImageRef(ref string) error {
	mimeType, data, err := ParseDataURI(ref)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotInlineImage, err)
	}
	if !strings.HasPrefix(mimeType, "image/") || len(data) == 0 {
		return fmt.Errorf("%w: got %q", ErrNotInlineImage, mimeType)
	}
	return nil
}

// LoadImage returns the bytes and MIME type behind an image reference. Data URIs are decoded
// and anything else is treated as bare base64. Nothing is ever fetched over the network.
func LoadImage(ref string) (string, []byte, error) {
	if strings.HasPrefix(ref, "data:") {
		return ParseDataURI(ref)
	}

	data, err := base64.StdEncoding.DecodeString(ref)
	if err != nil {
		return "", nil, fmt.Errorf("unsupported image reference: %w", err)
	}
	return http.DetectContentType(data), data, nil
}
