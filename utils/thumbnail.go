package utils

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// ThumbnailMaxSize is the longest edge of a saved thumbnail
	ThumbnailMaxSize = 400
	// ThumbnailQuality is the JPEG quality of a saved thumbnail
	ThumbnailQuality = 80
)

// CreateThumbnail downsamples an inline image so its longer edge is at most ThumbnailMaxSize
// and re-encodes it as JPEG. Anything that cannot be decoded is returned unchanged.
func CreateThumbnail(imageRef string) string {
	_, data, err := ParseDataURI(imageRef)
	if err != nil {
		return imageRef
	}
	out, err := ReduceImage(data, ThumbnailMaxSize, ThumbnailQuality)
	if err != nil {
		return imageRef
	}
	return EncodeDataURI("image/jpeg", out)
}

// ReduceImage decodes data, fits it inside a maxSize square keeping the aspect ratio
// and encodes the result as JPEG at the given quality. Images already inside the box keep their size.
func ReduceImage(data []byte, maxSize, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}
	width, height := ThumbnailSize(bounds.Dx(), bounds.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// ThumbnailSize scales width x height down so that the longer edge is at most maxSize
func ThumbnailSize(width, height, maxSize int) (int, int) {
	if width > height {
		if width > maxSize {
			height = height * maxSize / width
			width = maxSize
		}
	} else if height > maxSize {
		width = width * maxSize / height
		height = maxSize
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}
