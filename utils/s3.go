package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appConfig "github.com/raushankrgupta/glow-studio/config"
)

// UploadResult is the storage key of an uploaded image and a temporary URL to view it
type UploadResult struct {
	Path      string `json:"path"`
	SignedURL string `json:"signed_url"`
}

// S3Store keeps user uploads in a private bucket and hands out presigned URLs for them
type S3Store struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

// NewS3Store initializes the S3 client from the default credential chain
func NewS3Store(ctx context.Context) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(appConfig.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	client := s3.NewFromConfig(cfg)
	Log.Info().Str("bucket", appConfig.AWSBucketName).Msg("S3 Client Initialized")
	return &S3Store{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    appConfig.AWSBucketName,
		ttl:       appConfig.PresignTTL,
	}, nil
}

// UploadFileToS3 uploads a file to S3 and returns the Object Key
func (s *S3Store) UploadFileToS3(ctx context.Context, file io.Reader, objectKey string, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return objectKey, nil
}

// GetPresignedURL generates a presigned URL for an object
func (s *S3Store) GetPresignedURL(ctx context.Context, objectKey string) (string, error) {
	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}

	return request.URL, nil
}

// UploadImage stores an inline image under the user's prefix, overwriting any previous
// object with the same name, and returns its key plus a temporary URL.
func (s *S3Store) UploadImage(ctx context.Context, userID, imageRef, fileName string) (UploadResult, error) {
	mimeType, data, err := ParseDataURI(imageRef)
	if err != nil {
		return UploadResult{}, err
	}

	objectKey := ImageObjectKey(userID, fileName, mimeType)
	if _, err := s.UploadFileToS3(ctx, bytes.NewReader(data), objectKey, mimeType); err != nil {
		return UploadResult{}, err
	}

	signedURL, err := s.GetPresignedURL(ctx, objectKey)
	if err != nil {
		return UploadResult{}, fmt.Errorf("could not sign URL: %w", err)
	}
	return UploadResult{Path: objectKey, SignedURL: signedURL}, nil
}

// ImageObjectKey is the storage key of a user's image. The extension follows the image type.
func ImageObjectKey(userID, fileName, mimeType string) string {
	return fmt.Sprintf("%s/%s%s", userID, fileName, imageExtension(mimeType))
}

func imageExtension(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	}
	return ".jpg"
}
