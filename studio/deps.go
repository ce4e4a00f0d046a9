package studio

import (
	"context"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/rs/zerolog"
)

// Vision is the generative model API
type Vision interface {
	DetectFaces(ctx context.Context, image string) ([]string, error)
	AnalyzeBeauty(ctx context.Context, image string) (models.BeautyAnalysis, error)
	IdentifyProduct(ctx context.Context, image string) (models.Product, []models.GroundingLink, error)
	ApplyProduct(ctx context.Context, image string, product models.Product, intensity int, target string) (string, error)
	ApplyFullLook(ctx context.Context, image string, analysis models.BeautyAnalysis) (string, error)
}

// Blobs stores private images and issues temporary URLs for them
type Blobs interface {
	UploadImage(ctx context.Context, userID, imageRef, name string) (utils.UploadResult, error)
	GetPresignedURL(ctx context.Context, path string) (string, error)
}

// Profiles is the remote, durable copy of a user's collections
type Profiles interface {
	GetProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error
}

// Subscriber delivers profile changes made by other sessions
type Subscriber interface {
	Subscribe(ctx context.Context, userID string, onChange func(models.User)) (func(), error)
}

// LocalMirror is the on-device copy of the collections
type LocalMirror interface {
	LoadCollections(owner string) models.Collections
	SaveCollections(owner string, c models.Collections) error
}

// Deps are the collaborators a studio talks to. Blobs, Profiles and Updates may be nil
// when running without a backend.
type Deps struct {
	Vision   Vision
	Blobs    Blobs
	Profiles Profiles
	Updates  Subscriber
	Local    LocalMirror
	Log      zerolog.Logger
}
