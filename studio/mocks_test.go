package studio

import (
	"context"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

type mockVision struct {
	mock.Mock
}

func (m *mockVision) DetectFaces(ctx context.Context, image string) ([]string, error) {
	args := m.Called(ctx, image)
	faces, _ := args.Get(0).([]string)
	return faces, args.Error(1)
}

func (m *mockVision) AnalyzeBeauty(ctx context.Context, image string) (models.BeautyAnalysis, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(models.BeautyAnalysis), args.Error(1)
}

func (m *mockVision) IdentifyProduct(ctx context.Context, image string) (models.Product, []models.GroundingLink, error) {
	args := m.Called(ctx, image)
	links, _ := args.Get(1).([]models.GroundingLink)
	return args.Get(0).(models.Product), links, args.Error(2)
}

func (m *mockVision) ApplyProduct(ctx context.Context, image string, product models.Product, intensity int, target string) (string, error) {
	args := m.Called(ctx, image, product, intensity, target)
	return args.String(0), args.Error(1)
}

func (m *mockVision) ApplyFullLook(ctx context.Context, image string, analysis models.BeautyAnalysis) (string, error) {
	args := m.Called(ctx, image, analysis)
	return args.String(0), args.Error(1)
}

type mockBlobs struct {
	mock.Mock
}

func (m *mockBlobs) UploadImage(ctx context.Context, userID, imageRef, name string) (utils.UploadResult, error) {
	args := m.Called(ctx, userID, imageRef, name)
	return args.Get(0).(utils.UploadResult), args.Error(1)
}

func (m *mockBlobs) GetPresignedURL(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) GetProfile(ctx context.Context, userID string) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockProfiles) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) error {
	return m.Called(ctx, userID, upd).Error(0)
}

// fakeSubscriber records the callback so tests can push remote updates
type fakeSubscriber struct {
	onChange     func(models.User)
	unsubscribed int
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, userID string, onChange func(models.User)) (func(), error) {
	f.onChange = onChange
	return func() { f.unsubscribed++ }, nil
}

type memoryMirror struct {
	saved map[string]models.Collections
	err   error
}

func newMemoryMirror() *memoryMirror {
	return &memoryMirror{saved: make(map[string]models.Collections)}
}

func (m *memoryMirror) LoadCollections(owner string) models.Collections {
	return m.saved[owner]
}

func (m *memoryMirror) SaveCollections(owner string, c models.Collections) error {
	if m.err != nil {
		return m.err
	}
	m.saved[owner] = c
	return nil
}

type fixture struct {
	vision   *mockVision
	blobs    *mockBlobs
	profiles *mockProfiles
	updates  *fakeSubscriber
	local    *memoryMirror
}

func newFixture() *fixture {
	return &fixture{
		vision:   new(mockVision),
		blobs:    new(mockBlobs),
		profiles: new(mockProfiles),
		updates:  &fakeSubscriber{},
		local:    newMemoryMirror(),
	}
}

func (f *fixture) deps() Deps {
	return Deps{
		Vision:   f.vision,
		Blobs:    f.blobs,
		Profiles: f.profiles,
		Updates:  f.updates,
		Local:    f.local,
		Log:      zerolog.Nop(),
	}
}
