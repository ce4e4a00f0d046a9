package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/glow-studio/config"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/studio"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
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

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) FindOrCreateByEmail(ctx context.Context, email, name string) (models.User, bool, error) {
	args := m.Called(ctx, email, name)
	return args.Get(0).(models.User), args.Bool(1), args.Error(2)
}

func (m *mockUsers) SetResetCode(ctx context.Context, email, codeHash string, expires time.Time) (models.User, error) {
	args := m.Called(ctx, email, codeHash, expires)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockUsers) ResetPassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error {
	return m.Called(ctx, userID, passwordHash).Error(0)
}

type memoryTutorial map[string]bool

func (t memoryTutorial) TutorialSeen(owner string) bool { return t[owner] }

func (t memoryTutorial) MarkTutorialSeen(owner string) error {
	t[owner] = true
	return nil
}

type testServer struct {
	api      *API
	mux      *http.ServeMux
	vision   *mockVision
	users    *mockUsers
	tutorial memoryTutorial
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	prev := config.JWTSecret
	config.JWTSecret = "test-secret"
	t.Cleanup(func() { config.JWTSecret = prev })

	ts := &testServer{
		vision:   new(mockVision),
		users:    new(mockUsers),
		tutorial: memoryTutorial{},
	}
	ts.api = &API{
		Studios:  studio.NewManager(studio.Deps{Vision: ts.vision, Log: zerolog.Nop()}),
		Users:    ts.users,
		Tutorial: ts.tutorial,
	}
	t.Cleanup(ts.api.Studios.Close)

	ts.mux = http.NewServeMux()
	ts.api.Routes(ts.mux)
	return ts
}

// do sends body (if any) as the given device
func (ts *testServer) do(method, path, device, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if device != "" {
		req.Header.Set(DeviceHeader, device)
	}
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}
