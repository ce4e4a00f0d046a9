package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/store"
	"github.com/raushankrgupta/glow-studio/studio"
	"github.com/raushankrgupta/glow-studio/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DeviceHeader = "X-Device-ID"

	// generativeTimeout bounds a single request that calls the model API
	generativeTimeout = 5 * time.Minute
	requestTimeout    = 10 * time.Second
)

// UserStore is the account side of the profile store
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindOrCreateByEmail(ctx context.Context, email, name string) (models.User, bool, error)
	SetResetCode(ctx context.Context, email, codeHash string, expires time.Time) (models.User, error)
	ResetPassword(ctx context.Context, userID primitive.ObjectID, passwordHash string) error
}

// TutorialStore remembers whether the one-time tutorial was dismissed
type TutorialStore interface {
	TutorialSeen(owner string) bool
	MarkTutorialSeen(owner string) error
}

// API serves the studio over HTTP
type API struct {
	Studios  *studio.Manager
	Users    UserStore
	Tutorial TutorialStore

	// SendWelcome is called after signup. Failures are logged only.
	SendWelcome func(name, email string) error
	// SendResetCode delivers a password reset code
	SendResetCode func(name, email, code string) error

	// RateLimit is the number of model-backed requests allowed per identity per minute. Zero disables limiting.
	RateLimit int
}

// Routes registers every endpoint on mux
func (a *API) Routes(mux *http.ServeMux) {
	generative := func(h http.HandlerFunc) http.Handler {
		if a.RateLimit <= 0 {
			return h
		}
		return httprate.Limit(a.RateLimit, time.Minute,
			httprate.WithKeyFuncs(identityKey),
			httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
				utils.RespondError(w, nil, "Too many requests. Please slow down.", http.StatusTooManyRequests)
			}),
		)(h)
	}

	mux.HandleFunc("POST /auth/signup", a.SignupHandler)
	mux.HandleFunc("POST /auth/login", a.LoginHandler)
	mux.HandleFunc("POST /auth/logout", a.LogoutHandler)
	mux.HandleFunc("POST /auth/forgot-password", a.ForgotPasswordHandler)
	mux.HandleFunc("POST /auth/reset-password", a.ResetPasswordHandler)
	mux.HandleFunc("GET /auth/google/login", a.GoogleLoginHandler)
	mux.HandleFunc("GET /auth/google/callback", a.GoogleCallbackHandler)

	mux.HandleFunc("GET /catalog", a.CatalogHandler)
	mux.HandleFunc("GET /catalog/spectrum", a.SpectrumHandler)

	mux.HandleFunc("GET /studio", a.withStudio("Studio View", a.viewStudio))
	mux.Handle("POST /studio/photo", generative(a.withStudio("Load Photo", a.loadPhoto)))
	mux.HandleFunc("POST /studio/face", a.withStudio("Select Face", a.selectFace))
	mux.Handle("POST /studio/apply", generative(a.withStudio("Apply Product", a.applyProduct)))
	mux.Handle("POST /studio/auto-enhance", generative(a.withStudio("Auto Enhance", a.autoEnhance)))
	mux.HandleFunc("POST /studio/undo", a.withStudio("Undo", a.undo))
	mux.HandleFunc("POST /studio/redo", a.withStudio("Redo", a.redo))
	mux.HandleFunc("POST /studio/new-photo", a.withStudio("New Photo", a.newPhoto))
	mux.HandleFunc("POST /studio/comparison", a.withStudio("Toggle Comparison", a.toggleComparison))
	mux.HandleFunc("POST /studio/intensity", a.withStudio("Set Intensity", a.setIntensity))
	mux.Handle("POST /studio/scan", generative(a.withStudio("Scan Product", a.scan)))

	mux.HandleFunc("GET /looks", a.withStudio("List Looks", a.listLooks))
	mux.HandleFunc("POST /looks", a.withStudio("Save Look", a.saveLook))
	mux.HandleFunc("DELETE /looks/{id}", a.withStudio("Delete Look", a.deleteLook))
	mux.Handle("POST /looks/{id}/apply", generative(a.withStudio("Apply Look", a.applyLook)))

	mux.HandleFunc("POST /favorites/{id}", a.withStudio("Toggle Favorite", a.toggleFavorite))

	mux.HandleFunc("GET /tutorial", a.withStudio("Tutorial Status", a.tutorialStatus))
	mux.HandleFunc("POST /tutorial/seen", a.withStudio("Tutorial Seen", a.tutorialSeen))
}

type studioHandler func(w http.ResponseWriter, r *http.Request, st *studio.Studio, logMessageBuilder *strings.Builder)

// withStudio resolves the caller's studio and hands it to next. A bearer token selects the
// user's studio, otherwise the device header selects a guest studio.
func (a *API) withStudio(name string, next studioHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var logMessageBuilder strings.Builder
		defer utils.FlushLogMessage(&logMessageBuilder)
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("[%s API]", name))

		st, status, err := a.studioFor(r)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, err.Error(), status)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "Studio: "+st.Owner())
		next(w, r, st, &logMessageBuilder)
	}
}

func (a *API) studioFor(r *http.Request) (*studio.Studio, int, error) {
	if token, ok := bearerToken(r); ok {
		userID, err := utils.ValidateToken(token)
		if err != nil {
			return nil, http.StatusUnauthorized, errors.New("Invalid or expired token")
		}
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		sess := studio.Session{UserID: userID, DeviceID: deviceID(r)}
		st, err := a.Studios.ForUser(ctx, sess)
		if errors.Is(err, store.ErrNotFound) {
			return nil, http.StatusUnauthorized, errors.New("Account no longer exists")
		}
		if err != nil {
			return nil, http.StatusInternalServerError, errors.New("Could not load profile")
		}
		return st, 0, nil
	}

	device := deviceID(r)
	if device == "" {
		return nil, http.StatusBadRequest, fmt.Errorf("%s header or bearer token required", DeviceHeader)
	}
	return a.Studios.ForDevice(device), 0, nil
}

func deviceID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(DeviceHeader))
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

// identityKey rate limits per user or device, falling back to the client address
func identityKey(r *http.Request) (string, error) {
	if token, ok := bearerToken(r); ok {
		return "token:" + token, nil
	}
	if id := r.Header.Get(DeviceHeader); id != "" {
		return "device:" + id, nil
	}
	return httprate.KeyByIP(r)
}

// respondStudio writes the view, or the error with the view attached so the client can
// render the state the studio settled in
func respondStudio(w http.ResponseWriter, logMessageBuilder *strings.Builder, v studio.View, err error) {
	if err == nil {
		utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("OK, status=%s history=%d/%d", v.Status, v.HistoryIndex, v.HistoryLength))
		utils.RespondJSON(w, http.StatusOK, v)
		return
	}

	status, message := classify(err)
	utils.AddToLogMessage(logMessageBuilder, fmt.Sprintf("Failed (%d): %v", status, err))
	utils.RespondJSON(w, status, map[string]interface{}{
		"error": message,
		"view":  v,
	})
}

// classify maps studio errors onto an HTTP status and the message shown to the user
func classify(err error) (int, string) {
	var actionErr *studio.ActionError
	switch {
	case errors.Is(err, utils.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "Quota exceeded. Please try again later."
	case errors.Is(err, studio.ErrAuthRequired):
		return http.StatusUnauthorized, studio.MsgLoginRequired
	case errors.Is(err, studio.ErrBusy), errors.Is(err, studio.ErrStale),
		errors.Is(err, studio.ErrFaceSelectionPending), errors.Is(err, studio.ErrNoFaceSelection):
		return http.StatusConflict, err.Error()
	case errors.Is(err, studio.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, err.Error()
	case errors.Is(err, studio.ErrUnknownProduct), errors.Is(err, studio.ErrUnknownLook):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, studio.ErrNoImage), errors.Is(err, studio.ErrInvalidName), errors.Is(err, studio.ErrUnknownFace):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &actionErr):
		return http.StatusBadGateway, actionErr.Message
	}
	return http.StatusInternalServerError, "Internal server error"
}
