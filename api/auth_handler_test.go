package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/store"
	"github.com/raushankrgupta/glow-studio/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type authResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Error   string      `json:"error"`
}

func decodeAuth(t *testing.T, rec *httptest.ResponseRecorder) authResponse {
	t.Helper()
	var res authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestSignup(t *testing.T) {
	ts := newTestServer(t)
	id := primitive.NewObjectID()
	var welcomed []string
	ts.api.SendWelcome = func(name, email string) error {
		welcomed = append(welcomed, email)
		return nil
	}

	var stored *models.User
	ts.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*models.User)
			stored.ID = id
		}).
		Return(nil).Once()

	rec := ts.do(http.MethodPost, "/auth/signup", "", `{"name":" Ada ","email":"ada@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	res := decodeAuth(t, rec)
	assert.Equal(t, "Ada", res.User.Name)
	assert.NotContains(t, rec.Body.String(), "s3cret")
	assert.Equal(t, []string{"ada@example.com"}, welcomed)

	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))

	userID, err := utils.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), userID)
}

func TestSignupValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/auth/signup", "", `{"email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/auth/signup", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.users.On("CreateUser", mock.Anything, mock.Anything).Return(store.ErrEmailTaken).Once()
	rec = ts.do(http.MethodPost, "/auth/signup", "", `{"name":"Ada","email":"ada@example.com","password":"x"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com", Password: string(hash)}

	ts.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	ts.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(models.User{}, store.ErrNotFound)
	ts.users.On("FindByEmail", mock.Anything, "google@example.com").
		Return(models.User{ID: primitive.NewObjectID(), Email: "google@example.com"}, nil)

	rec := ts.do(http.MethodPost, "/auth/login", "", `{"email":"ada@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	userID, err := utils.ValidateToken(decodeAuth(t, rec).Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), userID)

	for _, body := range []string{
		`{"email":"ada@example.com","password":"wrong"}`,
		`{"email":"nobody@example.com","password":"s3cret"}`,
		`{"email":"google@example.com","password":"anything"}`,
	} {
		rec = ts.do(http.MethodPost, "/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, body)
		assert.Equal(t, "Invalid email or password", decodeAuth(t, rec).Error)
	}
}

func TestSignedInStudioAndLogout(t *testing.T) {
	ts := newTestServer(t)
	token, err := utils.GenerateToken("user-1")
	require.NoError(t, err)

	send := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		ts.mux.ServeHTTP(rec, req)
		return rec
	}

	rec := send(http.MethodGet, "/studio")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeView(t, rec).SignedIn)
	assert.Equal(t, 1, ts.api.Studios.Len())

	rec = send(http.MethodPost, "/auth/logout")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, ts.api.Studios.Len())

	rec = ts.do(http.MethodPost, "/auth/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutOnlyEndsThisDevice(t *testing.T) {
	ts := newTestServer(t)
	token, err := utils.GenerateToken("user-1")
	require.NoError(t, err)

	send := func(method, path, device string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set(DeviceHeader, device)
		rec := httptest.NewRecorder()
		ts.mux.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, send(http.MethodGet, "/studio", "phone").Code)
	require.Equal(t, http.StatusOK, send(http.MethodGet, "/studio", "tablet").Code)
	assert.Equal(t, 2, ts.api.Studios.Len())

	require.Equal(t, http.StatusOK, send(http.MethodPost, "/auth/logout", "phone").Code)
	assert.Equal(t, 1, ts.api.Studios.Len())

	rec := send(http.MethodGet, "/studio", "tablet")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeView(t, rec).SignedIn)
	assert.Equal(t, 1, ts.api.Studios.Len())
}

func TestGoogleLoginSetsState(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/auth/google/login", "", "")
	require.Equal(t, http.StatusTemporaryRedirect, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, oauthStateCookie, cookies[0].Name)
	assert.Contains(t, rec.Header().Get("Location"), "state="+cookies[0].Value)
}

func TestGoogleCallbackRejectsStateMismatch(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/callback?state=abc&code=xyz", nil)
	req.AddCookie(&http.Cookie{Name: oauthStateCookie, Value: "different"})
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "State invalid"))
	ts.users.AssertNotCalled(t, "FindOrCreateByEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestPasswordReset(t *testing.T) {
	ts := newTestServer(t)
	user := models.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com"}

	var sentCode, storedHash string
	ts.api.SendResetCode = func(name, email, code string) error {
		sentCode = code
		return nil
	}
	ts.users.On("SetResetCode", mock.Anything, "ada@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { storedHash = args.String(2) }).
		Return(user, nil).Once()

	rec := ts.do(http.MethodPost, "/auth/forgot-password", "", `{"email":"ada@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sentCode, otpDigits)
	assert.NotEqual(t, sentCode, storedHash)

	user.ResetCode = storedHash
	user.ResetExpires = time.Now().Add(time.Minute)
	ts.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	rec = ts.do(http.MethodPost, "/auth/reset-password", "", `{"email":"ada@example.com","otp":"nope","new_password":"n3w"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var newHash string
	ts.users.On("ResetPassword", mock.Anything, user.ID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { newHash = args.String(2) }).
		Return(nil).Once()

	body := fmt.Sprintf(`{"email":"ada@example.com","otp":%q,"new_password":"n3w"}`, sentCode)
	rec = ts.do(http.MethodPost, "/auth/reset-password", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("n3w")))
	ts.users.AssertExpectations(t)
}

func TestPasswordResetExpiredCode(t *testing.T) {
	ts := newTestServer(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		ID:           primitive.NewObjectID(),
		Email:        "ada@example.com",
		ResetCode:    string(hash),
		ResetExpires: time.Now().Add(-time.Minute),
	}
	ts.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

	rec := ts.do(http.MethodPost, "/auth/reset-password", "", `{"email":"ada@example.com","otp":"123456","new_password":"n3w"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	ts.users.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	ts := newTestServer(t)
	sent := false
	ts.api.SendResetCode = func(name, email, code string) error {
		sent = true
		return nil
	}
	ts.users.On("SetResetCode", mock.Anything, "ghost@example.com", mock.Anything, mock.Anything).
		Return(models.User{}, store.ErrNotFound)

	rec := ts.do(http.MethodPost, "/auth/forgot-password", "", `{"email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, sent)
}
