package api

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/glow-studio/config"
	"github.com/raushankrgupta/glow-studio/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	oauthStateCookie = "oauthstate"
	googleUserInfo   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

func getOauthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  config.GoogleRedirectURL,
		ClientID:     config.GoogleClientID,
		ClientSecret: config.GoogleClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

// GoogleLoginHandler handles the login request by redirecting to Google
func (a *API) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Google Login API]")

	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to start login", http.StatusInternalServerError)
		return
	}
	state := base64.RawURLEncoding.EncodeToString(b)
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.AddToLogMessage(&logMessageBuilder, "Redirecting to Google Auth")
	http.Redirect(w, r, getOauthConfig().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler signs in (or signs up) the Google account and returns a session token
func (a *API) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Google Callback API]")

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || r.FormValue("state") != cookie.Value {
		utils.RespondError(w, &logMessageBuilder, "State invalid", http.StatusBadRequest)
		return
	}

	code := r.FormValue("code")
	if code == "" {
		utils.RespondError(w, &logMessageBuilder, "Code not found", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	oauthConfig := getOauthConfig()
	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to exchange token: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	resp, err := oauthConfig.Client(ctx, token).Get(googleUserInfo)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to get user info: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to read user info response: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to read user info", http.StatusInternalServerError)
		return
	}

	user, created, err := a.Users.FindOrCreateByEmail(ctx, info.Email, info.Name)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to load account: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to load account", http.StatusInternalServerError)
		return
	}
	if created && a.SendWelcome != nil {
		if err := a.SendWelcome(user.Name, user.Email); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send welcome email: %v", err))
		}
	}

	sessionToken, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Successfully signed in with Google")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   sessionToken,
		"user":    user,
	})
}
