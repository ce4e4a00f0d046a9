package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/glow-studio/models"
	"github.com/raushankrgupta/glow-studio/store"
	"github.com/raushankrgupta/glow-studio/utils"
	"golang.org/x/crypto/bcrypt"
)

// SignupRequest represents the payload for user registration
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents the payload for forgot password
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest represents the payload for resetting password
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

const (
	otpDigits = 6
	otpTTL    = 15 * time.Minute
)

// SignupHandler handles user registration
func (a *API) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Signup API]")

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	// Basic Validation
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Name, Email and Password are required", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to hash password: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	newUser := models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := a.Users.CreateUser(ctx, &newUser); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			utils.RespondError(w, &logMessageBuilder, "User with this email already exists", http.StatusConflict)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to create user: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to create user", http.StatusInternalServerError)
		return
	}

	if a.SendWelcome != nil {
		if err := a.SendWelcome(newUser.Name, newUser.Email); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send welcome email: %v", err))
		}
	}

	token, err := utils.GenerateToken(newUser.ID.Hex())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "User registered successfully")
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"token":   token,
		"user":    newUser,
	})
}

// LoginHandler handles user login
func (a *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Email and Password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := a.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User not found: %s", req.Email))
			utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		} else {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Database error: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		}
		return
	}

	// accounts created through Google have no password
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Login successful")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// LogoutHandler tears down the caller's studio on this device and its live profile subscription
func (a *API) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Logout API]")

	token, ok := bearerToken(r)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, "Bearer token required", http.StatusUnauthorized)
		return
	}
	userID, err := utils.ValidateToken(token)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid or expired token", http.StatusUnauthorized)
		return
	}

	a.Studios.Logout(userID, deviceID(r))
	utils.AddToLogMessage(&logMessageBuilder, "Logged out user "+userID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// ForgotPasswordHandler mails a one-time reset code. Unknown emails get the same answer.
func (a *API) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Forgot Password API]")

	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		utils.RespondError(w, &logMessageBuilder, "Email is required", http.StatusBadRequest)
		return
	}

	otpCode, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to generate OTP", http.StatusInternalServerError)
		return
	}
	otpHash, err := bcrypt.GenerateFromPassword([]byte(otpCode), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to generate OTP", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := a.Users.SetResetCode(ctx, req.Email, string(otpHash), time.Now().Add(otpTTL))
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User not found: %s", req.Email))
	case err != nil:
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to update user OTP: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to update user", http.StatusInternalServerError)
		return
	case a.SendResetCode != nil:
		if err := a.SendResetCode(user.Name, user.Email, otpCode); err != nil {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to send email: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Failed to send email", http.StatusInternalServerError)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, "OTP for password reset sent")
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "If an account exists for this email, an OTP has been sent.",
	})
}

// ResetPasswordHandler sets a new password when the reset code matches and has not expired
func (a *API) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(&logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Reset Password API]")

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		utils.RespondError(w, &logMessageBuilder, "Email, OTP and New Password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := a.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, &logMessageBuilder, "Invalid OTP", http.StatusUnauthorized)
		} else {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Database error: %v", err))
			utils.RespondError(w, &logMessageBuilder, "Database error", http.StatusInternalServerError)
		}
		return
	}

	if user.ResetCode == "" || time.Now().After(user.ResetExpires) ||
		bcrypt.CompareHashAndPassword([]byte(user.ResetCode), []byte(req.OTP)) != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid OTP", http.StatusUnauthorized)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to hash password", http.StatusInternalServerError)
		return
	}
	if err := a.Users.ResetPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to update password: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to update password", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Password reset successfully")
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successfully. Please login with your new password.",
	})
}
