package controllers

import (
	"net/http"
	"time"

	"blogapi/app/auth"
	"blogapi/app/models"
	"blogapi/app/services"
)

// AuthController handles account registration and sessions.
type AuthController struct {
	userService  *services.UserService
	secureCookie bool
}

// NewAuthController creates a new AuthController. secureCookie marks the
// session cookie HTTPS-only.
func NewAuthController(userService *services.UserService, secureCookie bool) *AuthController {
	return &AuthController{userService: userService, secureCookie: secureCookie}
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Register creates an account.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	user, err := ac.userService.Register(r.Context(), &creds)
	if err != nil {
		sendServiceError(w, r, err, "User not found")
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Login returns a bearer token and also sets it as the session cookie.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if !decodeJSON(w, r, &creds) {
		return
	}
	token, expires, err := ac.userService.Login(r.Context(), &creds)
	if err != nil {
		sendServiceError(w, r, err, "User not found")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   ac.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	sendJSON(w, http.StatusOK, tokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expires})
}

// Logout clears the session cookie. Bearer tokens stay valid until they
// expire.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ac.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
