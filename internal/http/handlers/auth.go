package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tiketi/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates the configured operator account and issues the admin
// token used by the archive endpoints.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	if h.Env.AdminEmail == "" || h.Env.AdminPasswordHash == "" {
		RespondError(c, http.StatusServiceUnavailable, "operator login is not configured", nil)
		return
	}
	if req.Email != strings.ToLower(h.Env.AdminEmail) {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.Env.AdminPasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  req.Email,
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token", err)
		return
	}

	utils.LogEvent(requestID(c), "auth", "login", "email="+req.Email)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int64((24 * time.Hour).Seconds()),
	})
}
