package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	intconfig "transit/internal/config"
	"transit/internal/domain/models"
)

var jwtSecret []byte

// SetJWTSecret wires the signing key from env at router construction.
func SetJWTSecret(secret []byte) {
	jwtSecret = secret
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         models.User
		passwordHash string
	)
	err := intconfig.DB.QueryRow(`
		SELECT id, email, COALESCE(phone,''), full_name, hashed_password, role, is_active, created_at
		FROM users
		WHERE email = ?`, strings.TrimSpace(req.Email)).Scan(
		&user.ID,
		&user.Email,
		&user.Phone,
		&user.FullName,
		&passwordHash,
		&user.Role,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusUnauthorized, "incorrect email or password", nil)
		} else {
			RespondError(c, http.StatusInternalServerError, "failed to query user", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "incorrect email or password", nil)
		return
	}
	if !user.IsActive {
		RespondError(c, http.StatusBadRequest, "inactive user", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "bearer",
		"user":         user,
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || strings.TrimSpace(req.Password) == "" {
		RespondError(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, req.Email).Scan(&exists); err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to check user", err)
		return
	}
	if exists > 0 {
		RespondError(c, http.StatusBadRequest, "email already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = "passenger"
	}

	res, err := intconfig.DB.Exec(`
		INSERT INTO users (email, phone, full_name, hashed_password, role, is_active)
		VALUES (?, ?, ?, ?, ?, 1)`,
		req.Email, strings.TrimSpace(req.Phone), strings.TrimSpace(req.FullName), string(hash), role)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to save user", err)
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"id":        id,
		"email":     req.Email,
		"full_name": req.FullName,
		"phone":     req.Phone,
		"role":      role,
		"is_active": true,
	})
}
