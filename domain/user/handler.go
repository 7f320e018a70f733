package user

import (
	"database/sql"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/lumaxtec/site-backend/domain/content"
	"github.com/lumaxtec/site-backend/middleware"
	"github.com/lumaxtec/site-backend/pkg/apperrors"
	"github.com/lumaxtec/site-backend/pkg/logger"
	"github.com/lumaxtec/site-backend/utils"
)

const minPasswordLength = 10

// Handler serves account and login endpoints.
type Handler struct {
	db *sqlx.DB
}

// NewHandler creates a user handler on an injected database handle.
func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{db: db}
}

// LoginHandler authenticates by email and password and returns a signed
// access token carrying the role claim.
func (h *Handler) LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	var u User
	err := h.db.GetContext(c.Request().Context(), &u,
		h.db.Rebind("SELECT id, email, password, role, last_login, created_at, updated_at FROM users WHERE email = ?"),
		strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeInvalidCredentials,
				"Invalid email or password.",
			))
		}
		log.Error("Failed to fetch user", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.Password, u.Password) {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Invalid email or password.",
		))
	}

	token, err := utils.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("Failed to generate access token", err, logger.UserID(u.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	if _, err := h.db.ExecContext(c.Request().Context(),
		h.db.Rebind("UPDATE users SET last_login = ? WHERE id = ?"),
		time.Now().UTC(), u.ID,
	); err != nil {
		log.Warn("Failed to update last login", logger.Err(err), logger.UserID(u.ID))
	}

	log.Info("User logged in", logger.UserID(u.ID))
	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(utils.AccessTokenExpiry.Seconds()),
		User:        Public{ID: u.ID, Email: u.Email, Role: u.Role},
	})
}

// CreateUserHandler creates an account. Admin only.
func (h *Handler) CreateUserHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	req := new(CreateUserRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidEmail,
			"A valid email address is required.",
		))
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidPassword,
			"Password must be at least 10 characters.",
		))
	}
	switch req.Role {
	case middleware.RoleAdmin, middleware.RoleMitarbeiter, middleware.RoleCustomer:
	default:
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidRole,
			"Role must be one of: admin, mitarbeiter, customer.",
		))
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Error("Failed to hash password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	now := time.Now().UTC()
	_, err = h.db.ExecContext(c.Request().Context(),
		h.db.Rebind("INSERT INTO users (email, password, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"),
		email, hashed, req.Role, now, now)
	if err != nil {
		if content.IsUniqueViolation(err) {
			return apperrors.RespondWithError(c, apperrors.NewConflict(
				apperrors.ErrCodeResourceExists,
				"An account with this email already exists.",
			))
		}
		log.Error("Failed to create user", err, logger.Email(email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("User created", logger.Email(email), logger.String("role", req.Role))
	return c.JSON(http.StatusCreated, map[string]string{"message": "User created successfully"})
}

// ListUsersHandler returns all accounts. Admin only.
func (h *Handler) ListUsersHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")

	users := []User{}
	err := h.db.SelectContext(c.Request().Context(), &users,
		"SELECT id, email, password, role, last_login, created_at, updated_at FROM users ORDER BY email ASC")
	if err != nil {
		log.Error("Failed to list users", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	public := make([]Public, 0, len(users))
	for _, u := range users {
		public = append(public, Public{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, public)
}

// ChangePasswordHandler changes the authenticated user's own password.
func (h *Handler) ChangePasswordHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	userID := c.Get("user_id").(int64)
	log = log.WithUserID(userID)

	req := new(ChangePasswordRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if len(req.NewPassword) < minPasswordLength {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidPassword,
			"Password must be at least 10 characters.",
		))
	}

	var currentHash string
	err := h.db.GetContext(c.Request().Context(), &currentHash,
		h.db.Rebind("SELECT password FROM users WHERE id = ?"), userID)
	if err != nil {
		log.Error("Failed to fetch user password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.OldPassword, currentHash) {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidPassword,
			"The password you entered is incorrect.",
		))
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		log.Error("Failed to hash new password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Internal server error.",
			err,
		))
	}

	if _, err := h.db.ExecContext(c.Request().Context(),
		h.db.Rebind("UPDATE users SET password = ?, updated_at = ? WHERE id = ?"),
		newHash, time.Now().UTC(), userID,
	); err != nil {
		log.Error("Failed to update password", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Password changed")
	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// DeleteUserHandler removes an account. Admin only; self-deletion is
// rejected so the last admin cannot lock everyone out by accident.
func (h *Handler) DeleteUserHandler(c echo.Context) error {
	log := logger.Get().WithComponent("user")
	callerID := c.Get("user_id").(int64)

	id := c.Param("id")
	var targetID int64
	err := h.db.GetContext(c.Request().Context(), &targetID,
		h.db.Rebind("SELECT id FROM users WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeUserNotFound,
				"User not found.",
			))
		}
		log.Error("Failed to fetch user", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}
	if targetID == callerID {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"You cannot delete your own account.",
		))
	}

	if _, err := h.db.ExecContext(c.Request().Context(),
		h.db.Rebind("DELETE FROM users WHERE id = ?"), targetID,
	); err != nil {
		log.Error("Failed to delete user", err, logger.Int64("target_user_id", targetID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("User deleted", logger.Int64("target_user_id", targetID))
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
