package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/config"
	"github.com/iliyamo/task-vault/internal/middleware"
	"github.com/iliyamo/task-vault/internal/repository"
	"github.com/iliyamo/task-vault/internal/utils"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateProfileReq struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type userPart struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Responses carry the success flag on every body; failures use
// fail()/internalError() so the envelope never drifts between
// endpoints.

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg})
}

func internalError(c echo.Context) error {
	return fail(c, http.StatusInternalServerError, "internal server error")
}

// invalidCredentials is shared by the unknown-email and wrong-password
// paths of Login. Identical status and body on both keeps account
// existence unobservable.
func invalidCredentials(c echo.Context) error {
	return fail(c, http.StatusUnauthorized, "invalid credentials")
}

// Register creates a user from username/email/password. It does not
// log the new user in; no token is issued.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "all fields are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Best-effort shortcut; the unique indexes behind Create are the
	// real guard against concurrent registrations.
	taken, err := h.Users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return internalError(c)
	}
	if taken {
		return fail(c, http.StatusConflict, "username or email already registered")
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return internalError(c)
	}

	u, err := h.Users.Create(ctx, req.Username, req.Email, hash)
	if err != nil {
		if err == repository.ErrDuplicate {
			return fail(c, http.StatusConflict, "username or email already registered")
		}
		return internalError(c)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "user registered",
		"user":    echo.Map{"id": u.ID, "email": u.Email},
	})
}

// Login verifies email/password and issues a 1-hour token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Email = repository.NormalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return invalidCredentials(c)
		}
		return internalError(c)
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return invalidCredentials(c)
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret,
		utils.Claims{UserID: u.ID, Username: u.Username, Email: u.Email},
		h.Cfg.AccessTTL)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "login successful",
		"token":   token,
		"user":    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}

// UpdateProfile changes username and/or password of the authenticated
// user. A username change issues a fresh token carrying the new name;
// tokens issued earlier keep the stale name and stay valid until their
// own expiry.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username != "" && !utils.ValidUsername(req.Username) {
		return fail(c, http.StatusBadRequest,
			"username must be 3-30 characters of letters, numbers and underscores")
	}
	if req.NewPassword != "" && !utils.ValidNewPassword(req.NewPassword) {
		return fail(c, http.StatusBadRequest,
			"new password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByID(ctx, cl.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return internalError(c)
	}

	var upd repository.ProfileUpdate

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return fail(c, http.StatusBadRequest,
				"current password is required to change the password")
		}
		if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
			return fail(c, http.StatusUnauthorized, "current password is incorrect")
		}
		hash, err := utils.HashPassword(req.NewPassword, h.Cfg.BcryptCost)
		if err != nil {
			return internalError(c)
		}
		upd.PasswordHash = &hash
	}

	usernameChanged := req.Username != "" && req.Username != u.Username
	if usernameChanged {
		taken, err := h.Users.UsernameTakenByOther(ctx, req.Username, u.ID)
		if err != nil {
			return internalError(c)
		}
		if taken {
			return fail(c, http.StatusConflict, "username already in use")
		}
		upd.Username = &req.Username
	}

	if upd.Username == nil && upd.PasswordHash == nil {
		return fail(c, http.StatusBadRequest, "nothing to update")
	}

	updated, err := h.Users.UpdateByID(ctx, u.ID, upd)
	if err != nil {
		switch err {
		case repository.ErrDuplicate:
			return fail(c, http.StatusConflict, "username already in use")
		case sql.ErrNoRows:
			return fail(c, http.StatusNotFound, "user not found")
		}
		return internalError(c)
	}

	resp := echo.Map{
		"success": true,
		"message": "profile updated",
		"user":    userPart{ID: updated.ID, Username: updated.Username, Email: updated.Email},
	}
	if usernameChanged {
		token, err := utils.NewAuthToken(h.Cfg.JWTSecret,
			utils.Claims{UserID: updated.ID, Username: updated.Username, Email: updated.Email},
			h.Cfg.AccessTTL)
		if err != nil {
			return internalError(c)
		}
		resp["token"] = token
	}
	return c.JSON(http.StatusOK, resp)
}

// Refresh issues a fresh 30-minute token from the current user record.
// The identity fields are re-read so a token refreshed after a profile
// change carries the current username and email.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.FindByID(ctx, cl.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "user not found")
		}
		return internalError(c)
	}

	token, err := utils.NewAuthToken(h.Cfg.JWTSecret,
		utils.Claims{UserID: u.ID, Username: u.Username, Email: u.Email},
		h.Cfg.RefreshTTL)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "token refreshed",
		"token":   token,
		"user":    userPart{ID: u.ID, Username: u.Username, Email: u.Email},
	})
}
