package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/freshbite/shop/internal/apperrors"
	"github.com/freshbite/shop/internal/config"
	"github.com/freshbite/shop/internal/domain/user"
	"github.com/freshbite/shop/internal/http/middlewares"
	"github.com/freshbite/shop/internal/observability"
	"github.com/freshbite/shop/internal/security"
	"github.com/gin-gonic/gin"
)

type UserStore interface {
	Create(ctx context.Context, u user.User) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
	UpdatePartial(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}

type UsersHandler struct {
	store   UserStore
	tokens  TokenIssuer
	metrics *observability.Prom
}

// NewUsersHandler wires the account endpoints. metrics may be nil in tests.
func NewUsersHandler(store UserStore, tokens TokenIssuer, metrics *observability.Prom) *UsersHandler {
	return &UsersHandler{
		store:   store,
		tokens:  tokens,
		metrics: metrics,
	}
}

func (h *UsersHandler) observe(op string, fn func() error) error {
	if h.metrics == nil {
		return fn()
	}
	return h.metrics.ObserveDB(op, fn)
}

// Register creates an account. The plaintext password is hashed before it
// touches the store; the response never carries the hash (the field is
// excluded from serialization). Duplicate emails are deliberately not
// rejected here, the data layer carries no uniqueness constraint.
func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u := user.NewFromCreateRequest(req, hash)

	err = h.observe("users.create", func() error {
		var storeErr error
		u, storeErr = h.store.Create(cctx, u)
		return storeErr
	})

	if err != nil {
		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}

// Login authenticates by email and password and mints a session token. An
// unknown email short-circuits before any hash comparison.
func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	var foundUser user.User

	err := h.observe("users.get_by_email", func() error {
		var storeErr error
		foundUser, storeErr = h.store.GetByEmail(cctx, req.Email)
		return storeErr
	})

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondAppError(ctx, apperrors.Auth("no_such_account", "no such account"))
			return
		}

		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondAppError(ctx, apperrors.Auth("login_failed", "login failed"))
		return
	}

	token, err := h.tokens.GenerateToken(foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user":  foundUser,
		"token": token,
	})
}

// GetProfile returns the account behind the verified token.
func (h *UsersHandler) GetProfile(ctx *gin.Context) {
	id, ok := middlewares.UserIDFromContext(ctx)

	if !ok || id == "" {
		RespondAppError(ctx, apperrors.Auth("token_missing", "Authorization token is missing"))
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	var u user.User

	err := h.observe("users.get_by_id", func() error {
		var storeErr error
		u, storeErr = h.store.GetByID(cctx, id)
		return storeErr
	})

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// the token outlived the account
			RespondAppError(ctx, apperrors.NotFound("User not found"))
			return
		}

		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": u})
}

// UpdateProfile merge-patches the profile fields supplied in the body onto
// the account named in the path. The path id is not cross-checked against
// any token identity; the route has no auth gate in the current contract.
func (h *UsersHandler) UpdateProfile(ctx *gin.Context) {
	id := ctx.Param("id")

	var req user.UpdateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if req.Empty() {
		RespondAppError(ctx, apperrors.Validation(
			"empty_update",
			"At least one valid field is required for update",
		))
		return
	}

	if !req.ValidPhone() {
		RespondAppError(ctx, apperrors.Validation(
			"invalid_phone",
			"Phone number must be exactly 10 digits",
			"phonenumber",
		))
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	var updated user.User

	err := h.observe("users.update_partial", func() error {
		var storeErr error
		updated, storeErr = h.store.UpdatePartial(cctx, id, req)
		return storeErr
	})

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondAppError(ctx, apperrors.NotFound("User not found"))
			return
		}

		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": updated})
}
