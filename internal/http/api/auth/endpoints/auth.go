package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/db"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/api/auth/packets"
	"github.com/Nixie-Tech-LLC/signage-console/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

const defaultRole = "operator"

type AccountManager struct {
	jwtSecret string
	expiry    time.Duration
	store     db.Store
}

// AuthModule mounts /auth/login/ and /auth/register/ (public) and /auth/me/ (bearer).
func AuthModule(secret string, expiry time.Duration, store db.Store) api.Module {
	ctl := &AccountManager{jwtSecret: secret, expiry: expiry, store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.Public(http.MethodPost, "/auth/login/", ctl.login)
		c.Public(http.MethodPost, "/auth/register/", ctl.register)

		me := &api.Controller{Group: c.Group.Group("", middleware.JWTMiddleware(secret, store))}
		me.GET("/auth/me/", ctl.currentUser)
	})
}

func (a *AccountManager) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBind(&request); err != nil {
		return nil, api.BindError(err)
	}

	user, err := a.store.GetUserByUsername(ctx.Request.Context(), request.Username)
	if err != nil || !middleware.CheckPassword(user.HashedPassword, request.Password) {
		log.Info().Str("username", request.Username).Msg("[auth] rejected login")
		ctx.Header("WWW-Authenticate", "Bearer")
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "Incorrect username or password"}
	}
	if !user.IsActive {
		return nil, api.BadRequest("Inactive user")
	}

	token, err := middleware.GenerateJWT(user.Username, a.jwtSecret, a.expiry)
	if err != nil {
		log.Error().Err(err).Str("username", user.Username).Msg("[auth] could not sign token")
		return nil, api.Internal("could not issue token")
	}
	return packets.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (a *AccountManager) register(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.BindError(err)
	}

	user, err := CreateAccount(ctx.Request.Context(), a.store, model.User{
		Username: request.Username,
		Email:    request.Email,
		FullName: request.FullName,
		Role:     defaultRole,
		IsActive: true,
	}, request.Password)
	if errors.Is(err, db.ErrDuplicate) {
		return nil, api.BadRequest("Username or email already registered")
	}
	if err != nil {
		return nil, api.Internal("could not create user")
	}
	return api.Created(toUserResponse(user)), nil
}

func (a *AccountManager) currentUser(_ *gin.Context, user *model.User) (any, *api.APIError) {
	return toUserResponse(*user), nil
}

// CreateAccount hashes password and stores the user. The admin seed goes through here too.
func CreateAccount(ctx context.Context, store db.Store, u model.User, password string) (model.User, error) {
	hashed, err := middleware.HashPassword(password)
	if err != nil {
		log.Error().Err(err).Str("username", u.Username).Msg("[auth] could not hash password")
		return model.User{}, err
	}
	u.HashedPassword = hashed
	return store.CreateUser(ctx, u)
}

func toUserResponse(u model.User) packets.UserResponse {
	return packets.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}
