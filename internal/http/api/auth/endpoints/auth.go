package endpoints

import (
	"net/http"
	"regexp"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jummah-prayer/server/internal/db"
	"github.com/jummah-prayer/server/internal/http/api"
	"github.com/jummah-prayer/server/internal/http/api/auth/packets"
	"github.com/jummah-prayer/server/internal/http/middleware"
	"github.com/jummah-prayer/server/internal/model"
	"github.com/jummah-prayer/server/internal/redis"
)

// AuthPublicModule mounts public auth endpoints (/auth/register, /auth/login)
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/register", ctl.userRegister)
		c.PUBLIC_POST("/auth/login", ctl.userLogin)
	})
}

// AuthSessionModule mounts private session/profile endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/auth/me", ctl.getCurrentProfile)
		c.POST("/auth/logout", ctl.userLogout)
		c.POST("/auth/change_password", ctl.changePassword)
		c.GET("/auth/stats", ctl.getStats)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
}

func newAccountManager(secret string, store db.Store) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store}
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// passwordStrong enforces the registration policy: at least 8
// characters with a digit, an upper-case and a lower-case letter.
func passwordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	var digit, upper, lower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		}
	}
	return digit && upper && lower
}

func formatLastLogin(u *model.User) *string {
	if u.LastLogin == nil {
		return nil
	}
	s := u.LastLogin.Format(time.RFC3339)
	return &s
}

func (a *AccountManager) issueSession(ctx *gin.Context, u *model.User) (packets.SessionResponse, *api.APIError) {
	token, err := middleware.GenerateJWT(u.ID, a.jwtSecret)
	if err != nil {
		return packets.SessionResponse{}, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}
	if redis.Rdb != nil {
		redis.RegisterSession(ctx.Request.Context(), token, middleware.TokenTTL)
	}
	return packets.SessionResponse{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		ExpiresAt: time.Now().Add(middleware.TokenTTL).Format(time.RFC3339),
		LastLogin: formatLastLogin(u),
	}, nil
}

// POST /api/auth/register
func (a *AccountManager) userRegister(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if !emailPattern.MatchString(request.Email) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid email format"}
	}
	if !passwordStrong(request.Password) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "password must be at least 8 characters with a digit, an upper-case and a lower-case letter"}
	}

	if existing, _ := a.store.GetUserByEmail(request.Email); existing != nil {
		log.Warn().Str("email", request.Email).Msg("registration email already registered")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	userID, err := a.store.CreateUser(request.Email, hashed, request.Name)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	created, err := a.store.GetUserByID(userID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load user"}
	}
	return a.issueSession(ctx, created)
}

// POST /api/auth/login
func (a *AccountManager) userLogin(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	foundUser, err := a.store.GetUserByEmail(request.Email)
	if err != nil || foundUser == nil || !middleware.CheckPassword(foundUser.HashedPassword, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	if err := a.store.TouchLastLogin(foundUser.ID); err != nil {
		log.Error().Err(err).Int("user", foundUser.ID).Msg("could not record last login")
	}
	return a.issueSession(ctx, foundUser)
}

// POST /api/auth/logout
func (a *AccountManager) userLogout(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	token, ok := middleware.GetAuthToken(ctx)
	if ok && redis.Rdb != nil {
		redis.RevokeToken(ctx.Request.Context(), token, middleware.TokenTTL)
	}
	return gin.H{"success": true}, nil
}

// POST /api/auth/change_password
func (a *AccountManager) changePassword(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if !middleware.CheckPassword(user.HashedPassword, request.CurrentPassword) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "current password is incorrect"}
	}
	if !passwordStrong(request.NewPassword) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "password must be at least 8 characters with a digit, an upper-case and a lower-case letter"}
	}

	hashed, err := middleware.HashPassword(request.NewPassword)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}
	if err := a.store.UpdatePassword(user.ID, hashed); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update password"}
	}
	return gin.H{"success": true}, nil
}

// GET /api/auth/me
func (a *AccountManager) getCurrentProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	sessions := 0
	if redis.Rdb != nil {
		sessions = redis.ActiveSessions(ctx.Request.Context())
	}
	return packets.ProfileResponse{
		UserID:         user.ID,
		Email:          user.Email,
		Name:           user.Name,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		LastLogin:      formatLastLogin(user),
		ActiveSessions: sessions,
	}, nil
}

// GET /api/auth/stats
func (a *AccountManager) getStats(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	total, err := a.store.CountUsers()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not count users"}
	}
	sessions := 0
	if redis.Rdb != nil {
		sessions = redis.ActiveSessions(ctx.Request.Context())
	}
	return packets.StatsResponse{TotalUsers: total, ActiveSessions: sessions}, nil
}
