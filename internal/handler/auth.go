package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gkidjo/train-booking-api/internal/config"
	"github.com/gkidjo/train-booking-api/internal/model"
	"github.com/gkidjo/train-booking-api/internal/repository"
	"github.com/gkidjo/train-booking-api/internal/response"
	"github.com/gkidjo/train-booking-api/internal/utils"
)

// UserStore is the slice of the user repository the auth handlers need.
type UserStore interface {
	Create(ctx context.Context, firstname, lastname, email, passwordHash string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthHandler bundles dependencies for registration and login.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	if users == nil {
		panic("nil repository passed to NewAuthHandler")
	}
	return &AuthHandler{Cfg: cfg, Users: users}
}

type registerReq struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// profile is the sanitized user payload returned next to the token.
type profile struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// Register handles POST /api/user.  It creates the user and returns a
// signed credential immediately so the client can skip a login round
// trip.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" || req.Password == "" {
		return response.Error(c, response.InvalidData, "firstname, lastname, email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	uid, err := h.Users.Create(ctx, req.Firstname, req.Lastname, req.Email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return response.Error(c, response.EmailAlreadyExists, "Email already exist")
		}
		return response.Error(c, response.Exception, "Add user failed")
	}

	token, err := utils.NewToken(h.Cfg.JWTSecret, uid, h.Cfg.JWTTTLMin)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{
		"jwt": token,
		"data": profile{
			Firstname: req.Firstname,
			Lastname:  req.Lastname,
			Email:     req.Email,
		},
	})
}

// Login handles POST /api/auth/login.  Unknown e-mail and wrong
// password produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, response.InvalidData, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return response.Error(c, response.InvalidData, "email and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return response.Error(c, response.InvalidIdentifiers, "Email or password incorrect")
		}
		return response.Error(c, response.Exception, "")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return response.Error(c, response.InvalidIdentifiers, "Email or password incorrect")
	}

	token, err := utils.NewToken(h.Cfg.JWTSecret, u.ID, h.Cfg.JWTTTLMin)
	if err != nil {
		return response.Error(c, response.Exception, "")
	}
	return response.JSON(c, echo.Map{
		"jwt": token,
		"data": profile{
			Firstname: u.Firstname,
			Lastname:  u.Lastname,
			Email:     u.Email,
		},
	})
}
