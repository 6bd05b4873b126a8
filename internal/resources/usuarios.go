package resources

import (
	"context"

	"sgpj-client/internal/models"
	"sgpj-client/internal/validation"
)

type Usuarios struct {
	r Requester
}

// List is admin only on the backend.
func (c *Usuarios) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.r.Get(ctx, "/usuarios", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Usuarios) Profile(ctx context.Context) (models.User, error) {
	var u models.User
	err := c.r.Get(ctx, "/usuarios/profile", &u)
	return u, err
}

// Session is a requester that also owns the bearer token.
type Session interface {
	Requester
	SetToken(token string) error
	ClearToken() error
	IsAuthenticated() bool
}

type Auth struct {
	s Session
}

func NewAuth(s Session) *Auth {
	return &Auth{s: s}
}

// Login stores the returned access token on success.
func (a *Auth) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return models.AuthResponse{}, err
	}
	var res models.AuthResponse
	if err := a.s.Post(ctx, "/auth/login", req, &res); err != nil {
		return models.AuthResponse{}, err
	}
	if err := a.s.SetToken(res.AccessToken); err != nil {
		return models.AuthResponse{}, err
	}
	return res, nil
}

func (a *Auth) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return models.User{}, err
	}
	var u models.User
	err := a.s.Post(ctx, "/auth/register", req, &u)
	return u, err
}

func (a *Auth) Me(ctx context.Context) (models.User, error) {
	var u models.User
	err := a.s.Get(ctx, "/auth/me", &u)
	return u, err
}

// Refresh exchanges the current token and stores the new one.
func (a *Auth) Refresh(ctx context.Context) (models.TokenResponse, error) {
	var res models.TokenResponse
	if err := a.s.Post(ctx, "/auth/refresh", nil, &res); err != nil {
		return models.TokenResponse{}, err
	}
	if res.AccessToken != "" {
		if err := a.s.SetToken(res.AccessToken); err != nil {
			return models.TokenResponse{}, err
		}
	}
	return res, nil
}

func (a *Auth) Logout() error {
	return a.s.ClearToken()
}

func (a *Auth) IsAuthenticated() bool {
	return a.s.IsAuthenticated()
}
