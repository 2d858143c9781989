package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/repository"
	"github.com/maheshrc27/dagbok/internal/transfer"
)

var (
	ErrOAuthExchange   = errors.New("oauth code exchange failed")
	ErrOAuthProfile    = errors.New("oauth profile unavailable")
	ErrMissingEmail    = errors.New("oauth profile has no email")
	ErrUnverifiedEmail = errors.New("oauth email is not verified")
)

type AuthService interface {
	Providers() []transfer.ProviderInfo
	AuthCodeURL(provider, state string) (string, error)
	// SignIn completes the authorization code flow and opens a session,
	// returning the session cookie value.
	SignIn(ctx context.Context, provider, code string) (string, error)
}

type authService struct {
	cfg       config.Config
	u         repository.UserRepository
	sessions  SessionService
	providers []*oauthProvider
}

func NewAuthService(cfg config.Config, u repository.UserRepository, sessions SessionService) AuthService {
	return &authService{
		cfg:       cfg,
		u:         u,
		sessions:  sessions,
		providers: configuredProviders(cfg),
	}
}

func (s *authService) provider(id string) (*oauthProvider, error) {
	for _, p := range s.providers {
		if p.id == id {
			return p, nil
		}
	}
	return nil, ErrUnknownProvider
}

func (s *authService) Providers() []transfer.ProviderInfo {
	out := make([]transfer.ProviderInfo, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, transfer.ProviderInfo{
			ID:          p.id,
			Name:        p.name,
			Type:        "oauth",
			SigninURL:   s.cfg.BaseURL + "/api/auth/signin/" + p.id,
			CallbackURL: p.oauth.RedirectURL,
		})
	}
	return out
}

func (s *authService) AuthCodeURL(provider, state string) (string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", err
	}
	return p.oauth.AuthCodeURL(state, p.authOptions...), nil
}

func (s *authService) SignIn(ctx context.Context, provider, code string) (string, error) {
	p, err := s.provider(provider)
	if err != nil {
		return "", err
	}

	if code == "" {
		err = errors.New("authorization code is empty")
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", ErrOAuthExchange, err)
	}

	profile, err := p.profile(ctx, p.oauth.Client(ctx, token))
	if errors.Is(err, ErrUnverifiedEmail) {
		slog.Info("sign-in rejected, email not verified", "provider", provider)
		return "", err
	}
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("%w: %v", ErrOAuthProfile, err)
	}
	profile.AccessToken = token.AccessToken

	return s.openSession(ctx, profile)
}

func (s *authService) openSession(ctx context.Context, profile *transfer.OAuthProfile) (string, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		slog.Info("sign-in rejected, profile has no email", "provider", profile.Provider)
		return "", ErrMissingEmail
	}

	user := &models.User{
		Email:      email,
		Name:       profile.Name,
		Image:      profile.Image,
		Provider:   profile.Provider,
		ProviderID: profile.ProviderID,
	}

	id, err := s.u.Upsert(ctx, user)
	if err != nil {
		return "", fmt.Errorf("upsert user: %w", err)
	}
	user.ID = id

	token, _, err := s.sessions.Create(ctx, user, profile.AccessToken)
	if err != nil {
		return "", err
	}

	slog.Info("user signed in", "user_id", id, "provider", profile.Provider)
	return token, nil
}
