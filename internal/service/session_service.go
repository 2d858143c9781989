package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	config "github.com/maheshrc27/dagbok/configs"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/repository"
	"github.com/maheshrc27/dagbok/pkg/utils"
)

const sessionIDLength = 32

type SessionService interface {
	// Create stores a new session for user and returns the signed cookie value.
	Create(ctx context.Context, user *models.User, accessToken string) (string, *models.Session, error)
	// Resolve validates a cookie value and loads its session. Unknown, expired
	// or signed-out sessions yield ErrUnauthorized.
	Resolve(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
	AccessToken(s *models.Session) (string, error)
	TTL() time.Duration
}

type sessionService struct {
	cfg config.Config
	sr  repository.SessionRepository
	key []byte
}

func NewSessionService(cfg config.Config, sr repository.SessionRepository) SessionService {
	return &sessionService{
		cfg: cfg,
		sr:  sr,
		key: utils.DeriveKey(cfg.SecretKey),
	}
}

func (s *sessionService) TTL() time.Duration {
	return s.cfg.SessionTTL
}

func (s *sessionService) Create(ctx context.Context, user *models.User, accessToken string) (string, *models.Session, error) {
	sid, err := utils.RandomToken(sessionIDLength)
	if err != nil {
		return "", nil, fmt.Errorf("session id: %w", err)
	}

	sealed := ""
	if accessToken != "" {
		sealed, err = utils.Encrypt([]byte(accessToken), s.key)
		if err != nil {
			return "", nil, fmt.Errorf("seal access token: %w", err)
		}
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:          sid,
		UserID:      user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Image:       user.Image,
		Provider:    user.Provider,
		AccessToken: sealed,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.cfg.SessionTTL),
	}

	if err := s.sr.Create(ctx, session, s.cfg.SessionTTL); err != nil {
		return "", nil, fmt.Errorf("store session: %w", err)
	}

	token, err := utils.GenerateToken(s.cfg.SecretKey, sid, user.ID, s.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}

	return token, session, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		slog.Debug("session token rejected", "error", err)
		return nil, ErrUnauthorized
	}

	session, exists, err := s.sr.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !exists || session.UserID != claims.UserID {
		return nil, ErrUnauthorized
	}
	return session, nil
}

// Destroy removes the session behind token. Invalid tokens are ignored.
func (s *sessionService) Destroy(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(s.cfg.SecretKey, token)
	if err != nil {
		return nil
	}
	if err := s.sr.Remove(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (s *sessionService) AccessToken(session *models.Session) (string, error) {
	if session == nil || session.AccessToken == "" {
		return "", nil
	}
	return utils.Decrypt(session.AccessToken, s.key)
}
