package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "dagbok:session:"

type SessionRepository interface {
	Create(ctx context.Context, s *models.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*models.Session, bool, error)
	Remove(ctx context.Context, id string) error
}

type sessionRepository struct {
	rdb redis.UniversalClient
}

func NewSessionRepository(rdb redis.UniversalClient) SessionRepository {
	return &sessionRepository{rdb: rdb}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (r *sessionRepository) Create(ctx context.Context, s *models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := r.rdb.Set(ctx, sessionKey(s.ID), payload, ttl).Err(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*models.Session, bool, error) {
	payload, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	var s models.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, true, nil
}

func (r *sessionRepository) Remove(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
