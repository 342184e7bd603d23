package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotLoggedIn = errors.New("not logged in")

type LoginChecker struct {
	redisClient *redis.Client
}

func NewLoginChecker(redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		redisClient: redisClient,
	}
}

// GetLoggedUserID resolves a session token to the owning user ID.
// Returns ErrNotLoggedIn for unknown or expired tokens.
func (c *LoginChecker) GetLoggedUserID(ctx context.Context, token string) (uuid.UUID, error) {
	sessionKey := sessionKeyPrefix + token
	cmd := c.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrNotLoggedIn
		}
		return uuid.Nil, err
	}

	userID, err := uuid.Parse(cmd.Val())
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse session user id: %w", err)
	}
	return userID, nil
}

func (c *LoginChecker) IsLogged(ctx context.Context, token string) (bool, error) {
	_, err := c.GetLoggedUserID(ctx, token)
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
