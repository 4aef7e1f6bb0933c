package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Registry guarda no Redis o marcador de sessão corrente de cada usuário.
// Login novo sobrescreve o marcador: a sessão antiga continua com JWT válido
// mas deixa de ser a corrente, e perde o direito de mexer na disponibilidade.
type Registry struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRegistry(rdb *redis.Client, ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Registry{rdb: rdb, ttl: ttl}
}

func key(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

// Start registra sessionID como a sessão corrente do usuário.
func (r *Registry) Start(ctx context.Context, userID uint, sessionID string) error {
	return r.rdb.Set(ctx, key(userID), sessionID, r.ttl).Err()
}

// IsCurrent diz se sessionID ainda é a sessão corrente.
func (r *Registry) IsCurrent(ctx context.Context, userID uint, sessionID string) (bool, error) {
	current, err := r.rdb.Get(ctx, key(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return current == sessionID, nil
}

// End derruba a sessão corrente (logout).
func (r *Registry) End(ctx context.Context, userID uint) error {
	return r.rdb.Del(ctx, key(userID)).Err()
}
