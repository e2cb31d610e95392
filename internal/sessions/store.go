package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"oesters_backend/internal/models"
	"oesters_backend/pkg/utils"
)

// Store is the durable key-value snapshot store backing a browsing session:
// the cart, written through on every mutation, and the order backups
// mirrored at submission time. Corrupt snapshots are never fatal; they are
// logged and treated as empty.
type Store interface {
	LoadCart(sessionID string) (*models.Cart, error)
	SaveCart(sessionID string, cart *models.Cart) error
	DeleteCart(sessionID string) error
	AppendOrderBackup(sessionID string, backup models.OrderBackup) error
	LoadOrderBackups(sessionID string) ([]models.OrderBackup, error)
	Close() error
}

type redisStore struct {
	rdb     *redis.Client
	cartTTL time.Duration
}

// NewStore connects to Redis and returns a session store. Carts expire
// after cartTTL of inactivity; order backups are kept without expiry.
func NewStore(redisURL string, cartTTL time.Duration) (Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{rdb: rdb, cartTTL: cartTTL}, nil
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

func orderBackupKey(sessionID string) string {
	return "orders:" + sessionID
}

func (s *redisStore) LoadCart(sessionID string) (*models.Cart, error) {
	ctx := context.Background()
	val, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return &models.Cart{}, nil
		}
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(val), &cart); err != nil {
		utils.LogWarn(err, "Unparseable cart snapshot, falling back to empty cart")
		return &models.Cart{}, nil
	}
	return &cart, nil
}

func (s *redisStore) SaveCart(sessionID string, cart *models.Cart) error {
	ctx := context.Background()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	return s.rdb.Set(ctx, cartKey(sessionID), data, s.cartTTL).Err()
}

func (s *redisStore) DeleteCart(sessionID string) error {
	ctx := context.Background()
	return s.rdb.Del(ctx, cartKey(sessionID)).Err()
}

func (s *redisStore) AppendOrderBackup(sessionID string, backup models.OrderBackup) error {
	backups, err := s.LoadOrderBackups(sessionID)
	if err != nil {
		return err
	}
	backups = append(backups, backup)

	data, err := json.Marshal(backups)
	if err != nil {
		return fmt.Errorf("failed to marshal order backups: %w", err)
	}
	ctx := context.Background()
	return s.rdb.Set(ctx, orderBackupKey(sessionID), data, 0).Err()
}

func (s *redisStore) LoadOrderBackups(sessionID string) ([]models.OrderBackup, error) {
	ctx := context.Background()
	val, err := s.rdb.Get(ctx, orderBackupKey(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return []models.OrderBackup{}, nil
		}
		return nil, fmt.Errorf("failed to load order backups: %w", err)
	}

	var backups []models.OrderBackup
	if err := json.Unmarshal([]byte(val), &backups); err != nil {
		utils.LogWarn(err, "Unparseable order backup snapshot, starting a fresh list")
		return []models.OrderBackup{}, nil
	}
	return backups, nil
}

func (s *redisStore) Close() error {
	return s.rdb.Close()
}
