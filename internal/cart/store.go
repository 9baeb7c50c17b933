package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgredis "github.com/mercatus-labs/mercatus-backend/pkg/redis"
)

// Store persists one cart per (store, cashier) pair.
type Store interface {
	Load(ctx context.Context, storeID, cashierID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, storeID, cashierID uuid.UUID, cart *Cart) error
	Delete(ctx context.Context, storeID, cashierID uuid.UUID) error
}

type redisCommands interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(storeID, cashierID string) string
}

// RedisStore keeps carts as JSON values with a TTL so an abandoned register
// session eventually evaporates.
type RedisStore struct {
	client redisCommands
	ttl    time.Duration
}

// NewRedisStore builds the redis-backed cart store.
func NewRedisStore(client redisCommands, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Load returns the stored cart, or a fresh empty cart when none exists.
func (s *RedisStore) Load(ctx context.Context, storeID, cashierID uuid.UUID) (*Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(storeID.String(), cashierID.String()))
	if err != nil {
		if pkgredis.IsNil(err) {
			return NewCart(), nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Lines == nil {
		cart.Lines = []Line{}
	}
	if cart.PaymentMethod == "" {
		cart.PaymentMethod = NewCart().PaymentMethod
	}
	return &cart, nil
}

// Save writes the cart back, refreshing the TTL.
func (s *RedisStore) Save(ctx context.Context, storeID, cashierID uuid.UUID, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	key := s.client.CartKey(storeID.String(), cashierID.String())
	if err := s.client.Set(ctx, key, string(payload), s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Delete drops the stored cart.
func (s *RedisStore) Delete(ctx context.Context, storeID, cashierID uuid.UUID) error {
	key := s.client.CartKey(storeID.String(), cashierID.String())
	if err := s.client.Del(ctx, key); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

// MemoryStore is an in-process cart store used by tests and the sqlite dev
// profile.
type MemoryStore struct {
	mtx   sync.RWMutex
	carts map[string]*Cart
}

// NewMemoryStore builds an empty in-process cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]*Cart{}}
}

func memoryKey(storeID, cashierID uuid.UUID) string {
	return storeID.String() + "|" + cashierID.String()
}

// Load returns a copy of the stored cart, or a fresh cart when absent.
func (s *MemoryStore) Load(ctx context.Context, storeID, cashierID uuid.UUID) (*Cart, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	stored, ok := s.carts[memoryKey(storeID, cashierID)]
	if !ok {
		return NewCart(), nil
	}
	clone := *stored
	clone.Lines = append([]Line{}, stored.Lines...)
	return &clone, nil
}

// Save stores a copy of the cart.
func (s *MemoryStore) Save(ctx context.Context, storeID, cashierID uuid.UUID, cart *Cart) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	cart.UpdatedAt = time.Now().UTC()
	clone := *cart
	clone.Lines = append([]Line{}, cart.Lines...)
	s.carts[memoryKey(storeID, cashierID)] = &clone
	return nil
}

// Delete drops the stored cart.
func (s *MemoryStore) Delete(ctx context.Context, storeID, cashierID uuid.UUID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	delete(s.carts, memoryKey(storeID, cashierID))
	return nil
}
