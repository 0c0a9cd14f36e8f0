package session

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/LekaAli/fes/pkg/redis"
)

var ErrNoSession = errors.New("no active session")

const keyPrefix = "session:"

// Store keeps authenticated sessions in redis: an opaque token handed to the
// browser maps to the user id, expiring after the configured TTL.
type Store struct {
	redis redis.RedisAdapter
	ttl   time.Duration
}

func NewStore(adapter redis.RedisAdapter, ttl time.Duration) *Store {
	return &Store{
		redis: adapter,
		ttl:   ttl,
	}
}

func (s *Store) Create(userID int64) (string, error) {
	token := uuid.NewString()
	err := s.redis.Set(keyPrefix+token, []byte(strconv.FormatInt(userID, 10)), s.ttl)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *Store) Get(token string) (int64, error) {
	if token == "" {
		return 0, ErrNoSession
	}

	raw, err := s.redis.Get(keyPrefix + token)
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return 0, ErrNoSession
		}
		return 0, err
	}

	userID, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, ErrNoSession
	}

	return userID, nil
}

func (s *Store) Destroy(token string) error {
	if token == "" {
		return nil
	}
	return s.redis.Del(keyPrefix + token)
}
