package callsession

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

const (
	sessionKeyPrefix = "call:session:"
	sessionTTL       = 24 * time.Hour
	lockStripes      = 64
)

// RedisStore persists call sessions in Redis so state survives process
// restarts and is shared across instances. Read-modify-write cycles for the
// same call id are serialized through striped in-process locks; calls to
// different ids proceed concurrently.
type RedisStore struct {
	rdb    *redis.Client
	locks  [lockStripes]sync.Mutex
	logger *logging.Logger
	now    func() time.Time
}

// NewRedisStore creates a session store backed by Redis.
func NewRedisStore(rdb *redis.Client, logger *logging.Logger) *RedisStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		rdb:    rdb,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func sessionKey(callID string) string {
	return sessionKeyPrefix + callID
}

func (s *RedisStore) lockFor(callID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(callID))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *RedisStore) load(ctx context.Context, callID string) (*Session, error) {
	data, err := s.rdb.Get(ctx, sessionKey(callID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("callsession: get: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("callsession: unmarshal: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("callsession: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("callsession: set: %w", err)
	}
	return nil
}

// mutate runs fn under the call's lock against the loaded-or-new session and
// persists the result.
func (s *RedisStore) mutate(ctx context.Context, callID string, fn func(sess *Session)) (*Session, error) {
	if callID == "" {
		return nil, ErrMissingCallID
	}
	lock := s.lockFor(callID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.load(ctx, callID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		sess = newSession(callID, s.now())
	}
	fn(sess)
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// GetOrCreate implements Store.
func (s *RedisStore) GetOrCreate(ctx context.Context, callID string) (*Session, error) {
	return s.mutate(ctx, callID, func(sess *Session) {})
}

// AppendContext implements Store.
func (s *RedisStore) AppendContext(ctx context.Context, callID string, kv map[string]string) (*Session, error) {
	return s.mutate(ctx, callID, func(sess *Session) {
		sess.mergeContext(kv)
		sess.LastActivityAt = s.now()
	})
}

// RecordTransfer implements Store.
func (s *RedisStore) RecordTransfer(ctx context.Context, callID string, from, to agents.Agent, reason string) (*Session, error) {
	return s.mutate(ctx, callID, func(sess *Session) {
		if sess.Status == StatusCompleted {
			s.logger.Warn("transfer recorded on completed session",
				"call_id", callID, "from", from, "to", to)
		}
		now := s.now()
		sess.TransferHistory = append(sess.TransferHistory, Transfer{
			From:      from,
			To:        to,
			Reason:    reason,
			Timestamp: now,
		})
		sess.CurrentAgent = to
		sess.LastActivityAt = now
	})
}

// Complete implements Store.
func (s *RedisStore) Complete(ctx context.Context, callID, outcome, summary string) (*Session, error) {
	return s.mutate(ctx, callID, func(sess *Session) {
		now := s.now()
		sess.Status = StatusCompleted
		sess.Outcome = outcome
		sess.Summary = summary
		sess.CompletedAt = now
		sess.LastActivityAt = now
	})
}
