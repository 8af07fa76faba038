package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Store persists sessions keyed by phone number. Get returns nil (no error)
// when the phone has never been seen.
type Store interface {
	Get(ctx context.Context, phone string) (*Session, error)
	Put(ctx context.Context, s *Session) error
	List(ctx context.Context) ([]*Session, error)
}

// RedisStore keeps one JSON blob per phone. Sessions are written without a
// TTL: the qualification funnel has no expiry contract, so they accumulate
// until purged by an operator.
type RedisStore struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, tracer trace.Tracer) *RedisStore {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if tracer == nil {
		tracer = otel.Tracer("smeflow.internal.session")
	}
	return &RedisStore{
		redis:  client,
		tracer: tracer,
	}
}

func sessionKey(phone string) string {
	return fmt.Sprintf("session:%s", phone)
}

// Get loads the session for a phone, or nil when none exists.
func (s *RedisStore) Get(ctx context.Context, phone string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.load")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(phone)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to load %s: %w", phone, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode %s: %w", phone, err)
	}
	return &sess, nil
}

// Put writes the full session blob. Last writer wins; per-key writes keep
// independent phones from clobbering each other.
func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal %s: %w", sess.Phone, err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.Phone), data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist %s: %w", sess.Phone, err)
	}
	return nil
}

// List returns every stored session, in no particular order.
func (s *RedisStore) List(ctx context.Context) ([]*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.list")
	defer span.End()

	var sessions []*Session
	iter := s.redis.Scan(ctx, 0, sessionKey("*"), 0).Iterator()
	for iter.Next(ctx) {
		data, err := s.redis.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			span.RecordError(err)
			return nil, fmt.Errorf("session: failed to load %s: %w", iter.Val(), err)
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("session: failed to decode %s: %w", iter.Val(), err)
		}
		sessions = append(sessions, &sess)
	}
	if err := iter.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: scan failed: %w", err)
	}
	return sessions, nil
}

var _ Store = (*RedisStore)(nil)
