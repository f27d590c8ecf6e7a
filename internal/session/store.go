// Package session implements the request-to-user binding: opaque-to-the-client
// tokens carried in a cookie, backed by Redis so they can be revoked.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/donggunkwak/Brainwave/internal/middleware"
	"github.com/donggunkwak/Brainwave/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	issuer   = "brainwave-api"
	audience = "brainwave-client"

	sessionKeyPrefix  = "session:%s"
	userSessionsKeyFn = "user_sessions:%d"
)

// Store issues, resolves and revokes sessions. The token handed to clients is
// an HS256 JWT whose jti keys the Redis record; the signature stops forgery
// and the Redis record makes revocation effective immediately.
type Store struct {
	redis  *redis.Client
	secret []byte
	ttl    time.Duration
}

// NewStore returns a session store backed by the given Redis client.
func NewStore(rdb *redis.Client, secret string, ttl time.Duration) *Store {
	return &Store{redis: rdb, secret: []byte(secret), ttl: ttl}
}

func sessionKey(jti string) string {
	return fmt.Sprintf(sessionKeyPrefix, jti)
}

func userSessionsKey(userID uint) string {
	return fmt.Sprintf(userSessionsKeyFn, userID)
}

// Issue creates a new session bound to userID and returns the signed token.
func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	if s.redis == nil {
		return "", models.NewInternalError(fmt.Errorf("session store unavailable"))
	}

	jti := uuid.NewString()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"aud": audience,
		"exp": now.Add(s.ttl).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"jti": jti,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	pipe := s.redis.TxPipeline()
	pipe.Set(ctx, sessionKey(jti), strconv.FormatUint(uint64(userID), 10), s.ttl)
	pipe.SAdd(ctx, userSessionsKey(userID), jti)
	pipe.Expire(ctx, userSessionsKey(userID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", models.NewInternalError(err)
	}

	middleware.SessionEvents.WithLabelValues("issued").Inc()
	return token, nil
}

// Resolve returns the user id bound to the token, or an unauthenticated error
// if the token is missing, malformed, expired or revoked.
func (s *Store) Resolve(ctx context.Context, token string) (uint, error) {
	if token == "" {
		return 0, models.NewUnauthenticatedError("Authentication required")
	}
	if s.redis == nil {
		return 0, models.NewInternalError(fmt.Errorf("session store unavailable"))
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithAudience(audience))
	if err != nil || !parsed.Valid {
		return 0, models.NewUnauthenticatedError("Invalid or expired session")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthenticatedError("Invalid session claims")
	}
	jti, _ := claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	if jti == "" || sub == "" {
		return 0, models.NewUnauthenticatedError("Invalid session claims")
	}

	stored, err := s.redis.Get(ctx, sessionKey(jti)).Result()
	if err == redis.Nil {
		return 0, models.NewUnauthenticatedError("Session has been revoked")
	}
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	if stored != sub {
		return 0, models.NewUnauthenticatedError("Session does not match user")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthenticatedError("Invalid session subject")
	}
	return uint(userID), nil
}

// Destroy revokes the single session identified by the token. Revoking an
// already-dead session is not an error; logout is idempotent.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if s.redis == nil {
		return models.NewInternalError(fmt.Errorf("session store unavailable"))
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	jti, _ := claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	if jti == "" {
		return nil
	}

	pipe := s.redis.TxPipeline()
	pipe.Del(ctx, sessionKey(jti))
	if uid, parseErr := strconv.ParseUint(sub, 10, 32); parseErr == nil {
		pipe.SRem(ctx, userSessionsKey(uint(uid)), jti)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return models.NewInternalError(err)
	}

	middleware.SessionEvents.WithLabelValues("destroyed").Inc()
	return nil
}

// DestroyAll revokes every live session of the user. Used on account deletion
// so stale cookies stop working immediately.
func (s *Store) DestroyAll(ctx context.Context, userID uint) error {
	if s.redis == nil {
		return models.NewInternalError(fmt.Errorf("session store unavailable"))
	}

	jtis, err := s.redis.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return models.NewInternalError(err)
	}

	pipe := s.redis.TxPipeline()
	for _, jti := range jtis {
		pipe.Del(ctx, sessionKey(jti))
	}
	pipe.Del(ctx, userSessionsKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return models.NewInternalError(err)
	}

	middleware.SessionEvents.WithLabelValues("revoked").Add(float64(len(jtis)))
	return nil
}
