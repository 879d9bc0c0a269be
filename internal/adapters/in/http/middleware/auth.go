// Package middleware provides the authentication layer of the HTTP adapter.
// Tokens are HMAC-signed JWTs carrying the user identifier and role; an
// optional redis revocation list lets sessions be killed before expiry.
package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"transit/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// actorContextKey is where the middleware stores the authenticated actor.
const actorContextKey = "actor"

// Auth validates bearer tokens and resolves them into a kernel.Actor. When a
// redis client is provided, tokens whose ID appears on the revocation list
// are rejected even if still valid.
type Auth struct {
	secret []byte
	rdb    *redis.Client
}

// NewAuth creates the authentication middleware. rdb may be nil; revocation
// checks are then skipped.
func NewAuth(secret []byte, rdb *redis.Client) *Auth {
	return &Auth{secret: secret, rdb: rdb}
}

// Middleware returns the echo middleware function.
func (a *Auth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := a.authenticate(c)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorFrom retrieves the authenticated actor stored by the middleware.
func ActorFrom(c echo.Context) (kernel.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	return actor, ok
}

func (a *Auth) authenticate(c echo.Context) (kernel.Actor, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return kernel.Actor{}, errors.New("authorization token not provided")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return kernel.Actor{}, errors.New("invalid authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return kernel.Actor{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return kernel.Actor{}, errors.New("invalid token claims")
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return kernel.Actor{}, errors.New("token subject missing")
	}

	userID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return kernel.Actor{}, errors.New("token subject is not a valid user ID")
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return kernel.Actor{}, errors.New("token role missing")
	}

	role, err := kernel.RoleFromString(roleClaim)
	if err != nil {
		return kernel.Actor{}, errors.New("token role unknown")
	}

	if err = a.checkRevoked(c, claims); err != nil {
		return kernel.Actor{}, err
	}

	return kernel.NewActor(userID, role)
}

// checkRevoked rejects tokens whose jti is on the revocation list. Redis
// being down fails open: revocation is an extra guard, not the primary one.
func (a *Auth) checkRevoked(c echo.Context, claims jwt.MapClaims) error {
	if a.rdb == nil {
		return nil
	}

	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return nil
	}

	_, err := a.rdb.Get(c.Request().Context(), "revoked:"+jti).Result()
	if err == nil {
		return errors.New("token has been revoked")
	}
	if !errors.Is(err, redis.Nil) {
		slog.Error("revocation check failed", "error", err)
	}

	return nil
}
