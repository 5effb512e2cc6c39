package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/labtrack/lims/internal/app/appconfig"
	"github.com/labtrack/lims/internal/model"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/limserr"
	"github.com/labtrack/lims/internal/pkg/observability"
)

const revokedTokenKeyPrefix = "jwt:revoked:"

type tokenClaims struct {
	Username string `json:"username"`
	OrigIat  int64  `json:"origIat"`
	jwt.RegisteredClaims
}

// Auth issues and checks the HS256 session tokens. Revoked token ids are kept
// in the session store until the token would have expired anyway.
type Auth struct {
	UserService *User
	Store       fiber.Storage

	secret            []byte
	expiration        time.Duration
	refreshExpiration time.Duration
	now               func() time.Time
}

func NewAuth(userService *User, store fiber.Storage, conf *appconfig.Config) *Auth {
	return &Auth{
		UserService:       userService,
		Store:             store,
		secret:            []byte(conf.JWTSecret),
		expiration:        conf.JWTExpiration,
		refreshExpiration: conf.JWTRefreshExpiration,
		now:               time.Now,
	}
}

// TokenAuth exchanges credentials for a fresh token.
func (s *Auth) TokenAuth(ctx context.Context, username, password string) (*types.IssuedToken, *model.User, error) {
	user, err := s.UserService.Authenticate(ctx, username, password)
	if err != nil {
		observability.AuthAttempts.WithLabelValues("rejected").Inc()
		return nil, nil, err
	}
	observability.AuthAttempts.WithLabelValues("accepted").Inc()

	issued, err := s.issue(user.Username, s.now())
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("evt.name", "auth.token.issue").
		Str("username", user.Username).
		Str("jti", issued.Payload.ID).
		Msg("token issued")

	return issued, user, nil
}

func (s *Auth) issue(username string, origIat time.Time) (*types.IssuedToken, error) {
	now := s.now()
	exp := now.Add(s.expiration)
	id := ulid.Make().String()

	claims := tokenClaims{
		Username: username,
		OrigIat:  origIat.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "service: failed to sign token")
	}

	return &types.IssuedToken{
		Token:            signed,
		Payload:          payloadOf(&claims),
		RefreshExpiresIn: time.Unix(claims.OrigIat, 0).Add(s.refreshExpiration),
	}, nil
}

func payloadOf(claims *tokenClaims) *types.TokenPayload {
	p := &types.TokenPayload{
		Username: claims.Username,
		OrigIat:  time.Unix(claims.OrigIat, 0),
		ID:       claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.Exp = claims.ExpiresAt.Time
	}
	return p
}

func (s *Auth) parse(token string, opts ...jwt.ParserOption) (*tokenClaims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, limserr.ErrUnauthenticated.Msg("signature has expired")
		}
		return nil, limserr.ErrUnauthenticated.Msg("error decoding signature")
	}
	return claims, nil
}

func (s *Auth) revoked(jti string) (bool, error) {
	v, err := s.Store.Get(revokedTokenKeyPrefix + jti)
	if err != nil {
		return false, errors.Wrap(err, "service: failed to read revoked tokens")
	}
	return v != nil, nil
}

// Verify returns the payload of a valid, unrevoked token.
func (s *Auth) Verify(ctx context.Context, token string) (*types.TokenPayload, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.revoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, limserr.ErrUnauthenticated.Msg("token has been revoked")
	}
	return payloadOf(claims), nil
}

// Viewer resolves the active user a token was issued to.
func (s *Auth) Viewer(ctx context.Context, token string) (*model.User, error) {
	payload, err := s.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	user, err := s.UserService.GetUserByUsername(ctx, payload.Username)
	if err != nil {
		if limserr.IsNotFound(err) {
			return nil, limserr.ErrUnauthenticated.Msg("user of token no longer exists")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, limserr.ErrUnauthenticated.Msg("user is disabled")
	}
	return user, nil
}

// Refresh reissues a valid token with a new expiry. The original issue time
// carries over, so a session cannot be extended past the refresh window.
func (s *Auth) Refresh(ctx context.Context, token string) (*types.IssuedToken, error) {
	if _, err := s.Viewer(ctx, token); err != nil {
		return nil, err
	}
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	origIat := time.Unix(claims.OrigIat, 0)
	if !s.now().Before(origIat.Add(s.refreshExpiration)) {
		return nil, limserr.ErrUnauthenticated.Msg("refresh has expired")
	}

	issued, err := s.issue(claims.Username, origIat)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("evt.name", "auth.token.refresh").
		Str("username", claims.Username).
		Str("jti", issued.Payload.ID).
		Str("previousJti", claims.ID).
		Msg("token refreshed")
	return issued, nil
}

// Revoke denylists the token until its expiry. Undecodable and already expired
// tokens are ignored since they would be rejected anyway.
func (s *Auth) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.Store.Set(revokedTokenKeyPrefix+claims.ID, []byte(claims.Username), ttl); err != nil {
		return errors.Wrap(err, "service: failed to revoke token")
	}
	log.Info().
		Str("evt.name", "auth.token.revoke").
		Str("username", claims.Username).
		Str("jti", claims.ID).
		Msg("token revoked")
	return nil
}
