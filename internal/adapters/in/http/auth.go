package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

const identityKey = "identity"

// Identity is the authenticated caller. It is read from the token and passed
// explicitly into every command and query.
type Identity struct {
	UserID int64
	Role   Role
}

// Claims is the token payload.
type Claims struct {
	UserID int64 `json:"uid"`
	Role   Role  `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 tokens signed with a shared secret.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) (*Authenticator, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret)}, nil
}

// Issue signs a token for the caller; it backs local tooling and tests.
func (a *Authenticator) Issue(id Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Role:   id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parse(raw string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, err
	}
	if claims.UserID <= 0 {
		return Identity{}, fmt.Errorf("token carries no user id")
	}
	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}

// Require rejects requests without a valid token of the given role. Browsers
// cannot set headers on websocket upgrades, so the token may also come in the
// "token" query parameter.
func (a *Authenticator) Require(role Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				raw = c.QueryParam("token")
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "missing token"})
			}

			id, err := a.parse(raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: "invalid token"})
			}
			if id.Role != role {
				return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "forbidden"})
			}

			c.Set(identityKey, id)
			return next(c)
		}
	}
}

func bearer(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func identityOf(c echo.Context) Identity {
	id, _ := c.Get(identityKey).(Identity)
	return id
}
