package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	RoleAdmin     = "Admin"
	RoleLibrarian = "Librarian"
	RoleUser      = "User"
)

type Config struct {
	Key string        `yaml:"key" json:"-" envconfig:"JWT_KEY" required:"true"`
	TTL time.Duration `yaml:"ttl" envconfig:"JWT_TTL"`
}

type Claims struct {
	UserName string   `json:"unique_name"`
	Email    string   `json:"email"`
	Roles    []string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, got := range c.Roles {
			if got == want {
				return true
			}
		}
	}
	return false
}

var ErrInvalidToken = errors.New("invalid token")

type TokenManager struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenManager(cfg Config) *TokenManager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{
		key: []byte(cfg.Key),
		ttl: ttl,
		now: time.Now,
	}
}

// Issue signs an HS256 token whose subject (nameid) is the user id.
func (m *TokenManager) Issue(userID, userName, email string, roles []string) (string, time.Time, error) {
	expiresAt := m.now().Add(m.ttl)
	claims := &Claims{
		UserName: userName,
		Email:    email,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(m.now()),
			NotBefore: jwt.NewNumericDate(m.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return token, expiresAt, nil
}

func (m *TokenManager) Parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.key, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type ctxKey struct{}

func SetAuthContext(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, claims)
}

func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	return claims, ok
}

// UserID returns the authenticated subject or an empty string.
func UserID(ctx context.Context) string {
	if claims, ok := FromContext(ctx); ok {
		return claims.Subject
	}
	return ""
}
