package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/dwikikusuma/storefront/internal/identity/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidToken = errors.New("invalid token")
)

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Service signs users in by role alone; there are no credentials.
type Service struct {
	cfg Config
	now func() time.Time
}

func NewService(cfg Config, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Service{cfg: cfg, now: now}
}

type claims struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *Service) SignIn(role domain.Role) (domain.User, string, error) {
	var u domain.User
	switch role {
	case domain.RoleAdmin:
		u = domain.MockAdmin
	case domain.RoleCustomer:
		u = domain.MockCustomer
	default:
		return domain.User{}, "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	now := s.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	})
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return domain.User{}, "", fmt.Errorf("sign token: %w", err)
	}
	return u, signed, nil
}

func (s *Service) Verify(raw string) (domain.User, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithLeeway(30*time.Second),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !c.Role.Valid() {
		return domain.User{}, fmt.Errorf("%w: role %q", ErrInvalidToken, c.Role)
	}
	return domain.User{ID: c.Subject, Name: c.Name, Email: c.Email, Role: c.Role}, nil
}
