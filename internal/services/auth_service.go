package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"emporium/internal/domain"
	"emporium/internal/repos"
	"emporium/internal/validate"
)

var (
	ErrBadCreds = errors.New("invalid email or password")
	ErrBadToken = errors.New("invalid or expired token")
)

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) Register(name, email, password string) (*domain.User, error) {
	name, ok := validate.Name(name)
	if !ok {
		return nil, invalid("please provide a name")
	}
	email, ok = validate.Email(email)
	if !ok {
		return nil, invalid("please provide a valid email")
	}
	if !validate.Password(password) {
		return nil, invalid("password must be 8-72 characters with upper, lower and digit")
	}
	taken, err := s.Users.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, duplicate("user")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := domain.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(hash),
		Role:  domain.RoleUser,
	}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login checks credentials and issues a signed bearer token.
func (s *AuthService) Login(email, password string) (string, *domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return "", nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
		},
	})
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, u, nil
}

// Verify resolves a bearer token to its user. The user is re-read from the
// store so a deleted account or changed role takes effect immediately.
func (s *AuthService) Verify(token string) (*domain.User, error) {
	var cl claims
	parsed, err := jwt.ParseWithClaims(token, &cl, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrBadToken
	}
	u, err := s.Users.ByID(cl.Subject)
	if err != nil {
		return nil, ErrBadToken
	}
	return u, nil
}
