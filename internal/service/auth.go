package service

import (
	"errors"
	"fmt"
	"time"

	"chocolate-storefront/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	// Login exchanges the admin password for a signed token.
	Login(password string) (string, error)
	VerifyToken(token string) error
}

type authServiceImpl struct {
	cfg config.Admin
}

func NewAuthService(cfg config.Admin) AuthService {
	return &authServiceImpl{
		cfg: cfg,
	}
}

func (s *authServiceImpl) Login(password string) (string, error) {
	if s.cfg.Password == "" || password != s.cfg.Password {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": "admin",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

func (s *authServiceImpl) VerifyToken(tokenString string) error {
	// The static admin token is accepted alongside JWTs for scripted
	// clients.
	if s.cfg.Token != "" && tokenString == s.cfg.Token {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return ErrInvalidCredentials
	}
	if !token.Valid {
		return ErrInvalidCredentials
	}

	return nil
}
