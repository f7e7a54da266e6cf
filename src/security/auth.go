package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// ErrInvalidPassword is returned when the shared dashboard password does not
// match. The caller only ever learns match / no match.
var ErrInvalidPassword = errors.New("invalid dashboard password")

// AuthService guards the dashboard behind a single shared static password
// and issues signed session tokens once it matched. The plaintext password
// is hashed at startup and discarded.
type AuthService struct {
	jwtSecret    string
	passwordHash []byte
	sessionTTL   time.Duration
}

func NewAuthService(jwtSecret, dashboardPassword string, sessionTTL time.Duration) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dashboardPassword), bcryptCost)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		jwtSecret:    jwtSecret,
		passwordHash: hash,
		sessionTTL:   sessionTTL,
	}, nil
}

// CheckPassword compares the submitted password against the configured one.
func (a *AuthService) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// GenerateToken signs a session token carrying the session ID. The token
// expiry matches the session TTL, so token and cached Dataset die together.
func (a *AuthService) GenerateToken(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"exp": time.Now().Add(a.sessionTTL).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.jwtSecret))
}

// ValidateToken returns the session ID embedded in a valid token.
func (a *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.jwtSecret), nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		sub, ok := claims["sub"].(string)
		if !ok {
			return "", errors.New("invalid token: 'sub' claim missing or not a string")
		}
		return sub, nil
	}

	return "", errors.New("invalid token")
}
