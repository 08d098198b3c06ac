package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken    = errors.New("invalid token")
	ErrInvalidAudience = errors.New("invalid token audience")
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidSubject  = errors.New("invalid token subject")
)

// AccessClaims: токен, выданный auth-провайдером (HS256, sub = id пользователя).
type AccessClaims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

type JWTVerifier struct {
	secret    []byte
	audience  string
	clockSkew time.Duration
	now       func() time.Time
}

func NewJWTVerifier(secret, audience string, clockSkew time.Duration) *JWTVerifier {
	return &JWTVerifier{
		secret:    []byte(secret),
		audience:  audience,
		clockSkew: clockSkew,
		now:       time.Now,
	}
}

// ParseAndValidate проверяет подпись, аудиторию и время жизни с допуском clockSkew.
func (v *JWTVerifier) ParseAndValidate(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	parser := &jwt.Parser{SkipClaimsValidation: true}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if v.audience != "" && !claims.VerifyAudience(v.audience, true) {
		return nil, ErrInvalidAudience
	}

	now := v.now()
	if claims.ExpiresAt != 0 && now.After(time.Unix(claims.ExpiresAt, 0).Add(v.clockSkew)) {
		return nil, ErrTokenExpired
	}
	if claims.NotBefore != 0 && now.Before(time.Unix(claims.NotBefore, 0).Add(-v.clockSkew)) {
		return nil, ErrTokenExpired
	}
	if claims.Subject == "" {
		return nil, ErrInvalidSubject
	}
	return claims, nil
}

// Sign нужен тестам и локальной отладке.
func (v *JWTVerifier) Sign(claims AccessClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
