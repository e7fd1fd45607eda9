package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const tokenIssuer = "partner-portal"

type JWTToken struct {
	signingKey []byte
	ttl        time.Duration
}

func NewJWTToken(config *Config) *JWTToken {
	return NewJWTTokenWithTTL(config.SigningKey, time.Duration(config.SessionTTLHours)*time.Hour)
}

func NewJWTTokenWithTTL(signingKey string, ttl time.Duration) *JWTToken {
	return &JWTToken{
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

type jwtClaim struct {
	jwt.StandardClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"user_role"`
}

type TokenObject struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"user_role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (j *JWTToken) CreateToken(user TokenObject) (string, TokenObject, error) {
	now := time.Now()
	user.TokenID = uuid.NewString()
	user.ExpiresAt = now.Add(j.ttl)

	claims := jwtClaim{
		StandardClaims: jwt.StandardClaims{
			Id:        user.TokenID,
			Subject:   user.UserID,
			Issuer:    tokenIssuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: user.ExpiresAt.Unix(),
		},
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(j.signingKey)
	if err != nil {
		return "", TokenObject{}, err
	}

	return tokenString, user, nil
}

func (j *JWTToken) VerifyToken(tokenString string) (TokenObject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtClaim{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid authentication token, format error")
		}
		return j.signingKey, nil
	})

	if err != nil {
		return TokenObject{}, fmt.Errorf("invalid authentication token, %v", err.Error())
	}

	claims, ok := token.Claims.(*jwtClaim)
	if !ok || !token.Valid {
		return TokenObject{}, fmt.Errorf("invalid authentication token, token is not OK")
	}

	if claims.Issuer != tokenIssuer {
		return TokenObject{}, fmt.Errorf("invalid authentication token, unknown issuer")
	}

	return TokenObject{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		TokenID:   claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}, nil
}
