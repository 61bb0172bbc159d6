package botjwt

import (
	"context"
	"errors"
	"strings"

	"pixel-pet/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token invalid")
)

// claims es el payload que firma la capa de comandos del bot (HS256,
// clave compartida): el user id de Discord más el username de cortesía.
type claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier verificando localmente el token
// que emite el gateway del bot. Sin red: alcanza con la clave compartida.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		// Solo HS256: cualquier otro alg es un token ajeno.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, ErrTokenInvalid
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	userID := strings.TrimSpace(c.UserID)
	if userID == "" {
		return auth.Claims{}, errors.New("token missing user id")
	}

	return auth.Claims{
		UserID:   userID,
		Username: strings.TrimSpace(c.Username),
	}, nil
}
