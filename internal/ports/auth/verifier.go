package auth

import "context"

// AuthVerifier verifica un token de sesión del bot y devuelve claims o
// error. Implementaciones: botjwt (local HS256) y gateway (remota).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
