package auth

import "context"

// Gateway habla con los endpoints remotos de auth y perfil.
// Los errores de transporte se devuelven tal cual; el caller decide el mensaje visible.
type Gateway interface {
	Login(ctx context.Context, in Credentials) (Identity, error)
	Register(ctx context.Context, in Registration) (Identity, error)

	GetProfile(ctx context.Context, token string) (Identity, error)
	UpdateProfile(ctx context.Context, token string, in ProfileUpdate) (Identity, error)
	DeleteProfile(ctx context.Context, token string) error
}
