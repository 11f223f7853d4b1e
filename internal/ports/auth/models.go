package auth

import "strings"

// Role del usuario autenticado.
type Role string

const (
	RoleUser     Role = "USER"
	RoleNGOAdmin Role = "NGO_ADMIN"
)

// Identity es el registro de sesión que devuelve el backend en login/registro.
// Token es opaco para nosotros (puede ser JWT o una referencia a cookie).
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Valid: una identidad sin id ni email no identifica a nadie.
func (i Identity) Valid() bool {
	return strings.TrimSpace(i.ID) != "" || strings.TrimSpace(i.Email) != ""
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// ProfileUpdate: Password vacío = no cambiar.
type ProfileUpdate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}
