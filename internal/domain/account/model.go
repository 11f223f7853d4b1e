package account

import (
	"strings"

	"ngo-animal-rescue/internal/platform/validation"
)

const minPasswordLen = 6

// Mensajes visibles cuando el backend no manda uno propio.
const (
	MsgInvalidCredentials = "Invalid credentials. Please try again."
	MsgRegistrationFailed = "Registration failed. Please try again."
	MsgProfileFailed      = "Failed to update profile"
	MsgDeleteFailed       = "Failed to delete account"
	MsgFetchFailed        = "Failed to fetch user profile"
	MsgTooManyRequests    = "Too many requests. Please wait a moment before trying again."
)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() error {
	errs := validation.Errors{}
	errs.Required("email", f.Email, "Email is required")
	errs.Required("password", f.Password, "Password is required")
	return errs.Err()
}

type SignupForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f SignupForm) Validate() error {
	errs := validation.Errors{}
	errs.Required("name", f.Name, "Name is required")
	errs.Email("email", f.Email, "Email is required", "Email is invalid")

	if errs.Required("password", f.Password, "Password is required") {
		errs.Check(len(f.Password) >= minPasswordLen, "password", "Password must be at least 6 characters")
	}
	if errs.Required("confirmPassword", f.ConfirmPassword, "Please confirm your password") {
		errs.Check(f.Password == f.ConfirmPassword, "confirmPassword", "Passwords do not match")
	}
	return errs.Err()
}

// ProfileForm: NewPassword vacío = no cambiar la contraseña.
type ProfileForm struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f ProfileForm) Validate() error {
	errs := validation.Errors{}
	errs.Required("username", f.Username, "Username is required")
	errs.Email("email", f.Email, "Email is required", "Email is invalid")

	if f.NewPassword != "" {
		errs.Check(len(f.NewPassword) >= minPasswordLen, "newPassword", "Password must be at least 6 characters")
		errs.Check(f.NewPassword == f.ConfirmPassword, "confirmPassword", "Passwords do not match")
	}
	return errs.Err()
}

// Error es un fallo remoto ya traducido a un mensaje corto para el usuario.
// Status es el HTTP status del backend (0 si no hubo respuesta).
type Error struct {
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func trimForm(s string) string { return strings.TrimSpace(s) }
