package entity

import (
	"slices"
	"time"
)

// Roles válidos para User. RoleUser es el rol base implícito de toda cuenta.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta de la tienda. El carrito vive en la misma fila
// (columna JSONB) para que cada mutación persista de inmediato.
type User struct {
	ID           string
	Email        string // único, comparación case-insensitive
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        []string
	IsActive     bool
	FirstName    string
	LastName     string
	Address      string
	Cart         Cart

	// Recuperación de contraseña: token de un solo uso con expiración.
	// Ambos se anulan en la misma actualización que cambia el hash.
	ResetToken          *string
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveRoles devuelve los roles del usuario garantizando que RoleUser
// siempre esté presente, aunque no se haya asignado explícitamente.
func (u *User) EffectiveRoles() []string {
	roles := slices.Clone(u.Roles)
	if !slices.Contains(roles, RoleUser) {
		roles = append(roles, RoleUser)
	}
	return roles
}

// HasRole verifica un rol contra los roles efectivos (incluye el rol base).
func (u *User) HasRole(role string) bool {
	return slices.Contains(u.EffectiveRoles(), role)
}

// DisplayName devuelve "Nombre Apellido (email)" o solo el email si no hay nombres.
func (u *User) DisplayName() string {
	full := u.FirstName
	if u.LastName != "" {
		if full != "" {
			full += " "
		}
		full += u.LastName
	}
	if full == "" {
		return u.Email
	}
	return full + " (" + u.Email + ")"
}
