package entity

import "time"

// Roles de usuario del punto de venta.
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"
	RoleBodeguero = "bodeguero"
)

// User es un operador del sistema. La identidad del caller se propaga
// explícita a los orquestadores; nunca se usa un "usuario actual" ambiente.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"` // nunca sale en respuestas HTTP (los handlers responden DTOs)
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"` // active | disabled
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
