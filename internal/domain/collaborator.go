package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleEmployee      Role = "employee"
)

func (r Role) Valid() bool {
	return r == RoleAdministrator || r == RoleEmployee
}

type Collaborator struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	TaxID        string    `json:"tax_id"`
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateCollaboratorRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	TaxID    string `json:"tax_id"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
}

type UpdateCollaboratorRequest struct {
	ID     string  `json:"-"`
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	TaxID  *string `json:"tax_id"`
	Role   *Role   `json:"role"`
	Active *bool   `json:"active"`
}

type Claims struct {
	CollaboratorID string
	Name           string
	Email          string
	Role           Role
	jwt.RegisteredClaims
}
