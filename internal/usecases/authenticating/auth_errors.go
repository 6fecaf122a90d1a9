package authenticating

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials    = errors.New("credenciais inválidas")
	ErrCollaboratorDisabled  = errors.New("colaborador desativado")
	ErrCollaboratorNotFound  = errors.New("colaborador não encontrado")
	ErrInvalidToken          = errors.New("token inválido")
	ErrExpiredToken          = errors.New("token expirado")
	ErrInsufficientPrivilege = errors.New("privilégios insuficientes")

	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")

	ErrWeakPassword     = errors.New("senha fraca")
	ErrWrongPassword    = errors.New("senha atual incorreta")
	ErrSamePassword     = errors.New("nova senha deve ser diferente da atual")
	ErrDatabaseFailure  = errors.New("erro ao realizar operação no banco de dados")
	ErrTokenGeneration  = errors.New("erro ao gerar token")
	ErrPasswordHashing  = errors.New("erro ao gerar hash da senha")
	ErrNoAdminPrivilege = errors.New("apenas administradores podem realizar esta ação")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err            error  // Erro base
	Code           string // Código de erro para API
	CollaboratorID string // Colaborador envolvido (quando aplicável)
	Details        string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// IsCredentialsError verifica se o erro está relacionado a credenciais inválidas
func IsCredentialsError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrCollaboratorDisabled) ||
		errors.Is(err, ErrCollaboratorNotFound)
}

// IsAuthorizationError verifica se o erro está relacionado a problemas de autorização
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInsufficientPrivilege) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrNoAdminPrivilege)
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewCollaboratorAuthError(baseErr error, code string, collaboratorID string, details string) *AuthError {
	return &AuthError{
		Err:            baseErr,
		Code:           code,
		CollaboratorID: collaboratorID,
		Details:        details,
	}
}
