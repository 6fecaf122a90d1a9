package registering

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("registro não encontrado")
	ErrAlreadyExists    = errors.New("registro já existe")
	ErrMissingData      = errors.New("dados obrigatórios ausentes")
	ErrInvalidReference = errors.New("referência inválida")
	ErrInvalidAmount    = errors.New("valor inválido")
	ErrInvalidDocument  = errors.New("documento inválido")
	ErrInvalidType      = errors.New("tipo inválido")
)

// RegisterError carrega o código da API e o registro envolvido
type RegisterError struct {
	Err      error
	Code     string
	EntityID string
	Details  string
}

func (e *RegisterError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *RegisterError) Unwrap() error {
	return e.Err
}

func NewRegisterError(baseErr error, code string, details string) *RegisterError {
	return &RegisterError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

func NewEntityError(baseErr error, code string, entityID string, details string) *RegisterError {
	return &RegisterError{
		Err:      baseErr,
		Code:     code,
		EntityID: entityID,
		Details:  details,
	}
}
