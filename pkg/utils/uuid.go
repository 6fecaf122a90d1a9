package utils

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const codeCharacters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateID gera o identificador de um registro
func GenerateID() string {
	return uuid.NewString()
}

// GenerateCode gera o código curto impresso no comprovante da venda
func GenerateCode() (string, error) {
	return gonanoid.Generate(codeCharacters, 8)
}
