package authenticating

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/wash-manager-api/infrastructure/repository"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/log"
	"golang.org/x/crypto/bcrypt"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, collaboratorID string) (*domain.Collaborator, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	ChangePassword(ctx context.Context, collaboratorID, currentPassword, newPassword string) error
	ResetPassword(ctx context.Context, requesterID, targetID string) (string, error)
}

type Service struct {
	collaboratorRepo repository.CollaboratorRepository
	secretKey        string
	tokenTTL         time.Duration
	now              func() time.Time
}

func NewService(collaboratorRepo repository.CollaboratorRepository, cfg *config.Config) Authenticator {
	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Service{
		collaboratorRepo: collaboratorRepo,
		secretKey:        cfg.SecretKey,
		tokenTTL:         ttl,
		now:              time.Now,
	}
}

// NormalizeEmail deixa o email em minúsculas e sem espaços
func NormalizeEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = NormalizeEmail(email)

	collaborator, err := s.collaboratorRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao consultar colaborador no banco de dados")
	}

	if collaborator == nil {
		return "", NewAuthError(ErrCollaboratorNotFound, apiErrors.ErrUserNotFound, "Colaborador não encontrado")
	}

	if !collaborator.Active {
		return "", NewCollaboratorAuthError(ErrCollaboratorDisabled, apiErrors.ErrUserDisabled, collaborator.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(collaborator.PasswordHash), []byte(password)); err != nil {
		return "", NewCollaboratorAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, collaborator.ID, "Senha incorreta")
	}

	token, err := s.generateJWT(collaborator)
	if err != nil {
		return "", NewAuthError(ErrTokenGeneration, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	log.ForContext(ctx).WithField("user_id", collaborator.ID).Info("auth: login realizado")
	return token, nil
}

func (s *Service) GetProfile(ctx context.Context, collaboratorID string) (*domain.Collaborator, error) {
	collaborator, err := s.collaboratorRepo.GetByID(ctx, collaboratorID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("auth: erro ao buscar perfil")
		return nil, NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao buscar perfil")
	}
	if collaborator == nil {
		return nil, NewAuthError(ErrCollaboratorNotFound, apiErrors.ErrUserNotFound, "Colaborador não encontrado")
	}

	collaborator.PasswordHash = ""
	return collaborator, nil
}

func (s *Service) generateJWT(collaborator *domain.Collaborator) (string, error) {
	now := s.now()
	claims := domain.Claims{
		CollaboratorID: collaborator.ID,
		Name:           collaborator.Name,
		Email:          collaborator.Email,
		Role:           collaborator.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   collaborator.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
	}

	return claims, nil
}

// ResetPassword gera uma nova senha forte para o colaborador alvo.
// Apenas administradores podem redefinir senhas.
func (s *Service) ResetPassword(ctx context.Context, requesterID, targetID string) (string, error) {
	requester, err := s.collaboratorRepo.GetByID(ctx, requesterID)
	if err != nil {
		return "", NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao buscar colaborador solicitante")
	}
	if requester == nil {
		return "", NewAuthError(ErrCollaboratorNotFound, apiErrors.ErrUserNotFound, "Colaborador solicitante não encontrado")
	}
	if requester.Role != domain.RoleAdministrator {
		return "", NewCollaboratorAuthError(ErrNoAdminPrivilege, apiErrors.ErrInsufficientPrivilege, requesterID, "Apenas administradores podem gerar novas senhas")
	}

	target, err := s.collaboratorRepo.GetByID(ctx, targetID)
	if err != nil {
		return "", NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao buscar colaborador")
	}
	if target == nil {
		return "", NewAuthError(ErrCollaboratorNotFound, apiErrors.ErrUserNotFound, "Colaborador não encontrado")
	}

	newPassword, err := generateStrongPassword(12)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar senha")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", NewAuthError(ErrPasswordHashing, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	target.PasswordHash = string(hashedPassword)
	if err := s.collaboratorRepo.Update(ctx, target); err != nil {
		return "", NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao salvar nova senha")
	}

	return newPassword, nil
}

// generateStrongPassword gera uma senha com pelo menos uma letra maiúscula,
// uma minúscula, um número e um caractere especial
func generateStrongPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const allChars = lowerChars + upperChars + numberChars + specialChars

	password := make([]byte, length)
	for i, charset := range []string{lowerChars, upperChars, numberChars, specialChars} {
		randomChar, err := getRandomChar(charset)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	for i := 4; i < length; i++ {
		randomChar, err := getRandomChar(allChars)
		if err != nil {
			return "", err
		}
		password[i] = randomChar
	}

	// Embaralhar para que os caracteres não fiquem em ordem previsível
	for i := range password {
		j, err := randomInt(int64(len(password)))
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func getRandomChar(charset string) (byte, error) {
	n, err := randomInt(int64(len(charset)))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randomInt gera um número aleatório seguro entre 0 e max-1
func randomInt(max int64) (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

const (
	lowerChars   = "abcdefghijklmnopqrstuvwxyz"
	upperChars   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars  = "0123456789"
	specialChars = "!@#$%^&*()-_=+[]{}|;:,.<>?"
)

// ValidatePasswordStrength exige pelo menos 8 caracteres, incluindo maiúsculas,
// minúsculas, números e caracteres especiais
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errors.New("a senha deve conter pelo menos 8 caracteres")
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, char := range password {
		switch {
		case strings.ContainsRune(lowerChars, char):
			hasLower = true
		case strings.ContainsRune(upperChars, char):
			hasUpper = true
		case strings.ContainsRune(numberChars, char):
			hasNumber = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("a senha deve conter pelo menos uma letra maiúscula")
	}
	if !hasLower {
		return errors.New("a senha deve conter pelo menos uma letra minúscula")
	}
	if !hasNumber {
		return errors.New("a senha deve conter pelo menos um número")
	}
	if !hasSpecial {
		return errors.New("a senha deve conter pelo menos um caractere especial")
	}

	return nil
}

// ChangePassword confere a senha atual antes de gravar a nova
func (s *Service) ChangePassword(ctx context.Context, collaboratorID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Senha atual e nova senha são obrigatórias")
	}

	collaborator, err := s.collaboratorRepo.GetByID(ctx, collaboratorID)
	if err != nil {
		return NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao buscar colaborador")
	}
	if collaborator == nil {
		return NewAuthError(ErrCollaboratorNotFound, apiErrors.ErrUserNotFound, "Colaborador não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(collaborator.PasswordHash), []byte(currentPassword)); err != nil {
		return NewCollaboratorAuthError(ErrWrongPassword, apiErrors.ErrInvalidCredentials, collaboratorID, "Senha atual incorreta")
	}

	if currentPassword == newPassword {
		return NewCollaboratorAuthError(ErrSamePassword, apiErrors.ErrWeakPassword, collaboratorID, "Nova senha deve ser diferente da atual")
	}

	if err := ValidatePasswordStrength(newPassword); err != nil {
		return NewCollaboratorAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, collaboratorID, err.Error())
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return NewAuthError(ErrPasswordHashing, apiErrors.ErrInternalServer, "Erro ao gerar hash da senha")
	}

	collaborator.PasswordHash = string(hashedPassword)
	if err := s.collaboratorRepo.Update(ctx, collaborator); err != nil {
		return NewAuthError(ErrDatabaseFailure, apiErrors.ErrDatabaseOperation, "Erro ao salvar nova senha")
	}

	return nil
}
