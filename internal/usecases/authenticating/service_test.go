package authenticating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/wash-manager-api/infrastructure/repository/mocks"
	"github.com/vfg2006/wash-manager-api/internal/config"
	"github.com/vfg2006/wash-manager-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newTestService(t *testing.T) (*Service, *mocks.MockCollaboratorRepository) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCollaboratorRepository(ctrl)
	cfg := &config.Config{SecretKey: "segredo-de-teste", Auth: config.Auth{TokenTTL: time.Hour}}
	return NewService(repo, cfg).(*Service), repo
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	active := &domain.Collaborator{
		ID:           "col-1",
		Name:         "Ana",
		Email:        "ana@lavajato.com",
		Role:         domain.RoleAdministrator,
		Active:       true,
		PasswordHash: hashPassword(t, "Senha@123"),
	}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func()
		validate func(t *testing.T, token string, err error)
	}{
		{
			name:     "Dados ausentes",
			email:    "",
			password: "",
			setup:    func() {},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
				assert.Empty(t, token)
			},
		},
		{
			name:     "Colaborador não encontrado",
			email:    "ninguem@lavajato.com",
			password: "Senha@123",
			setup: func() {
				repo.EXPECT().GetByEmail(ctx, "ninguem@lavajato.com").Return(nil, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrCollaboratorNotFound)
				assert.True(t, IsCredentialsError(err))
			},
		},
		{
			name:     "Colaborador desativado",
			email:    "ana@lavajato.com",
			password: "Senha@123",
			setup: func() {
				disabled := *active
				disabled.Active = false
				repo.EXPECT().GetByEmail(ctx, "ana@lavajato.com").Return(&disabled, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrCollaboratorDisabled)
			},
		},
		{
			name:     "Senha incorreta",
			email:    "ana@lavajato.com",
			password: "errada",
			setup: func() {
				repo.EXPECT().GetByEmail(ctx, "ana@lavajato.com").Return(active, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
			},
		},
		{
			name:     "Erro no banco",
			email:    "ana@lavajato.com",
			password: "Senha@123",
			setup: func() {
				repo.EXPECT().GetByEmail(ctx, "ana@lavajato.com").Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, token string, err error) {
				assert.ErrorIs(t, err, ErrDatabaseFailure)
			},
		},
		{
			name:     "Login com sucesso normaliza o email e gera token válido",
			email:    "  ANA@lavajato.com ",
			password: "Senha@123",
			setup: func() {
				repo.EXPECT().GetByEmail(ctx, "ana@lavajato.com").Return(active, nil)
			},
			validate: func(t *testing.T, token string, err error) {
				require.NoError(t, err)
				require.NotEmpty(t, token)

				claims, err := service.ValidateToken(token)
				require.NoError(t, err)
				assert.Equal(t, "col-1", claims.CollaboratorID)
				assert.Equal(t, domain.RoleAdministrator, claims.Role)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			token, err := service.Login(ctx, tt.email, tt.password)
			tt.validate(t, token, err)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service, _ := newTestService(t)
	collaborator := &domain.Collaborator{ID: "col-1", Role: domain.RoleEmployee}

	t.Run("Token expirado", func(t *testing.T) {
		service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		defer func() { service.now = time.Now }()

		token, err := service.generateJWT(collaborator)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Token assinado com outra chave", func(t *testing.T) {
		other := &Service{secretKey: "outra", tokenTTL: time.Hour, now: time.Now}
		token, err := other.generateJWT(collaborator)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("abc.def")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	current := func() *domain.Collaborator {
		return &domain.Collaborator{ID: "col-1", PasswordHash: hashPassword(t, "Atual@123")}
	}

	tests := []struct {
		name        string
		current     string
		newPassword string
		setup       func()
		expectedErr error
	}{
		{
			name:        "Senha atual incorreta",
			current:     "Errada@123",
			newPassword: "Nova@1234",
			setup:       func() { repo.EXPECT().GetByID(ctx, "col-1").Return(current(), nil) },
			expectedErr: ErrWrongPassword,
		},
		{
			name:        "Nova senha igual à atual",
			current:     "Atual@123",
			newPassword: "Atual@123",
			setup:       func() { repo.EXPECT().GetByID(ctx, "col-1").Return(current(), nil) },
			expectedErr: ErrSamePassword,
		},
		{
			name:        "Nova senha fraca",
			current:     "Atual@123",
			newPassword: "fraca",
			setup:       func() { repo.EXPECT().GetByID(ctx, "col-1").Return(current(), nil) },
			expectedErr: ErrWeakPassword,
		},
		{
			name:        "Colaborador inexistente",
			current:     "Atual@123",
			newPassword: "Nova@1234",
			setup:       func() { repo.EXPECT().GetByID(ctx, "col-1").Return(nil, nil) },
			expectedErr: ErrCollaboratorNotFound,
		},
		{
			name:        "Troca com sucesso",
			current:     "Atual@123",
			newPassword: "Nova@1234",
			setup: func() {
				repo.EXPECT().GetByID(ctx, "col-1").Return(current(), nil)
				repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Collaborator) error {
					assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte("Nova@1234")))
					return nil
				})
			},
			expectedErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			err := service.ChangePassword(ctx, "col-1", tt.current, tt.newPassword)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	t.Run("Funcionário não pode redefinir senha", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, "emp").Return(&domain.Collaborator{ID: "emp", Role: domain.RoleEmployee}, nil)

		_, err := service.ResetPassword(ctx, "emp", "col-2")
		assert.ErrorIs(t, err, ErrNoAdminPrivilege)
	})

	t.Run("Administrador gera senha forte", func(t *testing.T) {
		repo.EXPECT().GetByID(ctx, "adm").Return(&domain.Collaborator{ID: "adm", Role: domain.RoleAdministrator}, nil)
		repo.EXPECT().GetByID(ctx, "col-2").Return(&domain.Collaborator{ID: "col-2"}, nil)
		repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		password, err := service.ResetPassword(ctx, "adm", "col-2")
		require.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, ValidatePasswordStrength(password))
	})
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{password: "Ab1!", valid: false},
		{password: "abcdefg1!", valid: false},
		{password: "ABCDEFG1!", valid: false},
		{password: "Abcdefgh!", valid: false},
		{password: "Abcdefg12", valid: false},
		{password: "Abcdef1!", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "joao@lavajato.com", NormalizeEmail(" Joao @LavaJato.com "))
}
