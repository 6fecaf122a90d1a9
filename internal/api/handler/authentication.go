package handler

import (
	"net/http"

	"github.com/vfg2006/wash-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type ResetPasswordResponse struct {
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, r, err, "Erro interno ao realizar login")
			return
		}

		respondJSON(w, r, http.StatusOK, map[string]string{"token": token})
	}
}

// GetMe retorna o perfil do colaborador autenticado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Colaborador não autenticado", nil)
			return
		}

		collaborator, err := service.GetProfile(r.Context(), claims.CollaboratorID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao obter dados do colaborador")
			return
		}

		respondJSON(w, r, http.StatusOK, collaborator)
	}
}

// ChangePassword altera a senha do próprio colaborador autenticado
func ChangePassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		var req ChangePasswordRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := service.ChangePassword(r.Context(), claims.CollaboratorID, req.CurrentPassword, req.NewPassword); err != nil {
			writeServiceError(w, r, err, "Erro ao alterar senha")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ResetPassword gera uma senha nova para outro colaborador. Apenas administradores.
func ResetPassword(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Não autorizado", nil)
			return
		}

		targetID, ok := pathID(w, r)
		if !ok {
			return
		}

		password, err := service.ResetPassword(r.Context(), claims.CollaboratorID, targetID)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar senha")
			return
		}

		respondJSON(w, r, http.StatusOK, ResetPasswordResponse{Password: password})
	}
}
