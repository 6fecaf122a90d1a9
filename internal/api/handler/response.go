package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/wash-manager-api/internal/usecases/authenticating"
	"github.com/vfg2006/wash-manager-api/internal/usecases/ranking"
	"github.com/vfg2006/wash-manager-api/internal/usecases/registering"
	"github.com/vfg2006/wash-manager-api/internal/usecases/reporting"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
	"github.com/vfg2006/wash-manager-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: erro ao enviar resposta")
	}
}

// decodeBody lê o JSON da requisição e responde 400 quando ele é inválido
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("handler: corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

// writeServiceError traduz os erros dos casos de uso para a resposta padronizada
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log.ForContext(r.Context()).WithError(err).Warn(fallback)

	var regErr *registering.RegisterError
	if errors.As(err, &regErr) {
		var details any
		if regErr.EntityID != "" {
			details = map[string]any{"id": regErr.EntityID}
		}
		apiErrors.WriteError(w, regErr.Code, regErr.Error(), details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		var details any
		if authErr.CollaboratorID != "" {
			details = map[string]any{"collaborator_id": authErr.CollaboratorID}
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), details)
		return
	}

	switch {
	case errors.Is(err, reporting.ErrInvalidPeriod), errors.Is(err, ranking.ErrInvalidMonth):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
	case errors.Is(err, reporting.ErrClientNotFound):
		apiErrors.WriteError(w, apiErrors.ErrRecordNotFound, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
