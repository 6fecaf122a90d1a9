package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
)

// Os cadastros seguem o mesmo formato: lista, busca por id, criação,
// atualização e remoção. Cada recurso informa só as funções do serviço.

func listHandler[T any](list func(ctx context.Context) ([]*T, error), fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			writeServiceError(w, r, err, fallback)
			return
		}
		if items == nil {
			items = []*T{}
		}
		respondJSON(w, r, http.StatusOK, items)
	}
}

func getHandler[T any](get func(ctx context.Context, id string) (*T, error), fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		item, err := get(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, fallback)
			return
		}
		respondJSON(w, r, http.StatusOK, item)
	}
}

func createHandler[Req, Resp any](create func(ctx context.Context, req *Req) (*Resp, error), fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := new(Req)
		if !decodeBody(w, r, req) {
			return
		}

		created, err := create(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, fallback)
			return
		}
		respondJSON(w, r, http.StatusCreated, created)
	}
}

func updateHandler[Req, Resp any](
	update func(ctx context.Context, req *Req) (*Resp, error),
	setID func(req *Req, id string),
	fallback string,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		req := new(Req)
		if !decodeBody(w, r, req) {
			return
		}
		setID(req, id)

		updated, err := update(r.Context(), req)
		if err != nil {
			writeServiceError(w, r, err, fallback)
			return
		}
		respondJSON(w, r, http.StatusOK, updated)
	}
}

func deleteHandler(remove func(ctx context.Context, id string) error, fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := remove(r.Context(), id); err != nil {
			writeServiceError(w, r, err, fallback)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if id == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID não informado", nil)
		return "", false
	}
	return id, true
}
