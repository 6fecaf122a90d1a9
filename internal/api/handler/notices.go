package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/vfg2006/wash-manager-api/internal/notification"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
)

const maxNoticeWait = 30 * time.Second

type NoticeFeed interface {
	Since(after uint64) (notification.Notice, bool)
	Subscribe() (<-chan notification.Notice, func())
}

// GetLatestNotice retorna o aviso mais recente com Seq maior que after, ou 204.
// Com wait (ex.: 20s), aguarda um aviso novo até o limite antes de responder 204.
// O desligamento do servidor também encerra a espera com 204.
func GetLatestNotice(feed NoticeFeed) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		var after uint64
		if raw := query.Get("after"); raw != "" {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro after deve ser um número inteiro", nil)
				return
			}
			after = parsed
		}

		var wait time.Duration
		if raw := query.Get("wait"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro wait inválido (ex.: 20s)", nil)
				return
			}
			wait = min(parsed, maxNoticeWait)
		}

		// inscreve antes de consultar para não perder avisos publicados no meio
		var (
			notices <-chan notification.Notice
			cancel  = func() {}
		)
		if wait > 0 {
			notices, cancel = feed.Subscribe()
		}
		defer cancel()

		if notice, ok := feed.Since(after); ok {
			respondJSON(w, r, http.StatusOK, notice)
			return
		}
		if wait == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		cursor := notification.NewCursor(after)
		timer := time.NewTimer(wait)
		defer timer.Stop()

		for {
			select {
			case notice, open := <-notices:
				if !open {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				if cursor.Accept(notice) {
					respondJSON(w, r, http.StatusOK, notice)
					return
				}
			case <-timer.C:
				w.WriteHeader(http.StatusNoContent)
				return
			case <-r.Context().Done():
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
	}
}
