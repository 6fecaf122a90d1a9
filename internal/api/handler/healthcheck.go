package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/wash-manager-api/internal/snapshot"
)

type healthcheckResponse struct {
	Status          string    `json:"status"`
	Time            time.Time `json:"time"`
	SnapshotVersion uint64    `json:"snapshot_version"`
	SnapshotTakenAt time.Time `json:"snapshot_taken_at"`
}

// HealthcheckHandler responde 200 e informa a versão do snapshot em memória
func HealthcheckHandler(source snapshot.Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := source.Current()
		respondJSON(w, r, http.StatusOK, healthcheckResponse{
			Status:          "ok",
			Time:            time.Now(),
			SnapshotVersion: snap.Version,
			SnapshotTakenAt: snap.TakenAt,
		})
	})
}
