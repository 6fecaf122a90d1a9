package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/wash-manager-api/pkg/apiErrors"
)

const (
	JobTypeSnapshotSync        = "snapshot-sync"
	JobTypeCollaboratorRanking = "collaborator-ranking"
	JobTypeAll                 = "all"
)

// Job é um serviço agendado que também pode ser disparado manualmente
type Job interface {
	TriggerManualSync()
	GetStatus() map[string]any
}

// Jobs indexa os serviços agendados pelo tipo usado na URL
type Jobs map[string]Job

func (j Jobs) types() []string {
	types := make([]string, 0, len(j)+1)
	for name := range j {
		types = append(types, name)
	}
	sort.Strings(types)
	return append(types, JobTypeAll)
}

// RunJob dispara manualmente um job (snapshot-sync, collaborator-ranking ou all)
func RunJob(jobs Jobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if jobType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de job não especificado", nil)
			return
		}

		if jobType == JobTypeAll {
			for _, job := range jobs {
				job.TriggerManualSync()
			}
		} else {
			job, ok := jobs[jobType]
			if !ok || job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de job inválido", map[string]any{
					"accepted": jobs.types(),
				})
				return
			}
			job.TriggerManualSync()
		}

		logrus.WithField("type", jobType).Info("Job disparado manualmente")

		respondJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Job iniciado com sucesso",
			"type":    jobType,
		})
	}
}

func GetJobsStatus(jobs Jobs) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(jobs))
		for name, job := range jobs {
			if job != nil {
				status[name] = job.GetStatus()
			}
		}

		respondJSON(w, r, http.StatusOK, status)
	}
}
