package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

type countingJob struct {
	runs int
}

func (j *countingJob) TriggerManualSync()        { j.runs++ }
func (j *countingJob) GetStatus() map[string]any { return map[string]any{"runs": j.runs} }

func TestRunJob_All(t *testing.T) {
	snapshotJob, rankingJob := &countingJob{}, &countingJob{}
	jobs := Jobs{
		JobTypeSnapshotSync:        snapshotJob,
		JobTypeCollaboratorRanking: rankingJob,
	}

	rt := httprouter.New()
	rt.Handler(http.MethodPost, "/v1/jobs/:type/run", RunJob(jobs))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/jobs/all/run", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, snapshotJob.runs)
	assert.Equal(t, 1, rankingJob.runs)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/jobs/unknown/run", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"accepted":["collaborator-ranking","snapshot-sync","all"]`)
}
