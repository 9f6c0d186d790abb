package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	// Given: a fresh recorder
	recorder := NewRecorder()

	// When: recording submissions and a request
	recorder.RecordMove(ResultAccepted)
	recorder.RecordMove(ResultAccepted)
	recorder.RecordMove(ResultConflict)
	recorder.RecordRequest(http.MethodPost, "/games/{id}/moves", http.StatusOK, 15*time.Millisecond)

	// Then: counters reflect them
	assert.InDelta(t, 2, testutil.ToFloat64(recorder.moveSubmissions.WithLabelValues(ResultAccepted)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.moveSubmissions.WithLabelValues(ResultConflict)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.requests.WithLabelValues(http.MethodPost, "/games/{id}/moves", "200")), 0)

	// And: the handler exports them
	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `tictactoe_move_submissions_total{result="accepted"} 2`)
}

func TestRecorder_Nil(t *testing.T) {
	var recorder *Recorder

	assert.NotPanics(t, func() {
		recorder.RecordMove(ResultRejected)
		recorder.RecordRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})

	rec := httptest.NewRecorder()
	recorder.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
