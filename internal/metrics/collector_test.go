package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEvaluation(t *testing.T) {
	c := NewCollector("rules", nil)

	c.RecordEvaluation([]bool{true, false, true}, time.Millisecond, nil)
	c.RecordEvaluation([]bool{true, false, false}, time.Millisecond, nil)
	c.RecordEvaluation(nil, time.Millisecond, errors.New("missing data key"))
	c.RecordFiltered()
	c.RecordFailed()

	assert.Equal(t, float64(2), testutil.ToFloat64(c.rowsTotal.WithLabelValues(StatusEvaluated)))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.rowsTotal.WithLabelValues(StatusFailed)))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.rowsTotal.WithLabelValues(StatusFiltered)))

	assert.Equal(t, float64(2), testutil.ToFloat64(c.ruleMatchesTotal.WithLabelValues("0")))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.ruleMatchesTotal.WithLabelValues("1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.ruleMatchesTotal.WithLabelValues("2")))

	assert.Equal(t, 1, testutil.CollectAndCount(c.evaluationDuration))
}

func TestHandler(t *testing.T) {
	c := NewCollector("rules", nil)
	c.RecordFiltered()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `rules_rows_total{status="filtered"} 1`)
}
