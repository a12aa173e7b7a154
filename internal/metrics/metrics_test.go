package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSummarize(t *testing.T) {
	okBefore := testutil.ToFloat64(SummarizeTotal.WithLabelValues("unit", OutcomeSuccess))
	errBefore := testutil.ToFloat64(SummarizeTotal.WithLabelValues("unit", OutcomeError))

	ObserveSummarize("unit", nil, 10*time.Millisecond)
	ObserveSummarize("unit", errors.New("boom"), 10*time.Millisecond)
	ObserveSummarize("unit", errors.New("boom"), 10*time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(SummarizeTotal.WithLabelValues("unit", OutcomeSuccess)))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(SummarizeTotal.WithLabelValues("unit", OutcomeError)))
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(Middleware)
	r.HandleFunc("/metrics-test/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)

	counter := HTTPRequestsTotal.WithLabelValues("/metrics-test/{id}", http.MethodGet, "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics-test/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	ObserveSummarize("expose", nil, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "snippet_service_summarize_total"))
}
