package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordPurchase(t *testing.T) {
	before := testutil.ToFloat64(purchases.WithLabelValues("EUR"))
	beforeCommission := testutil.ToFloat64(commission.WithLabelValues("EUR"))

	RecordPurchase("EUR", 7)
	RecordPurchase("EUR", 0)

	assert.Equal(t, before+2, testutil.ToFloat64(purchases.WithLabelValues("EUR")))
	assert.InDelta(t, beforeCommission+7, testutil.ToFloat64(commission.WithLabelValues("EUR")), 1e-9)
}

func TestRecordWithdrawal(t *testing.T) {
	before := testutil.ToFloat64(withdrawals.WithLabelValues("paypal", "PENDING"))
	RecordWithdrawal("paypal", "PENDING")
	assert.Equal(t, before+1, testutil.ToFloat64(withdrawals.WithLabelValues("paypal", "PENDING")))
}

func TestInstrumentHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/ebooks/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", Handler())

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/ebooks/{id}", "404"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ebooks/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/ebooks/{id}", "404")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ebookmarket_http_requests_total"))
}
