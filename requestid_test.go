package ward_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardhttp/ward"
)

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	var seen string
	h := ward.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ward.GetRequestID(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err, "generated ID should be a UUID")
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDPassthrough(t *testing.T) {
	t.Parallel()

	var seen string
	h := ward.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ward.GetRequestID(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Request-ID", "inbound-id")
	h.ServeHTTP(rec, r)

	assert.Equal(t, "inbound-id", seen)
	assert.Equal(t, "inbound-id", rec.Header().Get("X-Request-ID"))
}

func TestRequestIDCustomConfig(t *testing.T) {
	t.Parallel()

	h := ward.RequestID(ward.RequestIDConfig{
		Header:    "X-Trace-ID",
		Generator: func() string { return "fixed" },
	})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "fixed", rec.Header().Get("X-Trace-ID"))
}

func TestGetRequestIDMissing(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, ward.GetRequestID(r))
}
