package middlewarex

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	h := TraceID(Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	rq.Equal(http.StatusInternalServerError, w.Code)
	rq.Contains(w.Body.String(), `"success":false`)
	rq.Contains(w.Body.String(), `"code":"InternalServerError"`)
	rq.NotEmpty(w.Header().Get(headerNameTraceID))
}

func TestTraceID_KeepsIncomingHeader(t *testing.T) {
	var seen string
	h := TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(headerNameTraceID)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.Header.Set(headerNameTraceID, "abc")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, "abc", seen)
	require.Equal(t, "abc", w.Header().Get(headerNameTraceID))
}
