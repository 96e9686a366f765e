package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestTraceMiddleware(t *testing.T) {
	logBuf, base := logger.SetupTestLogger(t)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
	})

	rr := httptest.NewRecorder()
	TraceMiddleware(base)(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/camps", nil))

	assert.Len(t, seen, 2*shared.TraceIDLength)
	assert.Equal(t, seen, rr.Header().Get(TraceIDHeader))
	logger.AssertLogContains(t, logBuf, `"trace_id":"`+seen+`"`)
	logger.AssertLogContains(t, logBuf, "inside handler")
}
