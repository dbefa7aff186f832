package httputil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/limbo/missions/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	httputil.WriteErrorResponse(rr, http.StatusConflict, "already exists", errors.New("duplicate key"))

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp httputil.ErrorResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, httputil.ErrorResponse{Code: http.StatusConflict, Message: "already exists", Details: "duplicate key"}, resp)
}

func TestETagIsStable(t *testing.T) {
	a := httputil.ETag([]byte(`{"a":1}`))
	assert.Equal(t, a, httputil.ETag([]byte(`{"a":1}`)))
	assert.NotEqual(t, a, httputil.ETag([]byte(`{"a":2}`)))
	assert.Regexp(t, `^"[0-9a-f]+"$`, a)
}

func TestWriteCachedJSON(t *testing.T) {
	storedAt := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	body := map[string]int{"points": 100}

	rr := httptest.NewRecorder()
	require.NoError(t, httputil.WriteCachedJSON(rr, httptest.NewRequest(http.MethodGet, "/", nil), body, false, storedAt))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "MISS", rr.Header().Get("X-Cache"))
	assert.Equal(t, "Wed, 10 Jan 2024 12:00:00 GMT", rr.Header().Get("Last-Modified"))
	assert.JSONEq(t, `{"points":100}`, rr.Body.String())
	tag := rr.Header().Get("ETag")
	require.NotEmpty(t, tag)

	rr = httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("If-None-Match", tag)
	require.NoError(t, httputil.WriteCachedJSON(rr, r, body, true, storedAt))
	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Equal(t, "HIT", rr.Header().Get("X-Cache"))
	assert.Zero(t, rr.Body.Len())
}
