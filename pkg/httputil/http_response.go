package httputil

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cespare/xxhash/v2"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}

	if details != nil {
		resp.Details = details.Error()
	}

	sonic.ConfigFastest.NewEncoder(w).Encode(resp)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		sonic.ConfigDefault.NewEncoder(w).Encode(body)
	}
}

// ETag is a strong entity tag of payload.
func ETag(payload []byte) string {
	return `"` + strconv.FormatUint(xxhash.Sum64(payload), 16) + `"`
}

// WriteCachedJSON writes body with an ETag and the X-Cache and Last-Modified
// headers describing where it came from. A request whose If-None-Match already
// carries the tag gets 304 with no body.
func WriteCachedJSON(w http.ResponseWriter, r *http.Request, body any, fromCache bool, storedAt time.Time) error {
	payload, err := sonic.ConfigDefault.Marshal(body)
	if err != nil {
		return err
	}
	tag := ETag(payload)
	h := w.Header()
	h.Set("ETag", tag)
	h.Set("Cache-Control", "private, no-cache")
	h.Set("Last-Modified", storedAt.UTC().Format(http.TimeFormat))
	if fromCache {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}
	h.Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(payload)
	return err
}
