package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/budget-keeper/internal/logger"
)

func TestWithTraceID(t *testing.T) {
	t.Run("reuses the caller's id", func(t *testing.T) {
		h := &Handler{logger: logger.Nop()}
		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.Header.Set(traceIDHeader, "trace-123")
		rr := httptest.NewRecorder()

		h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

		assert.Equal(t, "trace-123", rr.Header().Get(traceIDHeader))
	})

	t.Run("replaces an unusable id", func(t *testing.T) {
		h := &Handler{logger: logger.Nop()}
		for _, bad := range []string{strings.Repeat("a", maxTraceIDLength+1), "line\nbreak", "sp ace"} {
			req := httptest.NewRequest(http.MethodGet, "/version", nil)
			req.Header.Set(traceIDHeader, bad)
			rr := httptest.NewRecorder()

			h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rr, req)

			_, err := uuid.Parse(rr.Header().Get(traceIDHeader))
			assert.NoError(t, err, "%q", bad)
		}
	})

	t.Run("generates a uuid and logs it", func(t *testing.T) {
		var buf bytes.Buffer
		h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}
		rr := httptest.NewRecorder()

		h.withTraceID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.FromRequest(r).Info().Msg("inside")
		})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

		traceID := rr.Header().Get(traceIDHeader)
		_, err := uuid.Parse(traceID)
		require.NoError(t, err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, traceID, entry["trace_id"])
	})
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	handler := h.withTraceID(h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/docs/weeks?x=1", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "/docs/weeks?x=1", entry["uri"])
	assert.Equal(t, http.MethodPost, entry["method"])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
	assert.EqualValues(t, len("short and stout"), entry["size"])
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestStatusRecorder_WriteHeaderOnce(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &statusRecorder{ResponseWriter: rr}

	w.Write([]byte("ab"))
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("cde"))

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 5, w.size)
}

func TestWithLogging_ServerErrorsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	h.withTraceID(h.withLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/docs/weeks", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.EqualValues(t, 0, entry["size"])
}

func TestWithBodyLimit(t *testing.T) {
	read := func(body string) error {
		var readErr error
		handler := withBodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/docs/weeks", strings.NewReader(body)))
		return readErr
	}

	assert.NoError(t, read(strings.Repeat("a", maxRequestBodySize)))

	var maxBytesErr *http.MaxBytesError
	assert.ErrorAs(t, read(strings.Repeat("a", maxRequestBodySize+1)), &maxBytesErr)
}

func TestWithGZip(t *testing.T) {
	t.Run("implicit status still marks encoding", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/version", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("1.2.3"))
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	})

	t.Run("plain client gets plain body", func(t *testing.T) {
		rr := httptest.NewRecorder()

		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("1.2.3"))
		})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/version", nil))

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, "1.2.3", rr.Body.String())
	})

	t.Run("invalid gzip body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/docs/weeks", strings.NewReader("not gzip"))
		req.Header.Set("Content-Encoding", "gzip")
		rr := httptest.NewRecorder()

		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("next must not run")
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"invalid gzip data"}`, rr.Body.String())
	})

	t.Run("wrapped reader close runs callback", func(t *testing.T) {
		closed := false
		rc := &wrappedReadCloser{Reader: strings.NewReader("x"), OnClose: func() { closed = true }}
		assert.NoError(t, rc.Close())
		assert.True(t, closed)
	})
}

func TestNotFound_HidesRoutes(t *testing.T) {
	_, router := newMockedRouter(t)

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/version"},
		{http.MethodGet, "/auth/register"},
		{http.MethodPatch, "/auth/login"},
		{http.MethodGet, "/admin"},
		{http.MethodPost, "/auth/unknown"},
	} {
		rr := doRequest(t, router, tc.method, tc.target, "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", tc.method, tc.target)
		assert.JSONEq(t, `{"error":"Not Found"}`, rr.Body.String(), "%s %s", tc.method, tc.target)
	}
}
