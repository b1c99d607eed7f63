package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLoggerLevelTracksStatus(t *testing.T) {
	cases := []struct {
		name   string
		status int
		level  string
	}{
		{"success logs info", http.StatusOK, "info"},
		{"client error logs warn", http.StatusUnprocessableEntity, "warn"},
		{"server error logs error", http.StatusBadGateway, "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

			assert.Contains(t, buf.String(), `"level":"`+tc.level+`"`)
			assert.Contains(t, buf.String(), `"path":"/v1/healthz"`)
			assert.Contains(t, buf.String(), "request completed")
		})
	}
}

func TestLoggerCountsBytesWritten(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	handler := Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("0123456789"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"bytes":10`)
	assert.Contains(t, buf.String(), `"status":200`)
}
