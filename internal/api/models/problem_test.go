package models

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemWrite(t *testing.T) {
	rec := httptest.NewRecorder()

	p := NewBadRequest("req_abc", "origin is required", []FieldError{
		{Field: "origin", Message: "required", Code: "required"},
	})
	p.Instance = "/v1/routes/optimize"
	p.Write(rec)

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req_abc", rec.Header().Get("X-Request-Id"))

	var decoded Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, ProblemTypeValidation, decoded.Type)
	assert.Equal(t, "origin is required", decoded.Detail)
	assert.Equal(t, "/v1/routes/optimize", decoded.Instance)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "origin", decoded.Errors[0].Field)
}

func TestProblemConstructors(t *testing.T) {
	assert.Equal(t, 404, NewNotFound("t", "gone").Status)
	assert.Equal(t, 429, NewTooManyRequests("t", "slow down").Status)
	assert.Equal(t, 500, NewInternalError("t", "boom").Status)
	assert.Equal(t, 503, NewServiceUnavailable("t", "later").Status)
}
