package utils

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		code Code
		want int
	}{
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeForbidden, http.StatusForbidden},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(E(c.code, "Op", "msg", nil)), string(c.code))
	}
}

func TestHTTPStatus_WrappedAndSentinel(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", E(CodeNotFound, "Repo.Get", "gone", nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(wrapped))

	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestIsCode(t *testing.T) {
	err := E(CodeConflict, "JobService.Ingest", "duplicate", nil)
	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeConflict))
}

func TestAppError_Message(t *testing.T) {
	inner := errors.New("pq: connection refused")
	err := E(CodeInternal, "JobRepo.List", "failed to list jobs", inner)
	assert.Equal(t, "JobRepo.List: failed to list jobs: pq: connection refused", err.Error())
	assert.True(t, errors.Is(err, inner))
}
