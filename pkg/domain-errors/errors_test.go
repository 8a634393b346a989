package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Run("direct error", func(t *testing.T) {
		err := New(CodeValidation, "bad")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("wrapped by fmt", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeBadRequest, "not a list"))
		assert.True(t, HasCode(err, CodeBadRequest))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeUnavailable, "extraction unavailable")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "extraction unavailable: connection refused", err.Error())
}

func TestToHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeBadRequest:  http.StatusBadRequest,
		CodeValidation:  http.StatusBadRequest,
		CodeNotFound:    http.StatusNotFound,
		CodeUnavailable: http.StatusServiceUnavailable,
		CodeTimeout:     http.StatusGatewayTimeout,
		CodeInternal:    http.StatusInternalServerError,
		Code("unknown"): http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
