package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		assert.Equal(t, CodeNotFound, CodeOf(NotFound("post not found")))
	})

	t.Run("wrapped app error", func(t *testing.T) {
		err := fmt.Errorf("toggling like: %w", AlreadyExists("username already taken"))
		assert.Equal(t, CodeAlreadyExists, CodeOf(err))
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidArgument:    http.StatusBadRequest,
		CodeAlreadyExists:      http.StatusBadRequest,
		CodeInvalidCredentials: http.StatusUnauthorized,
		CodeUnauthenticated:    http.StatusUnauthorized,
		CodeNotFound:           http.StatusNotFound,
		CodeInternal:           http.StatusInternalServerError,
		Code("SOMETHING_ELSE"):  http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), code)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("listing posts", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "listing posts: connection reset", err.Error())

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, CodeInternal, appErr.Code)
}
