package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	require.Equal(t, http.StatusBadRequest, KindValidation.Status())
	require.Equal(t, http.StatusConflict, KindConflict.Status())
	require.Equal(t, http.StatusNotFound, KindNotFound.Status())
	require.Equal(t, http.StatusTooManyRequests, KindRateLimited.Status())
	require.Equal(t, http.StatusInternalServerError, KindInternal.Status())
}

func TestFromTypedError(t *testing.T) {
	err := Conflict("Email already exists")

	got := From(err)
	require.Equal(t, KindConflict, got.Kind)
	require.Equal(t, "Email already exists", got.Message)
}

func TestFromWrappedTypedError(t *testing.T) {
	err := fmt.Errorf("register: %w", NotFound("User not found"))

	got := From(err)
	require.Equal(t, KindNotFound, got.Kind)
	require.Equal(t, "User not found", got.Message)
}

func TestFromUntypedError(t *testing.T) {
	got := From(errors.New("connection refused"))

	require.Equal(t, KindInternal, got.Kind)
	require.Equal(t, "Internal server error", got.Message)
	require.ErrorContains(t, got, "connection refused")
}
