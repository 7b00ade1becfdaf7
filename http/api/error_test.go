package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErr(t *testing.T) {
	err := Err(http.StatusRequestEntityTooLarge, "")

	require.Equal(t, http.StatusRequestEntityTooLarge, err.Code)
	require.Equal(t, "Request Entity Too Large", err.Message)
	require.Equal(t, []string{}, err.Details)

	err = Err(http.StatusBadRequest, "Invalid body", "line %d\nchar %d", 2, 13)

	require.Equal(t, "Invalid body", err.Message)
	require.Equal(t, []string{"line 2", "char 13"}, err.Details)
	require.Equal(t, "code=400, message=Invalid body, details=line 2 char 13", err.Error())
}

func TestInternalServerError(t *testing.T) {
	err := InternalServerError()

	require.Equal(t, Error{
		Code:    500,
		Message: "Internal Server Error",
		Details: []string{},
	}, err)
}
