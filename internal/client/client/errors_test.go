package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/branchadmin/internal/common"
)

func TestMapStatus(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{400, common.ErrUnauthorized},
		{401, common.ErrUnauthorized},
		{403, common.ErrUnauthorized},
		{422, common.ErrUnauthorized},
		{429, common.ErrThrottled},
		{500, common.ErrUnavailable},
		{503, common.ErrUnavailable},
		{404, common.ErrBadResponse},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			err := mapStatus(tt.code, nil)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.code, apiErr.StatusCode)
		})
	}
}

func TestMapStatus_ServerMessage(t *testing.T) {
	err := mapStatus(401, []byte(`{"error":"Credenciales inválidas"}`))
	assert.Equal(t, "Credenciales inválidas", ServerMessage(err))
	assert.Contains(t, err.Error(), "status 401")

	err = mapStatus(422, []byte(`{"message":"El email es obligatorio"}`))
	assert.Equal(t, "El email es obligatorio", ServerMessage(err))

	err = mapStatus(500, []byte(`<html>oops</html>`))
	assert.Empty(t, ServerMessage(err))
}

func TestServerMessage_NotAnAPIError(t *testing.T) {
	assert.Empty(t, ServerMessage(errors.New("plain")))
	assert.Empty(t, ServerMessage(nil))
}

func TestTransportError_KeepsCause(t *testing.T) {
	err := transportError(context.DeadlineExceeded)

	assert.ErrorIs(t, err, common.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "deadline exceeded")
}
