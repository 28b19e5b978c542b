package auth_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/softglass/calculator-backend/application/auth"
	"github.com/softglass/calculator-backend/application/token"
	"github.com/softglass/calculator-backend/constant"
	cerr "github.com/softglass/calculator-backend/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_Authorize(t *testing.T) {
	tokens := token.NewTokenService("gateway-secret")
	valid, err := tokens.Issue(11, "a@x.com")
	require.NoError(t, err)
	foreign, err := token.NewTokenService("other").Issue(11, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		headers http.Header
		want    uint64
		errCode constant.ErrorType
	}{
		{
			name:    "canonical header",
			headers: http.Header{"X-Auth-Token": {valid}},
			want:    11,
		},
		{
			name:    "lower case raw key",
			headers: http.Header{"x-auth-token": {valid}},
			want:    11,
		},
		{
			name:    "upper case raw key",
			headers: http.Header{"X-AUTH-TOKEN": {valid}},
			want:    11,
		},
		{
			name:    "missing header",
			headers: http.Header{"Content-Type": {"application/json"}},
			errCode: constant.ErrMissingToken,
		},
		{
			name:    "blank header",
			headers: http.Header{"X-Auth-Token": {"  "}},
			errCode: constant.ErrMissingToken,
		},
		{
			name:    "garbage",
			headers: http.Header{"X-Auth-Token": {"garbage"}},
			errCode: constant.ErrInvalidToken,
		},
		{
			name:    "foreign secret",
			headers: http.Header{"X-Auth-Token": {foreign}},
			errCode: constant.ErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := auth.NewGateway(tokens)
			got, err := gw.Authorize(tt.headers)
			if tt.errCode != constant.Successful {
				var ce cerr.CustomError
				require.True(t, errors.As(err, &ce), "error type = %T", err)
				assert.Equal(t, constant.ErrorTypeCode[tt.errCode], ce.ErrorCode())
				assert.Equal(t, http.StatusUnauthorized, ce.ErrorHTTPCode())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
