// Package auth resolves the caller of a protected request from its headers.
package auth

import (
	"net/http"
	"strings"

	"github.com/softglass/calculator-backend/application/token"
	"github.com/softglass/calculator-backend/constant"
	"github.com/softglass/calculator-backend/utils/errors"
)

// Gateway is the single authorization gate for protected operations. It
// never touches the store.
type Gateway interface {
	Authorize(headers http.Header) (uint64, error)
}

type gateway struct {
	tokens token.TokenService
}

func NewGateway(tokens token.TokenService) Gateway {
	return &gateway{tokens: tokens}
}

func (g *gateway) Authorize(headers http.Header) (uint64, error) {
	raw := strings.TrimSpace(headerValue(headers, constant.AuthTokenHeader))
	if raw == "" {
		return 0, errors.SetCustomError(constant.ErrMissingToken)
	}

	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return 0, errors.SetCustomError(constant.ErrInvalidToken)
	}
	return claims.UserID, nil
}

// headerValue matches name case-insensitively, including keys that were
// stored without canonicalization.
func headerValue(headers http.Header, name string) string {
	if v := headers.Get(name); v != "" {
		return v
	}
	for k, vs := range headers {
		if strings.EqualFold(k, name) && len(vs) > 0 {
			return vs[0]
		}
	}
	return ""
}
