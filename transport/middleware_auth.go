package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/softglass/calculator-backend/application/auth"
	"github.com/softglass/calculator-backend/constant"
	utilsContext "github.com/softglass/calculator-backend/utils/context"
	"github.com/softglass/calculator-backend/utils/errors"
)

// AuthMiddleware resolves the caller from X-Auth-Token through the gateway
// and stores the user id in the request context. It is applied per route so
// preflight requests stay public. missing is the error written when the
// header is absent; endpoints word that case differently.
func AuthMiddleware(gateway auth.Gateway, missing constant.ErrorType) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := gateway.Authorize(r.Header)
			if errors.Is(err, constant.ErrMissingToken) {
				err = errors.SetCustomError(missing)
			}
			if err != nil {
				writeError(w, err)
				return
			}

			ctx := utilsContext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
