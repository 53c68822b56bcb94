package middleware

import (
	"fmt"
	"net/http"

	"github.com/maresdigital/brandhub-backend/api/responses"
	pkgerrors "github.com/maresdigital/brandhub-backend/pkg/errors"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
)

// RequireRole rejects requests whose authenticated actor does not carry
// the given role.
func RequireRole(role string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				err := pkgerrors.New(pkgerrors.CodeForbidden, fmt.Sprintf("%s role required", role))
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
