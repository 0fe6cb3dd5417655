// Package admin holds the handlers mounted under /api/admin. Every route here
// sits behind Auth and RequireRole(admin).
package admin

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const defaultListLimit = 50

func respond(w http.ResponseWriter, r *http.Request, logg *logger.Logger, status int, data any, err error) {
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccessStatus(w, status, data)
}

var deleted = map[string]string{"status": "deleted"}
