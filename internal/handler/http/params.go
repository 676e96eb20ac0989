package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/handler/http/middleware"
	"github.com/didacticiel/Gpresence/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// pathID parses the {id} URL parameter, answering 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid id", map[string]string{"id": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// caller returns the identity set by the auth middleware.
func caller(w http.ResponseWriter, r *http.Request) (user.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return user.Identity{}, false
	}
	return identity, true
}

// decodeBody reads the JSON request body into v. A malformed body answers
// 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Warn("Malformed request body", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
