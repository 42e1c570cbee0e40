package server

import (
	"net/http"
)

func adminAuthMiddleware(admin *AdminStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := adminSessionID(r)
			if id == "" {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if err := admin.Session(r.Context(), id); err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
