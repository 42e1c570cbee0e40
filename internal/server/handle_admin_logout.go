package server

import (
	"log/slog"
	"net/http"
)

func handleAdminLogout(logger *slog.Logger, admin *AdminStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if id := adminSessionID(r); id != "" {
			if err := admin.Logout(r.Context(), id); err != nil {
				logger.Warn("ending admin session", "error", err)
			}
		}

		setAdminCookie(w, "", -1)
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
