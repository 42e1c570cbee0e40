package server

import (
	"net/http"

	"github.com/summitkit/checkin/internal/checkin"
)

// AdminRosterResponse is the full persisted record, timestamps included.
type AdminRosterResponse struct {
	Goal  int           `json:"goal"`
	State checkin.State `json:"state"`
}

func handleAdminRoster(ctrl *checkin.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, AdminRosterResponse{
			Goal:  ctrl.Goal(),
			State: ctrl.State(),
		})
	}
}
