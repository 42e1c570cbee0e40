package server

import (
	"log/slog"
	"net/http"

	"github.com/summitkit/checkin/internal/checkin"
)

type CheckInRequest struct {
	Name string `json:"name"`
	Team string `json:"team"`
}

// CheckInResponse reports whether the submission counted. Blank names or
// teams are not errors; they come back with accepted=false.
type CheckInResponse struct {
	Accepted   bool         `json:"accepted"`
	Celebrated bool         `json:"celebrated"`
	View       checkin.View `json:"view"`
}

func handleCheckIn(ctrl *checkin.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CheckInRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res := ctrl.Submit(r.Context(), req.Name, req.Team)
		writeJSON(w, http.StatusOK, CheckInResponse{
			Accepted:   res.Accepted,
			Celebrated: res.Celebrated,
			View:       res.View,
		})
	}
}

// handleCheckInForm serves the HTML form. Accepted check-ins redirect back
// to the page so the inputs come back empty; rejected ones re-render the
// page with the submitted values in place.
func handleCheckInForm(logger *slog.Logger, ctrl *checkin.Controller, eventName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		res := ctrl.Submit(r.Context(), r.PostForm.Get("attendeeName"), r.PostForm.Get("teamSelect"))
		if res.Accepted {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		renderPage(w, logger, pageData{EventName: eventName, View: res.View})
	}
}

func handleState(ctrl *checkin.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, ctrl.View())
	}
}

func handleDismissCelebration(ctrl *checkin.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctrl.DismissCelebration()
		writeJSON(w, http.StatusOK, ctrl.View())
	}
}
