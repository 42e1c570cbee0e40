package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/summitkit/checkin/internal/checkin"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Check-In API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Event check-in: team counters, attendee roster and goal celebration.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/checkins
	postCheckIn, _ := r.NewOperationContext(http.MethodPost, "/api/checkins")
	postCheckIn.SetSummary("Check in")
	postCheckIn.SetDescription("Records one attendee. A blank name or team is ignored and returns accepted=false.")
	postCheckIn.AddReqStructure(CheckInRequest{})
	postCheckIn.AddRespStructure(CheckInResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postCheckIn.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postCheckIn)

	// GET /api/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/state")
	getState.SetSummary("Current view")
	getState.SetDescription("Counters, progress, roster and any visible greeting or celebration.")
	getState.AddRespStructure(checkin.View{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getState)

	// POST /api/celebration/dismiss
	postDismiss, _ := r.NewOperationContext(http.MethodPost, "/api/celebration/dismiss")
	postDismiss.SetSummary("Dismiss celebration")
	postDismiss.SetDescription("Hides the goal banner before it times out.")
	postDismiss.AddRespStructure(checkin.View{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postDismiss)

	// GET /api/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of view snapshots, one `view` event per change.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /qr.png
	getQR, _ := r.NewOperationContext(http.MethodGet, "/qr.png")
	getQR.SetSummary("Check-in QR code")
	getQR.SetDescription("PNG QR code linking to the check-in page.")
	getQR.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("image/png"))
	_ = r.AddOperation(getQR)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with the admin password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/roster
	getRoster, _ := r.NewOperationContext(http.MethodGet, "/api/admin/roster")
	getRoster.SetSummary("Attendance record")
	getRoster.SetDescription("Returns the persisted attendance record with timestamps. Requires admin_session cookie.")
	getRoster.AddRespStructure(AdminRosterResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getRoster.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getRoster)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
