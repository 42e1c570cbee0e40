package server

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/summitkit/checkin/internal/checkin"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	EventName string
	View      checkin.View
}

// Teams lets the template list the select options in registry order.
func (pageData) Teams() []checkin.Team { return checkin.Teams }

func handlePage(logger *slog.Logger, ctrl *checkin.Controller, eventName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, logger, pageData{EventName: eventName, View: ctrl.View()})
	}
}

// renderPage executes into a buffer so a template error never leaves a
// half-written page behind.
func renderPage(w http.ResponseWriter, logger *slog.Logger, data pageData) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		logger.Error("rendering page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
