package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/summitkit/checkin/internal/checkin"
)

const pingInterval = 30 * time.Second

// handleEvents streams the view as Server-Sent Events: the current view on
// connect, then one event per change.
func handleEvents(ctrl *checkin.Controller, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := broker.Subscribe()
		defer broker.Unsubscribe(ch)

		initial, err := json.Marshal(ctrl.View())
		if err != nil {
			return
		}
		fmt.Fprintf(w, "event: view\ndata: %s\n\n", initial)
		flusher.Flush()

		ping := time.NewTicker(pingInterval)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case <-broker.Done():
				return
			case data := <-ch:
				fmt.Fprintf(w, "event: view\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
