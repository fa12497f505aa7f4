package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sandesh/prepquiz/internal/event"
	"github.com/sandesh/prepquiz/internal/logger"
)

// handleEvents streams state-change notifications over SSE. The UI subscribes
// here instead of polling the quiz and usage endpoints.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Slow consumers drop events rather than block the publishers.
	ch := make(chan event.Event, 16)
	unsubscribe := s.Bus.Subscribe(func(ev event.Event) {
		select {
		case ch <- ev:
		default:
		}
	})
	defer unsubscribe()

	log.Debug("event stream opened")
	for {
		select {
		case <-r.Context().Done():
			log.Debug("event stream closed")
			return
		case ev := <-ch:
			data, err := json.Marshal(ev)
			if err != nil {
				log.Error("failed to marshal event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
			flusher.Flush()
		}
	}
}
