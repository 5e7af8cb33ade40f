package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// handleEvents streams ledger snapshots as server-sent events. The current
// snapshot is delivered immediately, then one event per ledger change for as
// long as the client stays connected.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	snapshots, cancel := s.ledger.Subscribe()
	defer cancel()

	log := s.logger.WithField("request_id", RequestID(r.Context()))
	log.Debug("snapshot stream opened")
	defer log.Debug("snapshot stream closed")

	for {
		select {
		case <-r.Context().Done():
			return
		case state, open := <-snapshots:
			if !open {
				return
			}
			payload, err := json.Marshal(state)
			if err != nil {
				log.WithError(err).Error("failed to encode snapshot event")
				return
			}
			fmt.Fprintf(w, "event: home\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
