package http

import (
	"fmt"
	"net/http"

	"biblioteca-gateway/internal/events"
)

// EventsHandler bridges the in-process bus to listening views over
// Server-Sent Events. Delivery stays best-effort: a view that connects after
// a publish simply refreshes on its next signal, and every signal is an
// idempotent refresh hint.
type EventsHandler struct {
	bus *events.Bus
}

func NewEventsHandler(bus *events.Bus) *EventsHandler {
	return &EventsHandler{bus: bus}
}

func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := h.bus.Subscribe(events.TopicSanctionsUpdated, events.TopicLoansUpdated, events.TopicCatalogUpdated)
	defer h.bus.Unsubscribe(sub)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-sub.C:
			fmt.Fprintf(w, "event: %s\ndata: {}\n\n", ev.Topic)
			flusher.Flush()
		}
	}
}
