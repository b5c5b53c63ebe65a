package response

import (
	"net/http"
	"strings"
)

// StreamDone is the payload of the event that closes a stream
const StreamDone = "[DONE]"

// EventStream writes Server-Sent Events and flushes each one to the client
type EventStream struct {
	w  http.ResponseWriter
	rc *http.ResponseController
}

// NewEventStream sends the event-stream headers with 200 OK
func NewEventStream(w http.ResponseWriter) *EventStream {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	return &EventStream{w: w, rc: http.NewResponseController(w)}
}

// Send writes one event. Every line of a multi-line payload gets its own data field.
func (s *EventStream) Send(payload string) error {
	var b strings.Builder
	for _, line := range strings.Split(payload, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if _, err := s.w.Write([]byte(b.String())); err != nil {
		return err
	}
	return s.rc.Flush()
}

// Done writes the closing event
func (s *EventStream) Done() error {
	return s.Send(StreamDone)
}
