package push

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
)

// Event is one server-pushed message: a type tag routing it to a
// handler, and the raw JSON payload.
type Event struct {
	Type string
	Data json.RawMessage
}

// Reader incrementally parses a text/event-stream body into events.
// Frames are `event:`/`data:` line groups terminated by a blank line;
// `:` comment lines and unknown fields (`id:`, `retry:`) are skipped.
type Reader struct {
	scanner *bufio.Scanner
}

// NewReader wraps r, which should be the body of an open SSE response.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	// Payloads are small JSON documents, but allow headroom for
	// batched notification events.
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	return &Reader{scanner: sc}
}

// Next blocks until a complete frame arrives and returns it. It returns
// io.EOF when the stream ends cleanly and the transport error otherwise.
func (r *Reader) Next() (Event, error) {
	eventType := ""
	var dataLines []string

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if line == "" {
			// Frame boundary. Frames with no data (comments,
			// keep-alives) are not events; keep reading.
			if len(dataLines) == 0 {
				eventType = ""
				continue
			}
			evt := Event{
				Type: eventType,
				Data: json.RawMessage(strings.Join(dataLines, "\n")),
			}
			if evt.Type == "" {
				evt.Type = "message"
			}
			return evt, nil
		}

		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value := splitField(line)
		switch field {
		case "event":
			eventType = value
		case "data":
			dataLines = append(dataLines, value)
		}
	}

	if err := r.scanner.Err(); err != nil {
		return Event{}, err
	}
	return Event{}, io.EOF
}

// splitField separates an SSE line into field name and value, trimming
// the single optional space after the colon.
func splitField(line string) (string, string) {
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}
