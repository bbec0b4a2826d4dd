package push

import (
	"io"
	"strings"
	"testing"
)

func TestReaderParsesFrames(t *testing.T) {
	stream := ": stream started\n\n" +
		"event: foia_submitted\n" +
		"data: {\"request_id\":\"r-1\"}\n" +
		"\n" +
		"data: {\"plain\":true}\n" +
		"\n"

	r := NewReader(strings.NewReader(stream))

	evt, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if evt.Type != "foia_submitted" {
		t.Errorf("Type = %q", evt.Type)
	}
	if string(evt.Data) != `{"request_id":"r-1"}` {
		t.Errorf("Data = %s", evt.Data)
	}

	evt, err = r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if evt.Type != "message" {
		t.Errorf("default Type = %q, want message", evt.Type)
	}

	if _, err = r.Next(); err != io.EOF {
		t.Errorf("err = %v at end of stream, want io.EOF", err)
	}
}

func TestReaderJoinsMultiLineData(t *testing.T) {
	stream := "event: scan_complete\n" +
		"data: {\"articles\":\n" +
		"data: 12}\n" +
		"\n"

	r := NewReader(strings.NewReader(stream))
	evt, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(evt.Data) != "{\"articles\":\n12}" {
		t.Errorf("Data = %q", evt.Data)
	}
}

func TestReaderSkipsCommentsAndUnknownFields(t *testing.T) {
	stream := ": keep-alive\n\n" +
		"id: 44\n" +
		"retry: 3000\n" +
		"event: video_published\n" +
		"data: {}\n" +
		"\n"

	r := NewReader(strings.NewReader(stream))
	evt, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if evt.Type != "video_published" {
		t.Errorf("Type = %q", evt.Type)
	}
}

func TestReaderEventWithoutDataIsNotEmitted(t *testing.T) {
	// A frame with only an event field and no data is a keep-alive in
	// practice; the next real frame must come through unpolluted.
	stream := "event: ghost\n\n" +
		"event: foia_response_received\ndata: {}\n\n"

	r := NewReader(strings.NewReader(stream))
	evt, err := r.Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if evt.Type != "foia_response_received" {
		t.Errorf("Type = %q, want foia_response_received", evt.Type)
	}
}
