package mailbox

import (
	"regexp"
	"testing"
	"time"
)

func TestTrackingNumberExtraction(t *testing.T) {
	in := &Inbox{tracking: regexp.MustCompile(`[A-Z]{1,4}-\d{4}-\d{3,6}`)}

	cases := []struct {
		subject string
		want    string
	}{
		{"RE: FOIA Request F-2026-01441 - Interim Response", "F-2026-01441"},
		{"Your request DOJ-2025-4410 has been received", "DOJ-2025-4410"},
		{"Records center maintenance window", ""},
	}

	for _, tc := range cases {
		msg := in.toMessage(envelope{
			UID:     17,
			Subject: tc.subject,
			From:    "records@agency.gov",
			Date:    time.Now(),
		})
		if msg.TrackingNumber != tc.want {
			t.Errorf("subject %q: tracking = %q, want %q",
				tc.subject, msg.TrackingNumber, tc.want)
		}
		if msg.ID != "17" {
			t.Errorf("ID = %q, want IMAP UID in decimal", msg.ID)
		}
	}
}

func TestSeenFlagCarriedThrough(t *testing.T) {
	in := &Inbox{tracking: regexp.MustCompile(`X-\d+`)}

	msg := in.toMessage(envelope{UID: 3, Subject: "ack", Seen: true})
	if !msg.Seen {
		t.Error("seen flag lost")
	}
}
