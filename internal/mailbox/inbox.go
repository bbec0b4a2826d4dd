package mailbox

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/foiadesk/foiadesk/internal/model"
)

// fetchWindow bounds how far back the inbox looks; agency responses
// older than this live in the archive mailbox.
const fetchWindow = 30 * 24 * time.Hour

// Inbox adapts the response mailbox into paged inbox items with FOIA
// tracking numbers extracted from subject lines.
type Inbox struct {
	client   *IMAPClient
	tracking *regexp.Regexp
}

// NewInbox creates an inbox over the configured mailbox. The password
// is supplied separately (environment or prompt); it is never written
// to the config file.
func NewInbox(cfg model.MailboxConfig, password string) (*Inbox, error) {
	pattern, err := regexp.Compile(cfg.TrackingPattern)
	if err != nil {
		return nil, fmt.Errorf("compiling tracking pattern %q: %w", cfg.TrackingPattern, err)
	}
	return &Inbox{
		client:   NewIMAPClient(cfg.Host, cfg.Port, cfg.Username, password, cfg.TLS),
		tracking: pattern,
	}, nil
}

// Validate verifies the mailbox credentials.
func (in *Inbox) Validate(ctx context.Context) error {
	return in.client.Validate(ctx)
}

// Fetch returns one page of inbox messages, newest first, plus the
// total message count for the pager.
func (in *Inbox) Fetch(ctx context.Context, page, pageSize int) ([]model.InboxMessage, int, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if page < 1 {
		page = 1
	}

	envelopes, err := in.client.fetchEnvelopes(ctx, fetchWindow, 500)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching inbox: %w", err)
	}

	messages := make([]model.InboxMessage, 0, len(envelopes))
	for _, env := range envelopes {
		messages = append(messages, in.toMessage(env))
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].ReceivedAt.After(messages[j].ReceivedAt)
	})

	total := len(messages)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return messages[start:end], total, nil
}

// Body retrieves the text body of a message by its inbox ID (the IMAP
// UID in decimal).
func (in *Inbox) Body(ctx context.Context, id string) (string, error) {
	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return "", fmt.Errorf("invalid inbox message id %q: %w", id, err)
	}
	return in.client.fetchBody(ctx, uint32(uid))
}

// MarkSeen flags a message as seen in the mailbox.
func (in *Inbox) MarkSeen(ctx context.Context, id string) error {
	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid inbox message id %q: %w", id, err)
	}
	return in.client.markSeen(ctx, uint32(uid))
}

// toMessage maps an IMAP envelope to an inbox item, extracting the
// FOIA tracking number when the subject carries one.
func (in *Inbox) toMessage(env envelope) model.InboxMessage {
	id := strconv.FormatUint(uint64(env.UID), 10)
	if env.UID == 0 {
		// Some servers omit UIDs on rare fetch paths; keep the row
		// addressable anyway.
		id = uuid.NewString()
	}

	return model.InboxMessage{
		ID:             id,
		From:           env.From,
		Subject:        env.Subject,
		TrackingNumber: in.tracking.FindString(env.Subject),
		Seen:           env.Seen,
		ReceivedAt:     env.Date,
	}
}
