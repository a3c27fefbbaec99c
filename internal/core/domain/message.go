package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

// SenderType identifies which side of the conversation authored a
// message. It is derived from whether the request carried an
// authenticated identity, never from client input.
type SenderType string

const (
	SenderVisitor   SenderType = "visitor"
	SenderAttendant SenderType = "attendant"
)

const (
	// attachmentPrefix is the data-URI prefix an inline image payload
	// must carry to be accepted.
	attachmentPrefix = "data:image/"

	// DefaultMaxAttachmentBytes caps the encoded attachment payload.
	DefaultMaxAttachmentBytes = 5 << 20

	// attachmentPlaceholder is stored as content for attachment-only
	// messages; the content column is non-nullable.
	attachmentPlaceholder = " "
)

// Message is one chat entry on a ticket. Messages are append-only:
// created once, never mutated or deleted.
type Message struct {
	ID             uuid.UUID  `json:"id"`
	TicketID       uuid.UUID  `json:"ticketId"`
	SenderType     SenderType `json:"senderType"`
	SenderID       *uuid.UUID `json:"senderId"`
	Content        string     `json:"content"`
	AttachmentData *string    `json:"attachmentData"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// HasAttachment reports whether the message carries an inline image.
func (m *Message) HasAttachment() bool {
	return m.AttachmentData != nil && *m.AttachmentData != ""
}

// MessageParams holds the inputs for composing a new message.
type MessageParams struct {
	TicketID           uuid.UUID
	Content            string
	Attachment         string
	Sender             Caller
	MaxAttachmentBytes int
}

// NewMessage validates and builds a message. Content is trimmed; a
// message must have non-empty text or a well-formed image attachment.
// Attachment-only messages get a single-space content placeholder.
func NewMessage(params MessageParams) (*Message, error) {
	text := strings.TrimSpace(params.Content)

	hasAttachment := params.Attachment != ""
	if hasAttachment {
		if !strings.HasPrefix(params.Attachment, attachmentPrefix) {
			return nil, apperrors.ErrInvalidAttachment
		}
		maxBytes := params.MaxAttachmentBytes
		if maxBytes <= 0 {
			maxBytes = DefaultMaxAttachmentBytes
		}
		if len(params.Attachment) > maxBytes {
			return nil, apperrors.ErrAttachmentTooLarge
		}
	}

	if text == "" && !hasAttachment {
		return nil, apperrors.ErrEmptyMessage
	}

	msg := &Message{
		ID:         uuid.New(),
		TicketID:   params.TicketID,
		Content:    text,
		CreatedAt:  time.Now().UTC(),
		SenderType: SenderVisitor,
	}
	if text == "" {
		msg.Content = attachmentPlaceholder
	}
	if hasAttachment {
		attachment := params.Attachment
		msg.AttachmentData = &attachment
	}
	if params.Sender.Authenticated() {
		msg.SenderType = SenderAttendant
		msg.SenderID = params.Sender.UserID
	}

	return msg, nil
}
