package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/guipratiko/onlyhelper-back/internal/core/errors"
)

func TestNewMessage(t *testing.T) {
	ticketID := uuid.New()
	attendantID := uuid.New()
	attendant := Caller{UserID: &attendantID, Role: RoleAttendant}
	visitor := Anonymous("sess-1")

	t.Run("text only from visitor", func(t *testing.T) {
		msg, err := NewMessage(MessageParams{
			TicketID: ticketID,
			Content:  "  hello there  ",
			Sender:   visitor,
		})
		require.NoError(t, err)
		assert.Equal(t, "hello there", msg.Content)
		assert.Equal(t, SenderVisitor, msg.SenderType)
		assert.Nil(t, msg.SenderID)
		assert.Nil(t, msg.AttachmentData)
	})

	t.Run("text only from attendant", func(t *testing.T) {
		msg, err := NewMessage(MessageParams{
			TicketID: ticketID,
			Content:  "how can I help?",
			Sender:   attendant,
		})
		require.NoError(t, err)
		assert.Equal(t, SenderAttendant, msg.SenderType)
		require.NotNil(t, msg.SenderID)
		assert.Equal(t, attendantID, *msg.SenderID)
	})

	t.Run("attachment only stores placeholder content", func(t *testing.T) {
		msg, err := NewMessage(MessageParams{
			TicketID:   ticketID,
			Content:    "   ",
			Attachment: "data:image/png;base64,iVBORw0KGgo=",
			Sender:     visitor,
		})
		require.NoError(t, err)
		assert.Equal(t, " ", msg.Content)
		require.NotNil(t, msg.AttachmentData)
		assert.True(t, msg.HasAttachment())
	})

	t.Run("empty message rejected", func(t *testing.T) {
		_, err := NewMessage(MessageParams{
			TicketID: ticketID,
			Content:  "   \n\t ",
			Sender:   visitor,
		})
		assert.ErrorIs(t, err, apperrors.ErrEmptyMessage)
	})

	t.Run("non-image attachment rejected", func(t *testing.T) {
		_, err := NewMessage(MessageParams{
			TicketID:   ticketID,
			Attachment: "data:application/pdf;base64,JVBERi0=",
			Sender:     visitor,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidAttachment)
	})

	t.Run("oversized attachment rejected", func(t *testing.T) {
		big := "data:image/png;base64," + strings.Repeat("A", 64)
		_, err := NewMessage(MessageParams{
			TicketID:           ticketID,
			Attachment:         big,
			Sender:             visitor,
			MaxAttachmentBytes: 32,
		})
		assert.ErrorIs(t, err, apperrors.ErrAttachmentTooLarge)
	})
}
