package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
)

// MessageRepository persists ticket transcripts. Messages are
// append-only; there is no update or delete path.
type MessageRepository struct {
	pool *pgxpool.Pool
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Insert(ctx context.Context, message *domain.Message) error {
	query := `
		INSERT INTO messages (id, ticket_id, sender_type, sender_id, content, attachment_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.TicketID,
		message.SenderType,
		message.SenderID,
		message.Content,
		message.AttachmentData,
		message.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert message", err)
	}
	return nil
}

func (r *MessageRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, ticket_id, sender_type, sender_id, content, attachment_data, created_at
		FROM messages
		WHERE ticket_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, wrapErr("list messages", err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var message domain.Message
		err := rows.Scan(
			&message.ID,
			&message.TicketID,
			&message.SenderType,
			&message.SenderID,
			&message.Content,
			&message.AttachmentData,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, wrapErr("scan message", err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list messages", err)
	}
	return messages, nil
}
