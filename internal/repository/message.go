package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// messageCols: колонки сообщения и краткие данные отправителя (порядок соответствует scanMessage).
const messageCols = `m.id, m.conversation_id, m.sender_id, m.message_type, m.content,
		m.media_url, m.media_name, m.media_size, m.media_mime, m.media_thumbnail, m.voice_duration,
		m.created_at, m.is_edited, m.edited_at, m.read_at,
		u.username, u.display_name, u.avatar_url`

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func scanMessage(s interface{ Scan(dest ...any) error }, m *model.Message) error {
	var (
		url, name, mime, thumb *string
		size                   *int64
		duration               float64
		sender                 model.UserPublic
	)
	err := s.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Type, &m.Content,
		&url, &name, &size, &mime, &thumb, &duration,
		&m.CreatedAt, &m.IsEdited, &m.EditedAt, &m.ReadAt,
		&sender.Username, &sender.DisplayName, &sender.AvatarURL)
	if err != nil {
		return err
	}
	sender.ID = m.SenderID
	m.Sender = &sender
	if url != nil {
		m.Media = &model.Media{URL: *url, VoiceDuration: duration}
		if name != nil {
			m.Media.Name = *name
		}
		if size != nil {
			m.Media.Size = *size
		}
		if mime != nil {
			m.Media.MimeType = *mime
		}
		if thumb != nil {
			m.Media.ThumbnailURL = *thumb
		}
	}
	m.Attachments = []model.Attachment{}
	m.Reactions = []model.Reaction{}
	m.ReadBy = []string{}
	return nil
}

// Insert stores m; id and created_at are assigned by the database.
func (r *MessageRepository) Insert(ctx context.Context, m *model.Message) error {
	defer logger.DeferLogDuration("msg.Insert", time.Now())()
	var (
		url, name, mime, thumb *string
		size                   *int64
		duration               float64
	)
	if m.Media != nil {
		url, name, mime = &m.Media.URL, &m.Media.Name, &m.Media.MimeType
		size = &m.Media.Size
		if m.Media.ThumbnailURL != "" {
			thumb = &m.Media.ThumbnailURL
		}
		duration = m.Media.VoiceDuration
	}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO messages (conversation_id, sender_id, message_type, content,
		                       media_url, media_name, media_size, media_mime, media_thumbnail, voice_duration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		m.ConversationID, m.SenderID, m.Type, m.Content, url, name, size, mime, thumb, duration,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("msgRepo.Insert: %w", mapPgError(err))
	}
	return nil
}

func (r *MessageRepository) GetByID(ctx context.Context, id string) (*model.Message, error) {
	defer logger.DeferLogDuration("msg.GetByID", time.Now())()
	m := &model.Message{}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+messageCols+`
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.id = $1`, id)
	if err := scanMessage(row, m); err != nil {
		return nil, fmt.Errorf("msgRepo.GetByID: %w", mapPgError(err))
	}
	return m, nil
}

// Page returns up to limit messages of a conversation, newest first.
func (r *MessageRepository) Page(ctx context.Context, conversationID string, limit, offset int) ([]model.Message, error) {
	defer logger.DeferLogDuration("msg.Page", time.Now())()
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+messageCols+`
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.conversation_id = $1
		 ORDER BY m.created_at DESC, m.seq DESC
		 LIMIT $2 OFFSET $3`, conversationID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.Page query: %w", mapPgError(err))
	}
	defer rows.Close()

	messages := make([]model.Message, 0, limit)
	for rows.Next() {
		var m model.Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, fmt.Errorf("msgRepo.Page scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("msgRepo.Page rows: %w", err)
	}
	return messages, nil
}

func (r *MessageRepository) Count(ctx context.Context, conversationID string) (int, error) {
	defer logger.DeferLogDuration("msg.Count", time.Now())()
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT count(*) FROM messages WHERE conversation_id = $1`, conversationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("msgRepo.Count: %w", mapPgError(err))
	}
	return n, nil
}

// LastMessages returns the newest message of each conversation keyed by conversation id.
func (r *MessageRepository) LastMessages(ctx context.Context, conversationIDs []string) (map[string]model.Message, error) {
	defer logger.DeferLogDuration("msg.LastMessages", time.Now())()
	out := make(map[string]model.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT DISTINCT ON (m.conversation_id) `+messageCols+`
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.conversation_id = ANY($1::uuid[])
		 ORDER BY m.conversation_id, m.created_at DESC, m.seq DESC`, conversationIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("msgRepo.LastMessages query: %w", mapPgError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var m model.Message
		if err := scanMessage(rows, &m); err != nil {
			return nil, fmt.Errorf("msgRepo.LastMessages scan: %w", err)
		}
		out[m.ConversationID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("msgRepo.LastMessages rows: %w", err)
	}
	return out, nil
}

// UpdateContent sets new content and marks the message edited.
func (r *MessageRepository) UpdateContent(ctx context.Context, id, content string, editedAt time.Time) error {
	defer logger.DeferLogDuration("msg.UpdateContent", time.Now())()
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE messages SET content = $1, is_edited = true, edited_at = $2 WHERE id = $3`,
		content, editedAt, id,
	)
	if err != nil {
		return fmt.Errorf("msgRepo.UpdateContent: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the message; reads, reactions and attachments go with it (ON DELETE CASCADE).
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	defer logger.DeferLogDuration("msg.Delete", time.Now())()
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("msgRepo.Delete: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
