package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttachmentRepository struct {
	pool *pgxpool.Pool
}

func NewAttachmentRepository(pool *pgxpool.Pool) *AttachmentRepository {
	return &AttachmentRepository{pool: pool}
}

// InsertBatch stores all attachments for owner in one round trip. Callers run it inside
// a transaction so that either every row lands or none does.
func (r *AttachmentRepository) InsertBatch(ctx context.Context, owner model.AttachmentOwner, items []model.Attachment) ([]model.Attachment, error) {
	defer logger.DeferLogDuration("attachment.InsertBatch", time.Now())()
	var messageID string
	switch o := owner.(type) {
	case model.MessageOwner:
		messageID = o.MessageID
	default:
		return nil, fmt.Errorf("attachmentRepo.InsertBatch: unsupported owner %T", owner)
	}
	if len(items) == 0 {
		return []model.Attachment{}, nil
	}

	batch := &pgx.Batch{}
	for i := range items {
		a := items[i]
		var thumb *string
		if a.ThumbnailURL != "" {
			thumb = &a.ThumbnailURL
		}
		batch.Queue(
			`INSERT INTO message_attachments (owner_kind, message_id, attachment_type, file_url, file_name, file_size, mime_type, thumbnail_url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 RETURNING id, created_at`,
			owner.OwnerKind(), messageID, a.Type, a.FileURL, a.FileName, a.FileSize, a.MimeType, thumb,
		)
	}

	out := make([]model.Attachment, len(items))
	copy(out, items)
	br := conn(ctx, r.pool).SendBatch(ctx, batch)
	defer br.Close()
	for i := range out {
		if err := br.QueryRow().Scan(&out[i].ID, &out[i].CreatedAt); err != nil {
			return nil, fmt.Errorf("attachmentRepo.InsertBatch #%d: %w", i, mapPgError(err))
		}
		out[i].Owner = owner
		out[i].MessageID = messageID
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("attachmentRepo.InsertBatch close: %w", mapPgError(err))
	}
	return out, nil
}

// ListForMessages returns attachments keyed by message id in creation order.
func (r *AttachmentRepository) ListForMessages(ctx context.Context, messageIDs []string) (map[string][]model.Attachment, error) {
	defer logger.DeferLogDuration("attachment.ListForMessages", time.Now())()
	out := make(map[string][]model.Attachment, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT id, message_id, attachment_type, file_url, file_name, file_size, mime_type,
		        COALESCE(thumbnail_url, ''), created_at
		 FROM message_attachments
		 WHERE message_id = ANY($1::uuid[])
		 ORDER BY created_at, id`, messageIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListForMessages query: %w", mapPgError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var a model.Attachment
		if err := rows.Scan(&a.ID, &a.MessageID, &a.Type, &a.FileURL, &a.FileName, &a.FileSize, &a.MimeType,
			&a.ThumbnailURL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("attachmentRepo.ListForMessages scan: %w", err)
		}
		a.Owner = model.MessageOwner{MessageID: a.MessageID}
		out[a.MessageID] = append(out[a.MessageID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attachmentRepo.ListForMessages rows: %w", err)
	}
	return out, nil
}
