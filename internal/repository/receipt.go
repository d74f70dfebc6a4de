package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReceiptRepository хранит множества прочитавших (message_reads) и водяной знак
// conversation_participants.last_read_at.
type ReceiptRepository struct {
	pool *pgxpool.Pool
}

func NewReceiptRepository(pool *pgxpool.Pool) *ReceiptRepository {
	return &ReceiptRepository{pool: pool}
}

// AddReader adds readerID to the read set of messageID. It reports false when the reader
// is the sender or was already in the set.
func (r *ReceiptRepository) AddReader(ctx context.Context, messageID, readerID string) (bool, error) {
	defer logger.DeferLogDuration("receipt.AddReader", time.Now())()
	q := conn(ctx, r.pool)
	tag, err := q.Exec(ctx,
		`INSERT INTO message_reads (message_id, user_id)
		 SELECT m.id, $2 FROM messages m WHERE m.id = $1 AND m.sender_id <> $2
		 ON CONFLICT DO NOTHING`,
		messageID, readerID,
	)
	if err != nil {
		return false, fmt.Errorf("receiptRepo.AddReader: %w", mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := q.Exec(ctx, `UPDATE messages SET read_at = now() WHERE id = $1`, messageID); err != nil {
		return false, fmt.Errorf("receiptRepo.AddReader read_at: %w", mapPgError(err))
	}
	return true, nil
}

// AdvanceWatermark moves the reader's last_read_at up to the message's created_at when no
// older message from someone else is still unread by them.
func (r *ReceiptRepository) AdvanceWatermark(ctx context.Context, messageID, readerID string) error {
	defer logger.DeferLogDuration("receipt.AdvanceWatermark", time.Now())()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE conversation_participants cp
		 SET last_read_at = m.created_at
		 FROM messages m
		 WHERE m.id = $1
		   AND cp.conversation_id = m.conversation_id
		   AND cp.user_id = $2
		   AND (cp.last_read_at IS NULL OR cp.last_read_at < m.created_at)
		   AND NOT EXISTS (
		       SELECT 1 FROM messages o
		       WHERE o.conversation_id = m.conversation_id
		         AND o.sender_id <> $2
		         AND (o.created_at, o.seq) < (m.created_at, m.seq)
		         AND NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = o.id AND mr.user_id = $2)
		   )`,
		messageID, readerID,
	)
	if err != nil {
		return fmt.Errorf("receiptRepo.AdvanceWatermark: %w", mapPgError(err))
	}
	return nil
}

// MarkAllRead adds readerID to the read set of every message in the conversation not
// authored by them, in one statement, and returns the ids that were newly marked.
func (r *ReceiptRepository) MarkAllRead(ctx context.Context, conversationID, readerID string) ([]string, error) {
	defer logger.DeferLogDuration("receipt.MarkAllRead", time.Now())()
	q := conn(ctx, r.pool)
	rows, err := q.Query(ctx,
		`WITH ins AS (
		     INSERT INTO message_reads (message_id, user_id)
		     SELECT m.id, $2 FROM messages m
		     WHERE m.conversation_id = $1 AND m.sender_id <> $2
		     ON CONFLICT DO NOTHING
		     RETURNING message_id
		 )
		 UPDATE messages SET read_at = now()
		 WHERE id IN (SELECT message_id FROM ins)
		 RETURNING id::text`,
		conversationID, readerID,
	)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.MarkAllRead: %w", mapPgError(err))
	}
	defer rows.Close()
	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("receiptRepo.MarkAllRead scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("receiptRepo.MarkAllRead rows: %w", mapPgError(err))
	}
	rows.Close()
	if len(ids) == 0 {
		return ids, nil
	}

	// водяной знак двигается только по отмеченным сейчас сообщениям и не перескакивает
	// через непрочитанное, вставленное между двумя запросами
	_, err = q.Exec(ctx,
		`UPDATE conversation_participants cp
		 SET last_read_at = GREATEST(cp.last_read_at, (
		     SELECT max(m.created_at) FROM messages m
		     WHERE m.id = ANY($3::uuid[])
		       AND NOT EXISTS (
		           SELECT 1 FROM messages o
		           WHERE o.conversation_id = $1
		             AND o.sender_id <> $2
		             AND (o.created_at, o.seq) < (m.created_at, m.seq)
		             AND NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = o.id AND mr.user_id = $2)
		       )))
		 WHERE cp.conversation_id = $1 AND cp.user_id = $2`,
		conversationID, readerID, ids,
	)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.MarkAllRead watermark: %w", mapPgError(err))
	}
	return ids, nil
}

// UnreadCount counts messages in the conversation authored by others and not read by userID.
func (r *ReceiptRepository) UnreadCount(ctx context.Context, conversationID, userID string) (int, error) {
	defer logger.DeferLogDuration("receipt.UnreadCount", time.Now())()
	var n int
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT count(*) FROM messages m
		 WHERE m.conversation_id = $1 AND m.sender_id <> $2
		   AND NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = m.id AND mr.user_id = $2)`,
		conversationID, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("receiptRepo.UnreadCount: %w", mapPgError(err))
	}
	return n, nil
}

// UnreadCounts is UnreadCount for many conversations at once. Conversations with nothing
// unread are absent from the result.
func (r *ReceiptRepository) UnreadCounts(ctx context.Context, conversationIDs []string, userID string) (map[string]int, error) {
	defer logger.DeferLogDuration("receipt.UnreadCounts", time.Now())()
	out := make(map[string]int, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT m.conversation_id::text, count(*) FROM messages m
		 WHERE m.conversation_id = ANY($1::uuid[]) AND m.sender_id <> $2
		   AND NOT EXISTS (SELECT 1 FROM message_reads mr WHERE mr.message_id = m.id AND mr.user_id = $2)
		 GROUP BY m.conversation_id`,
		conversationIDs, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.UnreadCounts query: %w", mapPgError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("receiptRepo.UnreadCounts scan: %w", err)
		}
		out[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("receiptRepo.UnreadCounts rows: %w", err)
	}
	return out, nil
}

// Readers returns the read set of each message keyed by message id.
func (r *ReceiptRepository) Readers(ctx context.Context, messageIDs []string) (map[string][]string, error) {
	defer logger.DeferLogDuration("receipt.Readers", time.Now())()
	out := make(map[string][]string, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT message_id::text, user_id::text FROM message_reads
		 WHERE message_id = ANY($1::uuid[])
		 ORDER BY read_at, user_id`, messageIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("receiptRepo.Readers query: %w", mapPgError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var msgID, userID string
		if err := rows.Scan(&msgID, &userID); err != nil {
			return nil, fmt.Errorf("receiptRepo.Readers scan: %w", err)
		}
		out[msgID] = append(out[msgID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("receiptRepo.Readers rows: %w", err)
	}
	return out, nil
}
