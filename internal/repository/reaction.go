package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReactionRepository struct {
	pool *pgxpool.Pool
}

func NewReactionRepository(pool *pgxpool.Pool) *ReactionRepository {
	return &ReactionRepository{pool: pool}
}

// Upsert stores the reaction of userID on messageID; a repeat reaction replaces the type.
func (r *ReactionRepository) Upsert(ctx context.Context, messageID, userID string, rt model.ReactionType) (*model.Reaction, error) {
	defer logger.DeferLogDuration("reaction.Upsert", time.Now())()
	rc := &model.Reaction{MessageID: messageID, UserID: userID}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`WITH up AS (
		     INSERT INTO message_reactions (message_id, user_id, reaction_type)
		     VALUES ($1, $2, $3)
		     ON CONFLICT (message_id, user_id) DO UPDATE SET reaction_type = EXCLUDED.reaction_type
		     RETURNING reaction_type, created_at
		 )
		 SELECT up.reaction_type, up.created_at, u.username FROM up JOIN users u ON u.id = $2`,
		messageID, userID, rt,
	).Scan(&rc.ReactionType, &rc.CreatedAt, &rc.Username)
	if err != nil {
		return nil, fmt.Errorf("reactionRepo.Upsert: %w", mapPgError(err))
	}
	return rc, nil
}

// Delete removes the reaction if present and reports whether a row was deleted.
func (r *ReactionRepository) Delete(ctx context.Context, messageID, userID string) (bool, error) {
	defer logger.DeferLogDuration("reaction.Delete", time.Now())()
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM message_reactions WHERE message_id = $1 AND user_id = $2`,
		messageID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("reactionRepo.Delete: %w", mapPgError(err))
	}
	return tag.RowsAffected() > 0, nil
}

// ListForMessages returns reactions keyed by message id, oldest first.
func (r *ReactionRepository) ListForMessages(ctx context.Context, messageIDs []string) (map[string][]model.Reaction, error) {
	defer logger.DeferLogDuration("reaction.ListForMessages", time.Now())()
	out := make(map[string][]model.Reaction, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT mr.message_id, mr.user_id, mr.reaction_type, u.username, mr.created_at
		 FROM message_reactions mr
		 JOIN users u ON u.id = mr.user_id
		 WHERE mr.message_id = ANY($1::uuid[])
		 ORDER BY mr.created_at, mr.user_id`, messageIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("reactionRepo.ListForMessages query: %w", mapPgError(err))
	}
	defer rows.Close()

	for rows.Next() {
		var rc model.Reaction
		if err := rows.Scan(&rc.MessageID, &rc.UserID, &rc.ReactionType, &rc.Username, &rc.CreatedAt); err != nil {
			return nil, fmt.Errorf("reactionRepo.ListForMessages scan: %w", err)
		}
		out[rc.MessageID] = append(out[rc.MessageID], rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reactionRepo.ListForMessages rows: %w", err)
	}
	return out, nil
}
