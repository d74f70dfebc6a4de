package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// conversationSelect выбирает беседу вместе с массивом участников (в порядке вступления).
const conversationSelect = `SELECT c.id, c.is_group, COALESCE(c.group_name, ''), c.created_at, c.updated_at,
		COALESCE(array_agg(p.user_id::text ORDER BY p.joined_at, p.user_id) FILTER (WHERE p.user_id IS NOT NULL), '{}')
	FROM conversations c
	LEFT JOIN conversation_participants p ON p.conversation_id = c.id`

type ConversationRepository struct {
	pool *pgxpool.Pool
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

func scanConversation(s interface{ Scan(dest ...any) error }, c *model.Conversation) error {
	return s.Scan(&c.ID, &c.IsGroup, &c.GroupName, &c.CreatedAt, &c.UpdatedAt, &c.ParticipantIDs)
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*model.Conversation, error) {
	defer logger.DeferLogDuration("conversation.GetByID", time.Now())()
	c := &model.Conversation{}
	row := conn(ctx, r.pool).QueryRow(ctx, conversationSelect+` WHERE c.id = $1 GROUP BY c.id`, id)
	if err := scanConversation(row, c); err != nil {
		return nil, fmt.Errorf("convRepo.GetByID: %w", mapPgError(err))
	}
	return c, nil
}

// FindDirect returns the direct conversation stored under key.
func (r *ConversationRepository) FindDirect(ctx context.Context, key string) (*model.Conversation, error) {
	defer logger.DeferLogDuration("conversation.FindDirect", time.Now())()
	c := &model.Conversation{}
	row := conn(ctx, r.pool).QueryRow(ctx, conversationSelect+` WHERE c.direct_key = $1 GROUP BY c.id`, key)
	if err := scanConversation(row, c); err != nil {
		return nil, fmt.Errorf("convRepo.FindDirect: %w", mapPgError(err))
	}
	return c, nil
}

// CreateDirect inserts a direct conversation between a and b.
// It returns ErrConflict when another writer already holds key; the caller re-reads it.
func (r *ConversationRepository) CreateDirect(ctx context.Context, key, a, b string) (*model.Conversation, error) {
	defer logger.DeferLogDuration("conversation.CreateDirect", time.Now())()
	q := conn(ctx, r.pool)
	c := &model.Conversation{}
	err := q.QueryRow(ctx,
		`INSERT INTO conversations (is_group, direct_key) VALUES (false, $1)
		 ON CONFLICT (direct_key) DO NOTHING
		 RETURNING id, created_at, updated_at`, key,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		err = mapPgError(err)
		if isNotFound(err) {
			// ON CONFLICT DO NOTHING: ключ уже занят
			return nil, fmt.Errorf("convRepo.CreateDirect: %w", ErrConflict)
		}
		return nil, fmt.Errorf("convRepo.CreateDirect: %w", err)
	}
	if err := r.insertParticipants(ctx, q, c.ID, []string{a, b}); err != nil {
		return nil, fmt.Errorf("convRepo.CreateDirect: %w", err)
	}
	c.ParticipantIDs = []string{a, b}
	return c, nil
}

func (r *ConversationRepository) CreateGroup(ctx context.Context, name string, participantIDs []string) (*model.Conversation, error) {
	defer logger.DeferLogDuration("conversation.CreateGroup", time.Now())()
	q := conn(ctx, r.pool)
	c := &model.Conversation{IsGroup: true, GroupName: name}
	var groupName *string
	if name != "" {
		groupName = &name
	}
	err := q.QueryRow(ctx,
		`INSERT INTO conversations (is_group, group_name) VALUES (true, $1)
		 RETURNING id, created_at, updated_at`, groupName,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("convRepo.CreateGroup: %w", mapPgError(err))
	}
	if err := r.insertParticipants(ctx, q, c.ID, participantIDs); err != nil {
		return nil, fmt.Errorf("convRepo.CreateGroup: %w", err)
	}
	c.ParticipantIDs = participantIDs
	return c, nil
}

// AddParticipants is idempotent: existing participants are left untouched.
func (r *ConversationRepository) AddParticipants(ctx context.Context, conversationID string, userIDs []string) error {
	defer logger.DeferLogDuration("conversation.AddParticipants", time.Now())()
	if err := r.insertParticipants(ctx, conn(ctx, r.pool), conversationID, userIDs); err != nil {
		return fmt.Errorf("convRepo.AddParticipants: %w", err)
	}
	return nil
}

func (r *ConversationRepository) insertParticipants(ctx context.Context, q querier, conversationID string, userIDs []string) error {
	// WITH ORDINALITY сохраняет порядок участников в joined_at
	_, err := q.Exec(ctx,
		`INSERT INTO conversation_participants (conversation_id, user_id, joined_at)
		 SELECT $1, u.id, clock_timestamp() + (u.ord * interval '1 microsecond')
		 FROM unnest($2::uuid[]) WITH ORDINALITY AS u(id, ord)
		 ON CONFLICT DO NOTHING`,
		conversationID, userIDs,
	)
	return mapPgError(err)
}

func (r *ConversationRepository) IsParticipant(ctx context.Context, conversationID, userID string) (bool, error) {
	defer logger.DeferLogDuration("conversation.IsParticipant", time.Now())()
	var ok bool
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2)`,
		conversationID, userID,
	).Scan(&ok)
	if err != nil {
		err = mapPgError(err)
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("convRepo.IsParticipant: %w", err)
	}
	return ok, nil
}

func (r *ConversationRepository) ParticipantIDs(ctx context.Context, conversationID string) ([]string, error) {
	defer logger.DeferLogDuration("conversation.ParticipantIDs", time.Now())()
	return r.collectIDs(ctx, "convRepo.ParticipantIDs",
		`SELECT user_id::text FROM conversation_participants WHERE conversation_id = $1 ORDER BY joined_at, user_id`,
		conversationID)
}

// ConversationIDsForUser returns the ids of every conversation userID participates in.
func (r *ConversationRepository) ConversationIDsForUser(ctx context.Context, userID string) ([]string, error) {
	defer logger.DeferLogDuration("conversation.ConversationIDsForUser", time.Now())()
	return r.collectIDs(ctx, "convRepo.ConversationIDsForUser",
		`SELECT conversation_id::text FROM conversation_participants WHERE user_id = $1`,
		userID)
}

func (r *ConversationRepository) collectIDs(ctx context.Context, op, query string, arg any) ([]string, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, query, arg)
	if err != nil {
		err = mapPgError(err)
		if isNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%s query: %w", op, err)
	}
	defer rows.Close()

	ids := make([]string, 0, 8)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, mapPgError(err))
	}
	return ids, nil
}

// ListForUser returns the conversations of userID, most recently updated first.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID string, limit, offset int) ([]model.Conversation, error) {
	defer logger.DeferLogDuration("conversation.ListForUser", time.Now())()
	b := sq.Select(
		"c.id", "c.is_group", "COALESCE(c.group_name, '')", "c.created_at", "c.updated_at",
		"COALESCE(array_agg(p.user_id::text ORDER BY p.joined_at, p.user_id), '{}')",
	).
		From("conversations c").
		Join("conversation_participants p ON p.conversation_id = c.id").
		Where(sq.Expr("c.id IN (SELECT conversation_id FROM conversation_participants WHERE user_id = ?)", userID)).
		GroupBy("c.id").
		OrderBy("c.updated_at DESC", "c.id").
		PlaceholderFormat(sq.Dollar)
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("convRepo.ListForUser build: %w", err)
	}

	rows, err := conn(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("convRepo.ListForUser query: %w", mapPgError(err))
	}
	defer rows.Close()

	list := make([]model.Conversation, 0, 16)
	for rows.Next() {
		var c model.Conversation
		if err := scanConversation(rows, &c); err != nil {
			return nil, fmt.Errorf("convRepo.ListForUser scan: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("convRepo.ListForUser rows: %w", err)
	}
	return list, nil
}

// Touch bumps updated_at; called on every message write.
func (r *ConversationRepository) Touch(ctx context.Context, conversationID string) error {
	defer logger.DeferLogDuration("conversation.Touch", time.Now())()
	_, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE conversations SET updated_at = now() WHERE id = $1`, conversationID)
	if err != nil {
		return fmt.Errorf("convRepo.Touch: %w", mapPgError(err))
	}
	return nil
}
