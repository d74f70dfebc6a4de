package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PresenceRepository struct {
	pool *pgxpool.Pool
}

func NewPresenceRepository(pool *pgxpool.Pool) *PresenceRepository {
	return &PresenceRepository{pool: pool}
}

// Lock returns the presence row of userID locked FOR UPDATE, creating an offline row first
// if the user has none. Must be called inside a transaction.
func (r *PresenceRepository) Lock(ctx context.Context, userID string) (model.Presence, error) {
	defer logger.DeferLogDuration("presence.Lock", time.Now())()
	q := conn(ctx, r.pool)
	if _, err := q.Exec(ctx,
		`INSERT INTO presence (user_id, changed_at) VALUES ($1, 'epoch') ON CONFLICT DO NOTHING`, userID,
	); err != nil {
		return model.Presence{}, fmt.Errorf("presenceRepo.Lock insert: %w", mapPgError(err))
	}
	p := model.Presence{UserID: userID}
	err := q.QueryRow(ctx,
		`SELECT status, previous_status, changed_at FROM presence WHERE user_id = $1 FOR UPDATE`, userID,
	).Scan(&p.Status, &p.PreviousStatus, &p.ChangedAt)
	if err != nil {
		return model.Presence{}, fmt.Errorf("presenceRepo.Lock: %w", mapPgError(err))
	}
	return p, nil
}

// Get returns the stored presence, or an offline presence for users that never connected.
func (r *PresenceRepository) Get(ctx context.Context, userID string) (model.Presence, error) {
	defer logger.DeferLogDuration("presence.Get", time.Now())()
	p := model.Presence{UserID: userID}
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT status, previous_status, changed_at FROM presence WHERE user_id = $1`, userID,
	).Scan(&p.Status, &p.PreviousStatus, &p.ChangedAt)
	if err != nil {
		err = mapPgError(err)
		if isNotFound(err) {
			return model.OfflinePresence(userID), nil
		}
		return model.Presence{}, fmt.Errorf("presenceRepo.Get: %w", err)
	}
	return p, nil
}

// Save writes p unless a newer transition is already stored (last write wins by changed_at).
// It reports whether p was applied.
func (r *PresenceRepository) Save(ctx context.Context, p model.Presence) (bool, error) {
	defer logger.DeferLogDuration("presence.Save", time.Now())()
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO presence (user_id, status, previous_status, changed_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET status = EXCLUDED.status, previous_status = EXCLUDED.previous_status, changed_at = EXCLUDED.changed_at
		 WHERE presence.changed_at <= EXCLUDED.changed_at`,
		p.UserID, p.Status, p.PreviousStatus, p.ChangedAt,
	)
	if err != nil {
		return false, fmt.Errorf("presenceRepo.Save: %w", mapPgError(err))
	}
	return tag.RowsAffected() > 0, nil
}

// GetMany returns presence keyed by user id; users without a row are reported offline.
func (r *PresenceRepository) GetMany(ctx context.Context, userIDs []string) (map[string]model.Presence, error) {
	defer logger.DeferLogDuration("presence.GetMany", time.Now())()
	out := make(map[string]model.Presence, len(userIDs))
	for _, id := range userIDs {
		out[id] = model.OfflinePresence(id)
	}
	if len(userIDs) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT user_id::text, status, previous_status, changed_at FROM presence WHERE user_id = ANY($1::uuid[])`, userIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("presenceRepo.GetMany query: %w", mapPgError(err))
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Presence
		if err := rows.Scan(&p.UserID, &p.Status, &p.PreviousStatus, &p.ChangedAt); err != nil {
			return nil, fmt.Errorf("presenceRepo.GetMany scan: %w", err)
		}
		out[p.UserID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("presenceRepo.GetMany rows: %w", err)
	}
	return out, nil
}

// ResetAll marks every connected user offline, remembering their status in previous_status.
// Run at startup: no session survives a restart.
func (r *PresenceRepository) ResetAll(ctx context.Context) (int64, error) {
	defer logger.DeferLogDuration("presence.ResetAll", time.Now())()
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`UPDATE presence SET previous_status = status, status = 'offline', changed_at = now()
		 WHERE status <> 'offline'`)
	if err != nil {
		return 0, fmt.Errorf("presenceRepo.ResetAll: %w", mapPgError(err))
	}
	return tag.RowsAffected(), nil
}
