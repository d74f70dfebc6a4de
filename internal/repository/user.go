package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/chatcore/internal/logger"
	"github.com/chatcore/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userCols = `id, username, display_name, avatar_url, created_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// scanUser сканирует строку в model.User (порядок соответствует userCols).
func scanUser(s interface{ Scan(dest ...any) error }, u *model.User) error {
	return s.Scan(&u.ID, &u.Username, &u.DisplayName, &u.AvatarURL, &u.CreatedAt)
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	defer logger.DeferLogDuration("user.Create", time.Now())()
	err := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO users (username, display_name, avatar_url)
		 VALUES ($1, $2, $3) RETURNING id, created_at`,
		u.Username, u.DisplayName, u.AvatarURL,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", mapPgError(err))
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	defer logger.DeferLogDuration("user.GetByID", time.Now())()
	u := &model.User{}
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	defer logger.DeferLogDuration("user.GetByUsername", time.Now())()
	u := &model.User{}
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username = $1`, username)
	if err := scanUser(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByUsername: %w", err)
	}
	return u, nil
}

// GetMany returns the users with the given ids keyed by id. Unknown ids are skipped.
func (r *UserRepository) GetMany(ctx context.Context, ids []string) (map[string]model.User, error) {
	defer logger.DeferLogDuration("user.GetMany", time.Now())()
	out := make(map[string]model.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+userCols+` FROM users WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetMany query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("userRepo.GetMany scan: %w", err)
		}
		out[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("userRepo.GetMany rows: %w", err)
	}
	return out, nil
}

// Search ищет по username и display_name без учёта регистра, исключая excludeID.
func (r *UserRepository) Search(ctx context.Context, query, excludeID string, limit int) ([]model.User, error) {
	defer logger.DeferLogDuration("user.Search", time.Now())()
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	b := sq.Select(strings.Split(userCols, ", ")...).
		From("users").
		Where(sq.Or{
			sq.Expr("lower(username) LIKE ?", pattern),
			sq.Expr("lower(display_name) LIKE ?", pattern),
		}).
		OrderBy("username").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)
	if excludeID != "" {
		b = b.Where(sq.NotEq{"id": excludeID})
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("userRepo.Search build: %w", err)
	}

	rows, err := conn(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("userRepo.Search query: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0, limit)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("userRepo.Search scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("userRepo.Search rows: %w", err)
	}
	return users, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
