package store

import (
	"context"
	"fmt"
	"time"

	"billed/internal/utils"
	"billed/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userTableName = "billed.users"

var userColumns = utils.StructTagValues(types.User{})

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) UserByEmail(ctx context.Context, email string) (*types.User, error) {

	query, args, err := psql().Select(userColumns...).From(userTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user query: %w", err)
	}

	var user = new(types.User)
	err = pgxscan.Get(ctx, r.pool, user, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrUserNotFound
	}

	return user, nil

}

// UpsertUser creates the profile row for a registered account, or refreshes
// its type if it already exists.
func (r *UserRepository) UpsertUser(ctx context.Context, user *types.User) error {

	now := time.Now()
	if user.ID == "" {
		user.ID = utils.NanoID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO billed.users (id, email, user_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email)
		DO UPDATE SET user_type = EXCLUDED.user_type, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, user.ID, user.Email, user.UserType, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}

	return nil
}
