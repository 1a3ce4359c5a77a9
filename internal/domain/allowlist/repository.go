package allowlist

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// Repository defines allow-list data access interface
type Repository interface {
	Upsert(ctx context.Context, u *AllowedUser) error
	GetByPhone(ctx context.Context, phone string) (*AllowedUser, error)
	List(ctx context.Context) ([]*AllowedUser, error)
	Delete(ctx context.Context, phone string) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new allow-list repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, u *AllowedUser) error {
	query := `
		INSERT INTO allowed_users (phone, name, role, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role
	`
	_, err := r.db.ExecContext(ctx, query, u.Phone, u.Name, u.Role, u.AddedAt)
	return err
}

func (r *repository) GetByPhone(ctx context.Context, phone string) (*AllowedUser, error) {
	query := `SELECT * FROM allowed_users WHERE phone = $1`
	var u AllowedUser
	err := r.db.GetContext(ctx, &u, query, phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) List(ctx context.Context) ([]*AllowedUser, error) {
	query := `SELECT * FROM allowed_users ORDER BY added_at, phone`
	var users []*AllowedUser
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *repository) Delete(ctx context.Context, phone string) error {
	query := `DELETE FROM allowed_users WHERE phone = $1`
	_, err := r.db.ExecContext(ctx, query, phone)
	return err
}
