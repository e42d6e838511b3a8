package user

import (
	"context"
	"database/sql"
	"errors"
	c "medremind/internal/core/domain/common"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/user"
	"medremind/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxUserRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		"SELECT id, email, created_at FROM app_user WHERE id = $1",
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id    int64
		email sql.NullString
	)
	err = row.Scan(&id, &email, &u.CreatedAt)
	if err != nil {
		return u, err
	}
	u.ID = user.ID(id)
	if email.Valid && email.String != "" {
		u.Email = c.NewOptional(c.NewEmail(email.String), true)
	}
	return u, nil
}
