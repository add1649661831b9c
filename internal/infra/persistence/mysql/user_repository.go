package mysql

import (
	"context"
	"database/sql"
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"

	domuser "example.com/trendy-store/internal/domain/user"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domuser.User) (*domuser.User, error) {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO users (first_name, last_name, email, password_hash, phone, is_admin)
        VALUES (?, ?, ?, ?, ?, ?)
    `, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Phone, u.IsAdmin)
	if err != nil {
		var me *mysqldriver.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return nil, domuser.ErrEmailAlreadyUsed
		}
		return nil, err
	}
	u.ID, _ = res.LastInsertId()
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, email, password_hash, phone, is_admin, created_at
        FROM users WHERE id = ?
    `, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domuser.User, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, email, password_hash, phone, is_admin, created_at
        FROM users WHERE email = ?
    `, email)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*domuser.User, error) {
	var u domuser.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Phone, &u.IsAdmin, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domuser.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
