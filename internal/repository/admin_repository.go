package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/rfuentes/event-invitation/internal/model"
	"github.com/rfuentes/event-invitation/internal/utils"
)

// AdminRepo persists administrator accounts in the 'admin_users' table.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

var ErrUsernameExists = errors.New("username already exists")

// Create inserts an admin account and returns its ID. The password is
// bcrypt-hashed with the given cost before storage.
func (r *AdminRepo) Create(ctx context.Context, username, password string, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_users (username, password_hash) VALUES (?,?)",
		username, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an admin account by normalized username.
func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var a model.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,is_active,created_at FROM admin_users WHERE username=? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	return a, err
}

// GetByID fetches an admin account by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.AdminUser, error) {
	var a model.AdminUser
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,password_hash,is_active,created_at FROM admin_users WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.IsActive, &a.CreatedAt)
	return a, err
}
