package repository

import (
	"context"

	"github.com/EATMove/CDT-sub001/internal/model"
)

const userColumns = `id, email, display_name, password_hash, tier, created_at, updated_at`

func (r *sqlRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := selectAll(ctx, r.db, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at, email`); err != nil {
		return nil, mapError("list users", err)
	}
	return users, nil
}

func (r *sqlRepo) GetUser(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	if err := get(ctx, r.db, u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id); err != nil {
		return nil, mapError("user", err)
	}
	return u, nil
}

func (r *sqlRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := get(ctx, r.db, u, `SELECT `+userColumns+` FROM users WHERE email = ?`, model.NormalizeEmail(email))
	if err != nil {
		return nil, mapError("user", err)
	}
	return u, nil
}

func (r *sqlRepo) CreateUser(ctx context.Context, u *model.User) error {
	u.ID = newID()
	u.Email = model.NormalizeEmail(u.Email)
	u.CreatedAt = r.now()
	u.UpdatedAt = u.CreatedAt

	_, err := exec(ctx, r.db,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.DisplayName, u.PasswordHash, string(u.Tier), u.CreatedAt, u.UpdatedAt)
	return mapError("user "+u.Email, err)
}

func (r *sqlRepo) UpdateUser(ctx context.Context, u *model.User) error {
	u.UpdatedAt = r.now()
	return execOne(ctx, r.db, "user",
		`UPDATE users SET display_name = ?, password_hash = ?, tier = ?, updated_at = ? WHERE id = ?`,
		u.DisplayName, u.PasswordHash, string(u.Tier), u.UpdatedAt, u.ID)
}

func (r *sqlRepo) DeleteUser(ctx context.Context, id string) error {
	return execOne(ctx, r.db, "user", `DELETE FROM users WHERE id = ?`, id)
}
