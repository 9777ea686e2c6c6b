package readstore

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/shared"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, email, name, password_hash FROM users WHERE email = $1`, email).
		Scan(&snap.ID, &snap.Email, &snap.Name, &snap.PasswordHash)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}
