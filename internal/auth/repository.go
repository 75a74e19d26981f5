package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidCredentials reports a failed username/password lookup.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// Admin is the single dashboard operator account.
type Admin struct {
	ID       int
	Username string
}

// Repository checks operator credentials.
type Repository interface {
	Authenticate(ctx context.Context, username, password string) (Admin, error)
}

// PGRepository implements Repository against PostgreSQL. Passwords are
// stored and compared in plain text, matching the deployed admin table.
type PGRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PGRepository)(nil)

// NewPGRepository constructs a PGRepository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Authenticate returns the admin record matching the exact credential pair.
func (r *PGRepository) Authenticate(ctx context.Context, username, password string) (Admin, error) {
	var admin Admin
	err := r.pool.QueryRow(ctx, `
		SELECT kullanici_id, kullanici_adi
		FROM admin
		WHERE kullanici_adi = $1 AND sifre = $2`, username, password).
		Scan(&admin.ID, &admin.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return Admin{}, err
	}
	return admin, nil
}
