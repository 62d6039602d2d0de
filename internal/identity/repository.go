package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors shared by all repository implementations.
var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("account already exists")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByMobile(ctx context.Context, mobile string) (User, error)
	FindByID(ctx context.Context, id string) (User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	UpdateTokenVersion(ctx context.Context, id string, version int) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, first_name, last_name, mobile_number, user_type, password_hash,
    is_email_verified, is_mobile_verified, kyc_status, token_version, created_at, updated_at, last_login`

// Create inserts a new user.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	userID, err := uuid.Parse(user.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		userID, user.Email, user.FirstName, user.LastName, user.MobileNumber, user.UserType,
		user.PasswordHash, user.IsEmailVerified, user.IsMobileVerified, user.KYCStatus,
		user.TokenVersion, user.CreatedAt.UTC(), user.UpdatedAt.UTC(), user.LastLogin.UTC())
	return err
}

// FindByEmail fetches a user by email address.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	return r.findBy(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

// FindByMobile fetches a user by normalized mobile number.
func (r *PostgresRepository) FindByMobile(ctx context.Context, mobile string) (User, error) {
	return r.findBy(ctx, `SELECT `+userColumns+` FROM users WHERE mobile_number = $1`, mobile)
}

// FindByID fetches a user by id.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	return r.findBy(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

// UpdateLastLogin stamps a successful authentication.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, `UPDATE users SET last_login = $1, updated_at = $1 WHERE id = $2`, at.UTC(), id)
}

// UpdateTokenVersion bumps the version so previously issued tokens die.
func (r *PostgresRepository) UpdateTokenVersion(ctx context.Context, id string, version int) error {
	return r.update(ctx, `UPDATE users SET token_version = $1, updated_at = now() WHERE id = $2`, version, id)
}

func (r *PostgresRepository) findBy(ctx context.Context, query string, arg any) (User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var (
		id   uuid.UUID
		user User
	)
	err := row.Scan(&id, &user.Email, &user.FirstName, &user.LastName, &user.MobileNumber,
		&user.UserType, &user.PasswordHash, &user.IsEmailVerified, &user.IsMobileVerified,
		&user.KYCStatus, &user.TokenVersion, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	user.ID = id.String()
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	user.LastLogin = user.LastLogin.UTC()
	return user, nil
}

func (r *PostgresRepository) update(ctx context.Context, query string, value any, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, query, value, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
