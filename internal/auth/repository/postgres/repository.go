package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/techstud-dev/schedule-university/internal/auth/domain"
)

// DB is the subset of pgxpool.Pool the repositories use; pgxmock satisfies it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT u.id, u.username, u.full_name, u.email, u.phone_number, u.password_hash,
	       u.group_number, COALESCE(un.name, ''),
	       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}'),
	       u.refresh_token, u.refresh_token_expires_at, u.created_at, u.updated_at
	FROM users u
	LEFT JOIN universities un ON un.id = u.university_id
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
`

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := userSelect + `
		WHERE lower(u.username) = lower($1)
		GROUP BY u.id, un.name
		LIMIT 1;`

	return r.findOne(ctx, query, username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := userSelect + `
		WHERE lower(u.email) = lower($1)
		GROUP BY u.id, un.name
		LIMIT 1;`

	return r.findOne(ctx, query, email)
}

func (r *UserRepository) FindByPhoneNumber(ctx context.Context, phone string) (*domain.User, error) {
	query := userSelect + `
		WHERE u.phone_number = $1
		GROUP BY u.id, un.name
		LIMIT 1;`

	return r.findOne(ctx, query, phone)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var (
		user           domain.User
		refreshToken   *string
		refreshExpires *time.Time
	)
	err := row.Scan(&user.ID, &user.Username, &user.FullName, &user.Email, &user.PhoneNumber,
		&user.PasswordHash, &user.GroupNumber, &user.University, &user.Roles,
		&refreshToken, &refreshExpires, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if refreshToken != nil && refreshExpires != nil {
		user.RefreshToken = &domain.RefreshToken{Token: *refreshToken, ExpiresAt: *refreshExpires}
	}

	return &user, nil
}

func (r *UserRepository) ExistsByUniqueFields(ctx context.Context, username, email, phone string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE lower(username) = lower($1)
			   OR lower(email) = lower($2)
			   OR phone_number = $3
		);`

	var exists bool
	if err := r.db.QueryRow(ctx, query, username, email, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user uniqueness: %w", err)
	}

	return exists, nil
}

// Create inserts the user together with its role and university references in one
// transaction. Unknown universities and roles are created on the fly.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var universityID *int64
	if user.University != "" {
		id, err := resolveNamed(ctx, tx, "universities", user.University)
		if err != nil {
			return fmt.Errorf("failed to resolve university: %w", err)
		}
		universityID = &id
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, full_name, email, phone_number, password_hash,
		                   group_number, university_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING id, created_at, updated_at;`,
		user.Username, user.FullName, user.Email, user.PhoneNumber, user.PasswordHash,
		user.GroupNumber, universityID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	for _, role := range user.Roles {
		roleID, err := resolveNamed(ctx, tx, "roles", role)
		if err != nil {
			return fmt.Errorf("failed to resolve role: %w", err)
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING;`, user.ID, roleID); err != nil {
			return fmt.Errorf("failed to attach role: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// resolveNamed finds or creates a row in a (id, name unique) lookup table. The no-op
// DO UPDATE makes RETURNING yield the id on conflict as well.
func resolveNamed(ctx context.Context, tx pgx.Tx, table, name string) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id;`, table)

	var id int64
	err := tx.QueryRow(ctx, query, name).Scan(&id)

	return id, err
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID int64, token *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET refresh_token = $2, refresh_token_expires_at = $3, updated_at = now()
		WHERE id = $1;`, userID, token.Token, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, tokenValue string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET refresh_token = NULL, refresh_token_expires_at = NULL, updated_at = now()
		WHERE refresh_token = $1;`, tokenValue)
	if err != nil {
		return 0, fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return tag.RowsAffected(), nil
}
