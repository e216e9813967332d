package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/techstud-dev/schedule-university/internal/auth/domain"
)

type PendingRegistrationRepository struct {
	db DB
}

func NewPendingRegistrationRepository(db DB) *PendingRegistrationRepository {
	return &PendingRegistrationRepository{db: db}
}

// Upsert is a single atomic statement so concurrent initiations for the same email
// cannot race into duplicate rows.
func (r *PendingRegistrationRepository) Upsert(ctx context.Context, p *domain.PendingRegistration) error {
	query := `
		INSERT INTO pending_registrations (username, full_name, email, phone_number, password,
		                                   group_number, university, confirmation_code,
		                                   expiration_date, last_sent_time, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		ON CONFLICT (email) DO UPDATE SET
			username = EXCLUDED.username,
			full_name = EXCLUDED.full_name,
			phone_number = EXCLUDED.phone_number,
			password = EXCLUDED.password,
			group_number = EXCLUDED.group_number,
			university = EXCLUDED.university,
			confirmation_code = EXCLUDED.confirmation_code,
			expiration_date = EXCLUDED.expiration_date,
			last_sent_time = EXCLUDED.last_sent_time,
			modified_at = now()
		RETURNING id;`

	err := r.db.QueryRow(ctx, query,
		p.Username, p.FullName, p.Email, p.PhoneNumber, p.Password,
		p.GroupNumber, p.University, p.ConfirmationCode, p.ExpirationDate, p.LastSentTime).
		Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert pending registration: %w", err)
	}

	return nil
}

const pendingSelect = `
	SELECT id, username, full_name, email, phone_number, password, group_number,
	       university, confirmation_code, expiration_date, last_sent_time
	FROM pending_registrations
`

func (r *PendingRegistrationRepository) FindByEmail(ctx context.Context, email string) (*domain.PendingRegistration, error) {
	query := pendingSelect + `
		WHERE email = $1
		LIMIT 1;`

	return r.findOne(ctx, query, email)
}

func (r *PendingRegistrationRepository) FindByCode(ctx context.Context, code string) (*domain.PendingRegistration, error) {
	query := pendingSelect + `
		WHERE confirmation_code = $1
		LIMIT 1;`

	return r.findOne(ctx, query, code)
}

func (r *PendingRegistrationRepository) findOne(ctx context.Context, query string, arg any) (*domain.PendingRegistration, error) {
	row := r.db.QueryRow(ctx, query, arg)

	var p domain.PendingRegistration
	err := row.Scan(&p.ID, &p.Username, &p.FullName, &p.Email, &p.PhoneNumber, &p.Password,
		&p.GroupNumber, &p.University, &p.ConfirmationCode, &p.ExpirationDate, &p.LastSentTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get pending registration: %w", err)
	}

	return &p, nil
}

func (r *PendingRegistrationRepository) UpdateCode(ctx context.Context, id int64, code string, expiresAt, sentAt time.Time) error {
	_, err := r.db.Exec(ctx, `
		UPDATE pending_registrations
		SET confirmation_code = $2, expiration_date = $3, last_sent_time = $4, modified_at = now()
		WHERE id = $1;`, id, code, expiresAt, sentAt)
	if err != nil {
		return fmt.Errorf("failed to update confirmation code: %w", err)
	}

	return nil
}

func (r *PendingRegistrationRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM pending_registrations WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete pending registration: %w", err)
	}

	return nil
}

// DeleteExpired removes one bounded batch of expired rows. SKIP LOCKED keeps the sweep
// from blocking a foreground validation that holds one of the rows.
func (r *PendingRegistrationRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) (int64, error) {
	query := `
		WITH expired AS (
			SELECT id FROM pending_registrations
			WHERE expiration_date < $1
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		DELETE FROM pending_registrations
		WHERE id IN (SELECT id FROM expired);`

	tag, err := r.db.Exec(ctx, query, before, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired registrations: %w", err)
	}

	return tag.RowsAffected(), nil
}
