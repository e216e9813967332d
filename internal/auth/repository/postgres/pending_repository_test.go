package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstud-dev/schedule-university/internal/auth/domain"
	repo "github.com/techstud-dev/schedule-university/internal/auth/repository/postgres"
)

var pendingColumns = []string{
	"id", "username", "full_name", "email", "phone_number", "password",
	"group_number", "university", "confirmation_code", "expiration_date", "last_sent_time",
}

// TestPendingUpsert covers the atomic insert-or-replace of a pending registration.
func TestPendingUpsert(t *testing.T) {
	// --- Setup ---
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPendingRegistrationRepository(mock)
	ctx := context.Background()

	pending := &domain.PendingRegistration{
		Username:         "johndoe",
		FullName:         "John Doe",
		Email:            "john@example.com",
		PhoneNumber:      "+10000000001",
		Password:         "hash",
		GroupNumber:      "CS-101",
		University:       "State University",
		ConfirmationCode: "123456",
		ExpirationDate:   time.Now().Add(5 * time.Minute),
		LastSentTime:     time.Now(),
	}

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO pending_registrations").
			WithArgs(pending.Username, pending.FullName, pending.Email, pending.PhoneNumber,
				pending.Password, pending.GroupNumber, pending.University,
				pending.ConfirmationCode, pending.ExpirationDate, pending.LastSentTime).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

		err := r.Upsert(ctx, pending)
		require.NoError(t, err)
		assert.Equal(t, int64(42), pending.ID)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO pending_registrations").
			WithArgs(pending.Username, pending.FullName, pending.Email, pending.PhoneNumber,
				pending.Password, pending.GroupNumber, pending.University,
				pending.ConfirmationCode, pending.ExpirationDate, pending.LastSentTime).
			WillReturnError(fmt.Errorf("db error"))

		err := r.Upsert(ctx, pending)
		assert.Error(t, err)
	})
}

// TestPendingFindByCode covers confirmation-code lookup.
func TestPendingFindByCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPendingRegistrationRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("123456").
			WillReturnRows(pgxmock.NewRows(pendingColumns).
				AddRow(int64(42), "johndoe", "John Doe", "john@example.com", "+10000000001",
					"hash", "CS-101", "State University", "123456",
					time.Now().Add(5*time.Minute), time.Now()))

		pending, err := r.FindByCode(ctx, "123456")
		require.NoError(t, err)
		assert.Equal(t, int64(42), pending.ID)
		assert.Equal(t, "123456", pending.ConfirmationCode)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("000000").
			WillReturnError(pgx.ErrNoRows)

		pending, err := r.FindByCode(ctx, "000000")
		require.NoError(t, err) // Should return nil record, nil error
		assert.Nil(t, pending)
	})
}

// TestPendingFindByEmail covers email lookup used by the resend path.
func TestPendingFindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPendingRegistrationRepository(mock)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("john@example.com").
			WillReturnRows(pgxmock.NewRows(pendingColumns).
				AddRow(int64(42), "johndoe", "John Doe", "john@example.com", "+10000000001",
					"hash", "CS-101", "State University", "123456",
					time.Now().Add(5*time.Minute), time.Now()))

		pending, err := r.FindByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		assert.Equal(t, "john@example.com", pending.Email)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, username").
			WithArgs("ghost@example.com").
			WillReturnError(pgx.ErrNoRows)

		pending, err := r.FindByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, pending)
	})
}

// TestPendingUpdateCode covers code rotation on resend.
func TestPendingUpdateCode(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPendingRegistrationRepository(mock)
	ctx := context.Background()

	expiresAt := time.Now().Add(5 * time.Minute)
	sentAt := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE pending_registrations").
			WithArgs(int64(42), "654321", expiresAt, sentAt).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		assert.NoError(t, r.UpdateCode(ctx, 42, "654321", expiresAt, sentAt))
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("UPDATE pending_registrations").
			WithArgs(int64(42), "654321", expiresAt, sentAt).
			WillReturnError(fmt.Errorf("db error"))

		assert.Error(t, r.UpdateCode(ctx, 42, "654321", expiresAt, sentAt))
	})
}

// TestPendingDelete covers consumption of a promoted registration.
func TestPendingDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPendingRegistrationRepository(mock)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM pending_registrations").
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, r.Delete(ctx, 42))
}

// TestPendingDeleteExpired covers one bounded sweep batch.
func TestPendingDeleteExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repo.NewPendingRegistrationRepository(mock)
	ctx := context.Background()
	before := time.Now()

	t.Run("full batch", func(t *testing.T) {
		mock.ExpectExec("WITH expired AS").
			WithArgs(before, 1000).
			WillReturnResult(pgxmock.NewResult("DELETE", 1000))

		deleted, err := r.DeleteExpired(ctx, before, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), deleted)
	})

	t.Run("short batch", func(t *testing.T) {
		mock.ExpectExec("WITH expired AS").
			WithArgs(before, 1000).
			WillReturnResult(pgxmock.NewResult("DELETE", 37))

		deleted, err := r.DeleteExpired(ctx, before, 1000)
		require.NoError(t, err)
		assert.Equal(t, int64(37), deleted)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectExec("WITH expired AS").
			WithArgs(before, 1000).
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.DeleteExpired(ctx, before, 1000)
		assert.Error(t, err)
	})
}
