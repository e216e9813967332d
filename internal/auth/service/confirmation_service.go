package service

//go:generate mockgen -destination=../../mocks/mock_pending_repository.go -package=mocks github.com/techstud-dev/schedule-university/internal/auth/domain PendingRegistrationRepository
//go:generate mockgen -destination=../../mocks/mock_code_sender.go -package=mocks github.com/techstud-dev/schedule-university/internal/auth/domain CodeSender

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/techstud-dev/schedule-university/config"
	"github.com/techstud-dev/schedule-university/internal/auth/domain"
	"github.com/techstud-dev/schedule-university/internal/auth/dto"
	autherror "github.com/techstud-dev/schedule-university/internal/errors"
)

const dispatchTimeout = 30 * time.Second

// ConfirmationService runs the two-phase registration workflow: it stores pending
// registrations, delivers single-use confirmation codes and sweeps expired entries.
type ConfirmationService struct {
	pending domain.PendingRegistrationRepository
	sender  domain.CodeSender

	codeTTL         time.Duration
	resendInterval  time.Duration
	cleanupInterval time.Duration
	cleanupBatch    int

	now func() time.Time
}

func NewConfirmationService(pending domain.PendingRegistrationRepository, sender domain.CodeSender,
	cfg *config.Config) *ConfirmationService {
	return &ConfirmationService{
		pending:         pending,
		sender:          sender,
		codeTTL:         time.Duration(cfg.CodeTTLMin) * time.Minute,
		resendInterval:  time.Duration(cfg.ResendIntervalSec) * time.Second,
		cleanupInterval: time.Duration(cfg.CleanupIntervalMin) * time.Minute,
		cleanupBatch:    cfg.CleanupBatchSize,
		now:             time.Now,
	}
}

// Initiate hashes the password, upserts the pending registration for the email and
// dispatches a fresh confirmation code. A second initiation for the same email replaces
// the stored code and expiry instead of creating a duplicate row. The code is dispatched
// only after the row is durably stored; a delivery failure leaves the row in place so
// the user can request a resend.
func (s *ConfirmationService) Initiate(ctx context.Context, input dto.RegisterInput) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := s.now()
	pending := &domain.PendingRegistration{
		Username:         input.Username,
		FullName:         input.FullName,
		Email:            input.Email,
		PhoneNumber:      input.PhoneNumber,
		Password:         string(hashed),
		GroupNumber:      input.GroupNumber,
		University:       input.University,
		ConfirmationCode: code,
		ExpirationDate:   now.Add(s.codeTTL),
		LastSentTime:     now,
	}

	if err := s.pending.Upsert(ctx, pending); err != nil {
		return "", err
	}

	s.dispatch(pending.Email, code)

	return code, nil
}

// Validate resolves a pending registration by its code. It fails with ErrInvalidCode
// when no record matches or the record has expired, and does not consume the record;
// promotion owns that.
func (s *ConfirmationService) Validate(ctx context.Context, code string) (*domain.PendingRegistration, error) {
	pending, err := s.pending.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if pending == nil || !s.now().Before(pending.ExpirationDate) {
		return nil, autherror.ErrInvalidCode
	}

	return pending, nil
}

// Consume removes a pending registration once it has been promoted into a user.
func (s *ConfirmationService) Consume(ctx context.Context, id int64) error {
	return s.pending.Delete(ctx, id)
}

// Resend rotates the confirmation code for an existing pending registration and
// dispatches it again, enforcing the minimum interval since the last send.
func (s *ConfirmationService) Resend(ctx context.Context, email string) error {
	pending, err := s.pending.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if pending == nil {
		return autherror.ErrPendingNotFound
	}

	now := s.now()
	if wait := s.resendInterval - now.Sub(pending.LastSentTime); wait > 0 {
		return &autherror.TooSoonError{RetryAfter: wait}
	}

	code, err := GenerateCode()
	if err != nil {
		return fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	if err := s.pending.UpdateCode(ctx, pending.ID, code, now.Add(s.codeTTL), now); err != nil {
		return err
	}

	s.dispatch(email, code)

	return nil
}

// Run performs the expired-registration sweep on a fixed cadence until ctx is
// cancelled.
func (s *ConfirmationService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.CleanupExpired(ctx); err != nil {
				log.Printf("warn: expired registration cleanup failed: %v", err)
			}
		}
	}
}

// CleanupExpired deletes expired pending registrations in bounded batches, looping
// until a batch comes back short. Each batch is its own short-lived statement so the
// sweep never blocks foreground code validation.
func (s *ConfirmationService) CleanupExpired(ctx context.Context) error {
	for {
		deleted, err := s.pending.DeleteExpired(ctx, s.now(), s.cleanupBatch)
		if err != nil {
			return err
		}
		if deleted < int64(s.cleanupBatch) {
			return nil
		}
	}
}

// dispatch sends the code asynchronously. The state change it announces has already
// committed, so a delivery failure is logged and never propagated.
func (s *ConfirmationService) dispatch(email, code string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()

		if err := s.sender.SendCode(ctx, email, code); err != nil {
			log.Printf("warn: failed to send confirmation code to %s: %v", email, err)
		}
	}()
}
