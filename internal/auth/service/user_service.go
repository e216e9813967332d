package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/techstud-dev/schedule-university/internal/auth/domain UserRepository
//go:generate mockgen -destination=../../mocks/mock_confirmer.go -package=mocks github.com/techstud-dev/schedule-university/internal/auth/service Confirmer

import (
	"context"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/techstud-dev/schedule-university/internal/auth/domain"
	"github.com/techstud-dev/schedule-university/internal/auth/dto"
	autherror "github.com/techstud-dev/schedule-university/internal/errors"
	"github.com/techstud-dev/schedule-university/pkg/constant"
)

// Confirmer is the confirmation workflow as consumed by the user service.
type Confirmer interface {
	Initiate(ctx context.Context, input dto.RegisterInput) (string, error)
	Validate(ctx context.Context, code string) (*domain.PendingRegistration, error)
	Consume(ctx context.Context, id int64) error
	Resend(ctx context.Context, email string) error
}

// UserService composes the token service, user storage and the confirmation workflow
// into the externally visible login, registration, refresh and logout operations.
type UserService struct {
	repo         domain.UserRepository
	tokenService TokenGenerator
	confirmation Confirmer
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, confirmation Confirmer) *UserService {
	return &UserService{
		repo:         repo,
		tokenService: tokenService,
		confirmation: confirmation,
	}
}

// Login resolves the user by username, email or phone number (first match wins, in that
// order), verifies the password and issues a fresh token pair. The new refresh token
// overwrites any previously stored one.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.findByIdentificationField(ctx, input.IdentificationField)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, autherror.ErrBadCredentials
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Printf("user %s logged in", user.Username)

	return pair, nil
}

// StartRegistration checks uniqueness against confirmed users and hands the data to the
// confirmation workflow. The user only comes into existence once the code is validated.
func (s *UserService) StartRegistration(ctx context.Context, input dto.RegisterInput) error {
	exists, err := s.repo.ExistsByUniqueFields(ctx, input.Username, input.Email, input.PhoneNumber)
	if err != nil {
		return err
	}
	if exists {
		return autherror.ErrUserExists
	}

	_, err = s.confirmation.Initiate(ctx, input)

	return err
}

// CompleteRegistration validates the confirmation code, promotes the pending
// registration into a user and issues a token pair. Uniqueness is re-checked because
// another registration may have completed while this one was pending.
func (s *UserService) CompleteRegistration(ctx context.Context, code string) (*dto.TokenResponse, error) {
	pending, err := s.confirmation.Validate(ctx, code)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUniqueFields(ctx, pending.Username, pending.Email, pending.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, autherror.ErrUserExists
	}

	user := &domain.User{
		Username:     pending.Username,
		FullName:     pending.FullName,
		Email:        pending.Email,
		PhoneNumber:  pending.PhoneNumber,
		PasswordHash: pending.Password,
		GroupNumber:  pending.GroupNumber,
		University:   pending.University,
		Roles:        []string{constant.DefaultRoleName},
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.confirmation.Consume(ctx, pending.ID); err != nil {
		log.Printf("warn: failed to delete consumed pending registration %d: %v", pending.ID, err)
	}

	log.Printf("user %s registered", user.Username)

	return pair, nil
}

// ResendConfirmation rotates and re-delivers the confirmation code for a pending
// registration, subject to the workflow's resend throttle.
func (s *UserService) ResendConfirmation(ctx context.Context, email string) error {
	return s.confirmation.Resend(ctx, email)
}

// Refresh verifies the presented refresh token and issues a new access token only; the
// refresh token itself is not rotated by this path.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", autherror.ErrInvalidToken
	}

	claims, err := s.tokenService.Verify(refreshToken)
	if err != nil {
		return "", autherror.ErrInvalidToken
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", autherror.ErrInvalidToken
	}

	return s.tokenService.IssueAccessToken(user)
}

// Logout clears the stored refresh token for whichever user holds the presented value.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	updated, err := s.repo.ClearRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if updated == constant.NoUpdatedRecords {
		return autherror.ErrUserNotFound
	}

	return nil
}

func (s *UserService) findByIdentificationField(ctx context.Context, field string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, field)
	if err != nil || user != nil {
		return user, err
	}

	user, err = s.repo.FindByEmail(ctx, field)
	if err != nil || user != nil {
		return user, err
	}

	return s.repo.FindByPhoneNumber(ctx, field)
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenService.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	stored := &domain.RefreshToken{
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.tokenService.RefreshExpiry()),
	}
	if err := s.repo.UpdateRefreshToken(ctx, user.ID, stored); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
