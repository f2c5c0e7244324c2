package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bloghub/backend/internal/config"
	"github.com/bloghub/backend/internal/domain"
	"github.com/bloghub/backend/internal/queue/client"
	"github.com/bloghub/backend/internal/queue/task"
	"github.com/bloghub/backend/internal/repository"
	"github.com/bloghub/backend/pkg/auth"
	"github.com/bloghub/backend/pkg/hash"
	"github.com/bloghub/backend/pkg/logger"
	"github.com/bloghub/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxVerificationAttempts = 3

type userService struct {
	userRepository             repository.Users
	refreshSessionRepository   repository.RefreshSession
	userVerificationRepository repository.UserVerification
	hasher                     hash.PasswordHasher
	tokenManager               auth.TokenManager
	otpGenerator               otp.Generator
	authConfig                 config.AuthConfig
}

func newUserService(
	userRepository repository.Users,
	refreshSessionRepository repository.RefreshSession,
	userVerificationRepository repository.UserVerification,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	authConfig config.AuthConfig,
) *userService {
	return &userService{
		userRepository:             userRepository,
		refreshSessionRepository:   refreshSessionRepository,
		userVerificationRepository: userVerificationRepository,
		hasher:                     hasher,
		tokenManager:               tokenManager,
		otpGenerator:               otpGenerator,
		authConfig:                 authConfig,
	}
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type SignInInput struct {
	Email     string
	Password  string
	UserAgent string
	UserIP    string
}

// SignUp creates the user and a verification code and hands the code to the
// background queue for delivery. Returns the verification id the client
// confirms against.
func (s *userService) SignUp(ctx context.Context, input SignUpInput) (uuid.UUID, error) {
	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now(),
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return uuid.Nil, ErrUserAlreadyExist
		}
		return uuid.Nil, fmt.Errorf("create user failed: %w", err)
	}

	verificationID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate verification id failed: %w", err)
	}

	verification := &domain.UserVerification{
		ID:     verificationID,
		UserID: userID,
		Email:  input.Email,
		Code:   s.otpGenerator.RandomSecret(s.authConfig.VerificationCodeLength),
	}

	if err := s.userVerificationRepository.Create(ctx, verification); err != nil {
		return uuid.Nil, fmt.Errorf("create user verification failed: %w", err)
	}

	s.enqueueVerificationEmail(ctx, verification.Email, verification.Code)

	return verificationID, nil
}

func (s *userService) SignIn(ctx context.Context, input SignInInput) (*Tokens, error) {
	user, err := s.userRepository.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	if passwordHash != user.PasswordHash {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, &user.ID, &input.UserAgent, &input.UserIP)
}

func (s *userService) Verify(ctx context.Context, verificationID uuid.UUID, code string) error {
	verification, err := s.userVerificationRepository.GetOneByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrVerificationCodeNotFound
		}
		return fmt.Errorf("get user verification failed: %w", err)
	}

	if verification.Confirmed {
		return ErrVerificationAlreadyConfirmed
	}

	if verification.Attempts >= maxVerificationAttempts {
		return ErrVerificationCodeNotFound
	}

	if verification.Code != code {
		if err := s.userVerificationRepository.IncrementAttempts(ctx, verificationID); err != nil {
			logger.Error("increment verification attempts failed", zap.Error(err))
		}
		return ErrVerificationCodeMismatch
	}

	if err := s.userVerificationRepository.Confirm(ctx, verificationID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrVerificationAlreadyConfirmed
		}
		return fmt.Errorf("confirm user verification failed: %w", err)
	}

	if err := s.userRepository.SetVerified(ctx, verification.UserID); err != nil {
		return fmt.Errorf("set user verified failed: %w", err)
	}

	return nil
}

func (s *userService) Refresh(ctx context.Context, refreshToken uuid.UUID, userAgent, userIP string) (*Tokens, error) {
	session, err := s.refreshSessionRepository.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get refresh session failed: %w", err)
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	// rotate: old session dies with the token that spent it
	if err := s.refreshSessionRepository.DeleteByID(ctx, session.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("delete refresh session failed: %w", err)
	}

	return s.createSession(ctx, &session.UserID, &userAgent, &userIP)
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}
	return user, nil
}

func (s *userService) Count(ctx context.Context) (int64, error) {
	return s.userRepository.Count(ctx)
}

func (s *userService) createSession(ctx context.Context, userID *uuid.UUID, userAgent *string, userIP *string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(userID)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		UserID:       *userID,
		RefreshToken: res.RefreshToken,
		UserAgent:    *userAgent,
		IP:           *userIP,
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}

func (s *userService) enqueueVerificationEmail(ctx context.Context, email, code string) {
	c := client.GetClient(ctx)
	if c == nil {
		return
	}

	t, err := task.NewVerificationEmailTask(email, code)
	if err != nil {
		logger.Error("build verification email task failed", zap.Error(err))
		return
	}

	if _, err := c.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue verification email failed", zap.Error(err), zap.String("email", email))
	}
}
