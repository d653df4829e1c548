package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sameershaik-coder/account-service/internal/auth/domain"
	"github.com/sameershaik-coder/account-service/internal/auth/dto"
	apperrors "github.com/sameershaik-coder/account-service/internal/errors"
	"github.com/sameershaik-coder/account-service/internal/events"
)

type UserService struct {
	repo           domain.UserRepository
	tokenService   TokenGenerator
	passwordPolicy PasswordPolicy
	publisher      events.Publisher
	logger         *slog.Logger
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator,
	passwordPolicy PasswordPolicy, publisher events.Publisher, logger *slog.Logger) *UserService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		repo:           repo,
		tokenService:   tokenService,
		passwordPolicy: passwordPolicy,
		publisher:      publisher,
		logger:         logger,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.Password != input.Password2 {
		return nil, apperrors.FieldError("password", "Password fields didn't match.")
	}

	if s.passwordPolicy != nil {
		if err := s.passwordPolicy(input.Password); err != nil {
			return nil, apperrors.FieldError("password", err.Error())
		}
	}

	existingUser, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperrors.FieldError("email", "A user with this email already exists.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID, "user_registered", user.Email)

	return user, nil
}

// Login deliberately collapses unknown email, wrong password and inactive
// account into one error so responses cannot be used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.tokenService.Issue(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, user.ID, "user_logged_in", user.Email)

	return &dto.LoginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		User:    dto.NewUserOutput(user),
	}, nil
}

func (s *UserService) Logout(ctx context.Context, user *domain.User, refreshToken string) error {
	if err := s.tokenService.Revoke(ctx, refreshToken); err != nil {
		return err
	}

	s.publish(ctx, user.ID, "user_logged_out", user.Email)

	return nil
}

// UpdateProfile applies a partial update of the self-service fields. Email
// and privilege flags are not reachable from here.
func (s *UserService) UpdateProfile(ctx context.Context, user *domain.User,
	input dto.UpdateProfileInput) (*domain.User, error) {
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	user.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser resolves a user by id; (nil, nil) when absent.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserOutput, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserOutput(&users[i]))
	}

	return out, nil
}

func (s *UserService) publish(ctx context.Context, userID, eventType, email string) {
	event := map[string]interface{}{
		"type":    eventType,
		"user_id": userID,
		"email":   email,
	}

	if err := s.publisher.Publish(ctx, userID, event); err != nil {
		s.logger.Error("event publish failed", "type", eventType, "user_id", userID, "error", err)
	}
}
