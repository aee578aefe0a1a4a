package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/models"
	"github.com/yukikurage/task-management-services/internal/repository"
)

const (
	MsgEmailTaken         = "Email already registered"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUserNotFound       = "User not found"
)

// IdentityService handles registration, authentication and user lookup.
type IdentityService struct {
	userRepo  repository.UserRepository
	hashCost  int
	dummyHash func() []byte
}

// NewIdentityService creates a new IdentityService. An out of range cost falls
// back to bcrypt.DefaultCost.
func NewIdentityService(userRepo repository.UserRepository, hashCost int) *IdentityService {
	if hashCost < bcrypt.MinCost || hashCost > bcrypt.MaxCost {
		hashCost = bcrypt.DefaultCost
	}
	s := &IdentityService{
		userRepo: userRepo,
		hashCost: hashCost,
	}
	s.dummyHash = sync.OnceValue(func() []byte {
		hash, _ := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), hashCost)
		return hash
	})
	return s
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user with a hashed password.
func (s *IdentityService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if _, err := s.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apierrors.Conflict(MsgEmailTaken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.Internal(fmt.Errorf("failed to check email: %w", err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, apierrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierrors.Conflict(MsgEmailTaken)
		}
		return nil, apierrors.Internal(fmt.Errorf("failed to create user: %w", err))
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the user. An unknown email and
// a wrong password fail identically.
func (s *IdentityService) Authenticate(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(input.Password))
			return nil, apierrors.Unauthorized(MsgInvalidCredentials)
		}
		return nil, apierrors.Internal(fmt.Errorf("failed to find user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apierrors.Unauthorized(MsgInvalidCredentials)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *IdentityService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound(MsgUserNotFound)
		}
		return nil, apierrors.Internal(fmt.Errorf("failed to find user: %w", err))
	}

	return user, nil
}
