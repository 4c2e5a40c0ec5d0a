package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/rosterkit/pkg/email"
	"github.com/dmitrymomot/rosterkit/pkg/scope"
	tenantpkg "github.com/dmitrymomot/rosterkit/pkg/tenant"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Storage defines the persistence operations the auth service needs.
// All lookups are tenant-scoped; an email under another tenant never matches.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error)
	ListUsers(ctx context.Context, tenantID uuid.UUID) ([]*User, error)
	CountUsers(ctx context.Context, tenantID uuid.UUID) (int, error)
	CountAdmins(ctx context.Context, tenantID uuid.UUID) (int, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, tenantID, id uuid.UUID) error
	StorePasswordHash(ctx context.Context, tenantID, userID uuid.UUID, hash []byte) error
	GetPasswordHash(ctx context.Context, tenantID, userID uuid.UUID) ([]byte, error)

	CreateInvitation(ctx context.Context, inv *AdminInvitation) error
	GetInvitationByToken(ctx context.Context, tenantID uuid.UUID, token string) (*AdminInvitation, error)
	GetPendingInvitation(ctx context.Context, tenantID uuid.UUID, email string) (*AdminInvitation, error)
	UpdateInvitation(ctx context.Context, inv *AdminInvitation) error
}

// Service provides password-based authentication within the tenant resolved
// from the request context.
type Service struct {
	storage    Storage
	bcryptCost int
	mailer     email.Sender
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures the auth service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) {
		s.bcryptCost = cost
	}
}

// WithEmailSender enables admin invitation emails. Without a sender
// invitations are still recorded, just not delivered.
func WithEmailSender(sender email.Sender) Option {
	return func(s *Service) {
		s.mailer = sender
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates the auth service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		bcryptCost: bcrypt.DefaultCost,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user under the tenant resolved from ctx.
func (s *Service) Register(ctx context.Context, email, password string) (*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}

	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, minPasswordLength)
	}

	_, err := s.storage.GetUserByEmail(ctx, tenantID, email)
	if err == nil {
		return nil, ErrEmailAlreadyExists
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// The first account of a tenant manages it.
	count, err := s.storage.CountUsers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	now := s.now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		IsAdmin:   count == 0,
		Active:    true,
		Language:  "en",
		CreatedAt: now,
		UpdatedAt: now,
	}
	user.SetTenantID(tenantID)

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.storage.StorePasswordHash(ctx, tenantID, user.ID, hash); err != nil {
		// Remove the half-created account so the email is not stuck.
		if deleteErr := s.storage.DeleteUser(ctx, tenantID, user.ID); deleteErr != nil {
			s.logger.ErrorContext(ctx, "failed to cleanup user after password save failure",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", deleteErr),
			)
		}
		return nil, fmt.Errorf("failed to save password: %w", err)
	}

	return user, nil
}

// Authenticate verifies email and password within the tenant resolved from
// ctx. Returns ErrInvalidCredentials for any failure, including inactive
// accounts, so callers cannot distinguish the cause.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}

	email = normalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	hash, err := s.storage.GetPasswordHash(ctx, tenantID, user.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser returns a user by ID within the tenant resolved from ctx.
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	return s.storage.GetUserByID(ctx, tenantID, userID)
}

// ChangePassword replaces the password after verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return scope.ErrNoTenant
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, minPasswordLength)
	}

	hash, err := s.storage.GetPasswordHash(ctx, tenantID, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.storage.StorePasswordHash(ctx, tenantID, userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
