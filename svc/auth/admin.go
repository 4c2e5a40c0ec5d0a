package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/rosterkit/pkg/email"
	"github.com/dmitrymomot/rosterkit/pkg/scope"
	tenantpkg "github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// UserFilter narrows ListUsers results. Nil fields match everything.
type UserFilter struct {
	Admin  *bool
	Active *bool
	Search string
}

// ListUsers returns the tenant's users, newest first, narrowed by filter.
// Only admins may list users.
func (s *Service) ListUsers(ctx context.Context, actorID uuid.UUID, filter UserFilter) ([]*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	if err := s.requireAdmin(ctx, tenantID, actorID); err != nil {
		return nil, err
	}

	users, err := s.storage.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]*User, 0, len(users))
	for _, u := range users {
		if filter.Admin != nil && u.IsAdmin != *filter.Admin {
			continue
		}
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Email), search) {
			continue
		}
		filtered = append(filtered, u)
	}
	return filtered, nil
}

// InviteAdmin records a tokened invitation for a new manager account and
// emails the accept link. The inviter must be an admin; the email must not
// belong to an existing user or an active invitation within the tenant.
func (s *Service) InviteAdmin(ctx context.Context, invitedBy uuid.UUID, emailAddr, role string) (*AdminInvitation, error) {
	t, ok := tenantpkg.FromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	if err := s.requireAdmin(ctx, t.ID, invitedBy); err != nil {
		return nil, err
	}

	emailAddr = normalizeEmail(emailAddr)
	if !emailPattern.MatchString(emailAddr) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, emailAddr)
	}

	if role == "" {
		role = RoleAdmin
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	if _, err := s.storage.GetUserByEmail(ctx, t.ID, emailAddr); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if prev, err := s.storage.GetPendingInvitation(ctx, t.ID, emailAddr); err == nil && prev.Valid(s.now()) {
		return nil, ErrInvitationPending
	} else if err != nil && !errors.Is(err, ErrInvitationNotFound) {
		return nil, fmt.Errorf("failed to check existing invitation: %w", err)
	}

	token, err := newInvitationToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv := &AdminInvitation{
		ID:        uuid.New(),
		Email:     emailAddr,
		Role:      role,
		Token:     token,
		Status:    InvitationPending,
		InvitedBy: invitedBy,
		ExpiresAt: now.Add(invitationTTL),
		CreatedAt: now,
	}
	inv.SetTenantID(t.ID)

	if err := s.storage.CreateInvitation(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.sendInvitationEmail(ctx, t, inv)
	return inv, nil
}

// AcceptInvitation redeems a pending invitation token: it creates the
// invited account with the given password and marks the invitation accepted.
// An expired token is marked expired and rejected.
func (s *Service) AcceptInvitation(ctx context.Context, token, password string) (*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: minimum %d characters", ErrWeakPassword, minPasswordLength)
	}

	inv, err := s.storage.GetInvitationByToken(ctx, tenantID, token)
	if err != nil {
		return nil, err
	}
	if inv.Status != InvitationPending {
		return nil, ErrInvitationNotFound
	}
	if !s.now().Before(inv.ExpiresAt) {
		inv.Status = InvitationExpired
		if err := s.storage.UpdateInvitation(ctx, inv); err != nil {
			s.logger.ErrorContext(ctx, "failed to mark invitation expired",
				slog.String("invitation_id", inv.ID.String()),
				slog.Any("error", err),
			)
		}
		return nil, ErrInvitationExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     inv.Email,
		IsAdmin:   inv.Role == RoleAdmin,
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
		if deleteErr := s.storage.DeleteUser(ctx, tenantID, user.ID); deleteErr != nil {
			s.logger.ErrorContext(ctx, "failed to cleanup user after password save failure",
				slog.String("user_id", user.ID.String()),
				slog.Any("error", deleteErr),
			)
		}
		return nil, fmt.Errorf("failed to save password: %w", err)
	}

	inv.Status = InvitationAccepted
	if err := s.storage.UpdateInvitation(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to mark invitation accepted: %w", err)
	}
	return user, nil
}

// SetRole grants or revokes admin rights. Demoting the tenant's last admin
// is rejected.
func (s *Service) SetRole(ctx context.Context, actorID, userID uuid.UUID, admin bool) (*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	if err := s.requireAdmin(ctx, tenantID, actorID); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin && !admin {
		if err := s.requireAnotherAdmin(ctx, tenantID); err != nil {
			return nil, err
		}
	}

	user.IsAdmin = admin
	user.UpdatedAt = s.now().UTC()
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// SetActive toggles an account. Users cannot change their own status, and
// the tenant's last admin cannot be deactivated.
func (s *Service) SetActive(ctx context.Context, actorID, userID uuid.UUID, active bool) (*User, error) {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	if err := s.requireAdmin(ctx, tenantID, actorID); err != nil {
		return nil, err
	}
	if actorID == userID {
		return nil, ErrOwnAccount
	}

	user, err := s.storage.GetUserByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if user.IsAdmin && !active {
		if err := s.requireAnotherAdmin(ctx, tenantID); err != nil {
			return nil, err
		}
	}

	user.Active = active
	user.UpdatedAt = s.now().UTC()
	if err := s.storage.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// RemoveUser deletes an account. Users cannot delete themselves, and the
// tenant's last admin cannot be removed.
func (s *Service) RemoveUser(ctx context.Context, actorID, userID uuid.UUID) error {
	tenantID, ok := tenantpkg.IDFromContext(ctx)
	if !ok {
		return scope.ErrNoTenant
	}
	if err := s.requireAdmin(ctx, tenantID, actorID); err != nil {
		return err
	}
	if actorID == userID {
		return ErrOwnAccount
	}

	user, err := s.storage.GetUserByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if user.IsAdmin {
		if err := s.requireAnotherAdmin(ctx, tenantID); err != nil {
			return err
		}
	}
	return s.storage.DeleteUser(ctx, tenantID, userID)
}

func (s *Service) requireAdmin(ctx context.Context, tenantID, actorID uuid.UUID) error {
	actor, err := s.storage.GetUserByID(ctx, tenantID, actorID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin || !actor.Active {
		return ErrAdminRequired
	}
	return nil
}

func (s *Service) requireAnotherAdmin(ctx context.Context, tenantID uuid.UUID) error {
	count, err := s.storage.CountAdmins(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to count admins: %w", err)
	}
	if count <= 1 {
		return ErrLastAdmin
	}
	return nil
}

func (s *Service) sendInvitationEmail(ctx context.Context, t *tenantpkg.Tenant, inv *AdminInvitation) {
	if s.mailer == nil {
		return
	}

	params := email.SendParams{
		SendTo:  inv.Email,
		Subject: fmt.Sprintf("You're invited to manage %s", t.Name),
		BodyHTML: fmt.Sprintf(
			"<p>You have been invited to join %s as a %s.</p>"+
				"<p>Use this code to create your account and accept the invitation:</p>"+
				"<p><strong>%s</strong></p><p>The invitation expires in 7 days.</p>",
			t.Name, inv.Role, inv.Token,
		),
		Tag: "admin-invitation",
	}
	if err := s.mailer.Send(ctx, params); err != nil {
		s.logger.ErrorContext(ctx, "failed to send admin invitation email",
			slog.String("invitation_id", inv.ID.String()),
			slog.Any("error", err),
		)
	}
}
