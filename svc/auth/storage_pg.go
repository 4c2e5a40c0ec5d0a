package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rosterkit/pkg/pg"
)

// PGStorage persists users in Postgres. Every query carries the tenant ID
// so rows from other tenants are unreachable at the SQL level.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed auth storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

const userColumns = `tenant_id, id, email, is_admin, is_active, language, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.Tenant, &u.ID, &u.Email, &u.IsAdmin, &u.Active, &u.Language,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func (s *PGStorage) CreateUser(ctx context.Context, user *User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.TenantID(), user.ID, user.Email, user.IsAdmin, user.Active,
		user.Language, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *PGStorage) GetUserByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	return scanUser(row)
}

func (s *PGStorage) GetUserByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE tenant_id = $1 AND email = $2`, tenantID, email)
	return scanUser(row)
}

func (s *PGStorage) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]*User, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users WHERE tenant_id = $1
		ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *PGStorage) CountUsers(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM users WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (s *PGStorage) CountAdmins(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM users
		WHERE tenant_id = $1 AND is_admin AND is_active`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (s *PGStorage) UpdateUser(ctx context.Context, user *User) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users
		SET email = $3, is_admin = $4, is_active = $5, language = $6, updated_at = $7
		WHERE tenant_id = $1 AND id = $2`,
		user.TenantID(), user.ID, user.Email, user.IsAdmin, user.Active,
		user.Language, user.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PGStorage) DeleteUser(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM users WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PGStorage) StorePasswordHash(ctx context.Context, tenantID, userID uuid.UUID, hash []byte) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET password_hash = $3, updated_at = now()
		WHERE tenant_id = $1 AND id = $2`, tenantID, userID, hash)
	if err != nil {
		return fmt.Errorf("failed to store password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PGStorage) GetPasswordHash(ctx context.Context, tenantID, userID uuid.UUID) ([]byte, error) {
	var hash []byte
	err := s.pool.QueryRow(ctx, `
		SELECT password_hash FROM users
		WHERE tenant_id = $1 AND id = $2 AND password_hash IS NOT NULL`,
		tenantID, userID).Scan(&hash)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get password hash: %w", err)
	}
	return hash, nil
}

const invitationColumns = `tenant_id, id, email, role, token, status, invited_by, expires_at, created_at`

func scanInvitation(row pgx.Row) (*AdminInvitation, error) {
	var inv AdminInvitation
	var tenantID uuid.UUID
	err := row.Scan(
		&tenantID, &inv.ID, &inv.Email, &inv.Role, &inv.Token,
		&inv.Status, &inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}
	inv.SetTenantID(tenantID)
	return &inv, nil
}

func (s *PGStorage) CreateInvitation(ctx context.Context, inv *AdminInvitation) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO admin_invitations (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		inv.TenantID(), inv.ID, inv.Email, inv.Role, inv.Token,
		inv.Status, inv.InvitedBy, inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

func (s *PGStorage) GetInvitationByToken(ctx context.Context, tenantID uuid.UUID, token string) (*AdminInvitation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM admin_invitations WHERE tenant_id = $1 AND token = $2`, tenantID, token)
	return scanInvitation(row)
}

func (s *PGStorage) GetPendingInvitation(ctx context.Context, tenantID uuid.UUID, email string) (*AdminInvitation, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+invitationColumns+`
		FROM admin_invitations
		WHERE tenant_id = $1 AND email = $2 AND status = $3
		ORDER BY created_at DESC
		LIMIT 1`, tenantID, email, InvitationPending)
	return scanInvitation(row)
}

func (s *PGStorage) UpdateInvitation(ctx context.Context, inv *AdminInvitation) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE admin_invitations
		SET status = $3, expires_at = $4
		WHERE tenant_id = $1 AND id = $2`,
		inv.TenantID(), inv.ID, inv.Status, inv.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

var _ Storage = (*PGStorage)(nil)
