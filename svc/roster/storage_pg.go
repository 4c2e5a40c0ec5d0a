package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rosterkit/pkg/pg"
	"github.com/dmitrymomot/rosterkit/pkg/scope"
)

// PGStores returns a Stores backed by Postgres. Every query filters on
// tenant_id, so rows of other tenants are unreachable at the SQL level.
func PGStores(pool *pgxpool.Pool) Stores {
	return Stores{
		Players:     &playerPG{pool: pool},
		Games:       &gamePG{pool: pool},
		Invitations: &invitationPG{pool: pool},
		Statistics:  &statisticPG{pool: pool},
		Assignments: &PGAssignmentStorage{pool: pool},
	}
}

// --- players ---

type playerPG struct {
	pool *pgxpool.Pool
}

const playerColumns = `tenant_id, id, name, email, position, player_type,
	COALESCE(spare_priority, 0), COALESCE(skill_rating, 0), language,
	email_invitations, email_reminders, email_notifications,
	is_active, created_at, updated_at`

func scanPlayer(row pgx.Row) (*Player, error) {
	var p Player
	err := row.Scan(
		&p.Tenant, &p.ID, &p.Name, &p.Email, &p.Position, &p.Type,
		&p.SparePriority, &p.SkillRating, &p.Language,
		&p.EmailInvitations, &p.EmailReminders, &p.EmailNotifications,
		&p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, scope.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}
	return &p, nil
}

func (s *playerPG) Get(ctx context.Context, tenantID, id uuid.UUID) (*Player, error) {
	return scanPlayer(s.pool.QueryRow(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (s *playerPG) List(ctx context.Context, tenantID uuid.UUID) ([]*Player, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+playerColumns+` FROM players
		WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var out []*Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *playerPG) Insert(ctx context.Context, p *Player) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO players (
			tenant_id, id, name, email, position, player_type,
			spare_priority, skill_rating, language,
			email_invitations, email_reminders, email_notifications,
			is_active, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, 0), NULLIF($8, 0), $9, $10, $11, $12, $13, $14, $15)`,
		p.TenantID(), p.ID, p.Name, p.Email, p.Position, p.Type,
		p.SparePriority, p.SkillRating, p.Language,
		p.EmailInvitations, p.EmailReminders, p.EmailNotifications,
		p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert player: %w", err)
	}
	return nil
}

func (s *playerPG) Update(ctx context.Context, tenantID uuid.UUID, p *Player) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE players SET
			name = $3, email = $4, position = $5, player_type = $6,
			spare_priority = NULLIF($7, 0), skill_rating = NULLIF($8, 0), language = $9,
			email_invitations = $10, email_reminders = $11, email_notifications = $12,
			is_active = $13, updated_at = $14
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, p.ID, p.Name, p.Email, p.Position, p.Type,
		p.SparePriority, p.SkillRating, p.Language,
		p.EmailInvitations, p.EmailReminders, p.EmailNotifications,
		p.Active, p.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to update player: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scope.ErrNotFound
	}
	return nil
}

func (s *playerPG) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, s.pool, "players", tenantID, id)
}

func (s *playerPG) UpdateMatching(ctx context.Context, tenantID uuid.UUID, match func(*Player) bool, apply func(*Player)) (int, error) {
	return updateMatching(ctx, s, tenantID, match, apply)
}

func (s *playerPG) DeleteMatching(ctx context.Context, tenantID uuid.UUID, match func(*Player) bool) (int, error) {
	all, err := s.List(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range all {
		if match(p) {
			if err := s.Delete(ctx, tenantID, p.ID); err != nil && !errors.Is(err, scope.ErrNotFound) {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// --- games ---

type gamePG struct {
	pool *pgxpool.Pool
}

const gameColumns = `tenant_id, id, starts_at, venue, status,
	goaltenders_needed, COALESCE(defence_needed, 0), COALESCE(forwards_needed, 0), COALESCE(skaters_needed, 0),
	COALESCE(team_1_name, ''), COALESCE(team_2_name, ''), COALESCE(team_1_color, ''), COALESCE(team_2_color, ''),
	is_recurring, COALESCE(recurrence_pattern, ''), recurrence_ends_at,
	created_at, updated_at`

func scanGame(row pgx.Row) (*Game, error) {
	var g Game
	err := row.Scan(
		&g.Tenant, &g.ID, &g.StartsAt, &g.Venue, &g.Status,
		&g.GoaltendersNeeded, &g.DefenceNeeded, &g.ForwardsNeeded, &g.SkatersNeeded,
		&g.TeamName1, &g.TeamName2, &g.TeamColor1, &g.TeamColor2,
		&g.Recurring, &g.RecurrencePattern, &g.RecurrenceEndsAt,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, scope.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}
	return &g, nil
}

func (s *gamePG) Get(ctx context.Context, tenantID, id uuid.UUID) (*Game, error) {
	return scanGame(s.pool.QueryRow(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (s *gamePG) List(ctx context.Context, tenantID uuid.UUID) ([]*Game, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+gameColumns+` FROM games
		WHERE tenant_id = $1 ORDER BY starts_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var out []*Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *gamePG) Insert(ctx context.Context, g *Game) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO games (
			tenant_id, id, starts_at, venue, status,
			goaltenders_needed, defence_needed, forwards_needed, skaters_needed,
			team_1_name, team_2_name, team_1_color, team_2_color,
			is_recurring, recurrence_pattern, recurrence_ends_at,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5,
			$6, NULLIF($7, 0), NULLIF($8, 0), NULLIF($9, 0),
			NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''),
			$14, NULLIF($15, ''), $16, $17, $18)`,
		g.TenantID(), g.ID, g.StartsAt, g.Venue, g.Status,
		g.GoaltendersNeeded, g.DefenceNeeded, g.ForwardsNeeded, g.SkatersNeeded,
		g.TeamName1, g.TeamName2, g.TeamColor1, g.TeamColor2,
		g.Recurring, string(g.RecurrencePattern), g.RecurrenceEndsAt,
		g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

func (s *gamePG) Update(ctx context.Context, tenantID uuid.UUID, g *Game) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE games SET
			starts_at = $3, venue = $4, status = $5,
			goaltenders_needed = $6, defence_needed = NULLIF($7, 0),
			forwards_needed = NULLIF($8, 0), skaters_needed = NULLIF($9, 0),
			team_1_name = NULLIF($10, ''), team_2_name = NULLIF($11, ''),
			team_1_color = NULLIF($12, ''), team_2_color = NULLIF($13, ''),
			is_recurring = $14, recurrence_pattern = NULLIF($15, ''), recurrence_ends_at = $16,
			updated_at = $17
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, g.ID, g.StartsAt, g.Venue, g.Status,
		g.GoaltendersNeeded, g.DefenceNeeded, g.ForwardsNeeded, g.SkatersNeeded,
		g.TeamName1, g.TeamName2, g.TeamColor1, g.TeamColor2,
		g.Recurring, string(g.RecurrencePattern), g.RecurrenceEndsAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scope.ErrNotFound
	}
	return nil
}

func (s *gamePG) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, s.pool, "games", tenantID, id)
}

func (s *gamePG) UpdateMatching(ctx context.Context, tenantID uuid.UUID, match func(*Game) bool, apply func(*Game)) (int, error) {
	return updateMatching(ctx, s, tenantID, match, apply)
}

func (s *gamePG) DeleteMatching(ctx context.Context, tenantID uuid.UUID, match func(*Game) bool) (int, error) {
	all, err := s.List(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, g := range all {
		if match(g) {
			if err := s.Delete(ctx, tenantID, g.ID); err != nil && !errors.Is(err, scope.ErrNotFound) {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// --- invitations ---

type invitationPG struct {
	pool *pgxpool.Pool
}

const invitationColumns = `tenant_id, id, game_id, player_id, invitation_type, status,
	sent_at, opened_at, responded_at, COALESCE(response, '')`

func scanInvitation(row pgx.Row) (*Invitation, error) {
	var i Invitation
	err := row.Scan(
		&i.Tenant, &i.ID, &i.GameID, &i.PlayerID, &i.Type, &i.Status,
		&i.SentAt, &i.OpenedAt, &i.RespondedAt, &i.Response,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, scope.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan invitation: %w", err)
	}
	return &i, nil
}

func (s *invitationPG) Get(ctx context.Context, tenantID, id uuid.UUID) (*Invitation, error) {
	return scanInvitation(s.pool.QueryRow(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (s *invitationPG) List(ctx context.Context, tenantID uuid.UUID) ([]*Invitation, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+invitationColumns+` FROM invitations
		WHERE tenant_id = $1 ORDER BY sent_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	defer rows.Close()

	var out []*Invitation
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (s *invitationPG) Insert(ctx context.Context, i *Invitation) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO invitations (
			tenant_id, id, game_id, player_id, invitation_type, status,
			sent_at, opened_at, responded_at, response
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''))`,
		i.TenantID(), i.ID, i.GameID, i.PlayerID, i.Type, i.Status,
		i.SentAt, i.OpenedAt, i.RespondedAt, i.Response,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invitation: %w", err)
	}
	return nil
}

func (s *invitationPG) Update(ctx context.Context, tenantID uuid.UUID, i *Invitation) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE invitations SET
			status = $3, opened_at = $4, responded_at = $5, response = NULLIF($6, '')
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, i.ID, i.Status, i.OpenedAt, i.RespondedAt, i.Response,
	)
	if err != nil {
		return fmt.Errorf("failed to update invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scope.ErrNotFound
	}
	return nil
}

func (s *invitationPG) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, s.pool, "invitations", tenantID, id)
}

func (s *invitationPG) UpdateMatching(ctx context.Context, tenantID uuid.UUID, match func(*Invitation) bool, apply func(*Invitation)) (int, error) {
	return updateMatching(ctx, s, tenantID, match, apply)
}

func (s *invitationPG) DeleteMatching(ctx context.Context, tenantID uuid.UUID, match func(*Invitation) bool) (int, error) {
	all, err := s.List(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, i := range all {
		if match(i) {
			if err := s.Delete(ctx, tenantID, i.ID); err != nil && !errors.Is(err, scope.ErrNotFound) {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// --- statistics ---

type statisticPG struct {
	pool *pgxpool.Pool
}

const statisticColumns = `tenant_id, id, game_id, player_id, statistic_type,
	COALESCE(period, 0), COALESCE(time_in_period, ''), COALESCE(team_number, 0),
	COALESCE(penalty_type, ''), COALESCE(penalty_duration, 0), goal_id,
	COALESCE(notes, ''), created_at`

func scanStatistic(row pgx.Row) (*GameStatistic, error) {
	var st GameStatistic
	err := row.Scan(
		&st.Tenant, &st.ID, &st.GameID, &st.PlayerID, &st.Type,
		&st.Period, &st.TimeInPeriod, &st.TeamNumber,
		&st.PenaltyType, &st.PenaltyDuration, &st.GoalID,
		&st.Notes, &st.CreatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, scope.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan statistic: %w", err)
	}
	return &st, nil
}

func (s *statisticPG) Get(ctx context.Context, tenantID, id uuid.UUID) (*GameStatistic, error) {
	return scanStatistic(s.pool.QueryRow(ctx, `
		SELECT `+statisticColumns+` FROM game_statistics
		WHERE tenant_id = $1 AND id = $2`, tenantID, id))
}

func (s *statisticPG) List(ctx context.Context, tenantID uuid.UUID) ([]*GameStatistic, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+statisticColumns+` FROM game_statistics
		WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statistics: %w", err)
	}
	defer rows.Close()

	var out []*GameStatistic
	for rows.Next() {
		st, err := scanStatistic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *statisticPG) Insert(ctx context.Context, st *GameStatistic) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_statistics (
			tenant_id, id, game_id, player_id, statistic_type,
			period, time_in_period, team_number,
			penalty_type, penalty_duration, goal_id, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5,
			NULLIF($6, 0), NULLIF($7, ''), NULLIF($8, 0),
			NULLIF($9, ''), NULLIF($10, 0), $11, NULLIF($12, ''), $13)`,
		st.TenantID(), st.ID, st.GameID, st.PlayerID, st.Type,
		st.Period, st.TimeInPeriod, st.TeamNumber,
		st.PenaltyType, st.PenaltyDuration, st.GoalID, st.Notes, st.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert statistic: %w", err)
	}
	return nil
}

func (s *statisticPG) Update(ctx context.Context, tenantID uuid.UUID, st *GameStatistic) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE game_statistics SET
			period = NULLIF($3, 0), time_in_period = NULLIF($4, ''), team_number = NULLIF($5, 0),
			penalty_type = NULLIF($6, ''), penalty_duration = NULLIF($7, 0),
			goal_id = $8, notes = NULLIF($9, '')
		WHERE tenant_id = $1 AND id = $2`,
		tenantID, st.ID, st.Period, st.TimeInPeriod, st.TeamNumber,
		st.PenaltyType, st.PenaltyDuration, st.GoalID, st.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update statistic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return scope.ErrNotFound
	}
	return nil
}

func (s *statisticPG) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return deleteScoped(ctx, s.pool, "game_statistics", tenantID, id)
}

func (s *statisticPG) UpdateMatching(ctx context.Context, tenantID uuid.UUID, match func(*GameStatistic) bool, apply func(*GameStatistic)) (int, error) {
	return updateMatching(ctx, s, tenantID, match, apply)
}

func (s *statisticPG) DeleteMatching(ctx context.Context, tenantID uuid.UUID, match func(*GameStatistic) bool) (int, error) {
	all, err := s.List(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, st := range all {
		if match(st) {
			if err := s.Delete(ctx, tenantID, st.ID); err != nil && !errors.Is(err, scope.ErrNotFound) {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// --- assignments ---

// PGAssignmentStorage persists assignments in Postgres. Replace and swap
// run inside a transaction.
type PGAssignmentStorage struct {
	pool *pgxpool.Pool
}

// NewPGAssignmentStorage creates a Postgres-backed assignment storage.
func NewPGAssignmentStorage(pool *pgxpool.Pool) *PGAssignmentStorage {
	return &PGAssignmentStorage{pool: pool}
}

const assignmentColumns = `tenant_id, id, game_id, player_id, team_number, created_at`

func scanAssignment(row pgx.Row) (*Assignment, error) {
	var a Assignment
	err := row.Scan(&a.Tenant, &a.ID, &a.GameID, &a.PlayerID, &a.TeamNumber, &a.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, ErrNotAssigned
		}
		return nil, fmt.Errorf("failed to scan assignment: %w", err)
	}
	return &a, nil
}

func (s *PGAssignmentStorage) ListForGame(ctx context.Context, tenantID, gameID uuid.UUID) ([]*Assignment, error) {
	return s.list(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE tenant_id = $1 AND game_id = $2 ORDER BY created_at`, tenantID, gameID)
}

func (s *PGAssignmentStorage) ListForPlayer(ctx context.Context, tenantID, playerID uuid.UUID) ([]*Assignment, error) {
	return s.list(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE tenant_id = $1 AND player_id = $2 ORDER BY created_at`, tenantID, playerID)
}

func (s *PGAssignmentStorage) list(ctx context.Context, query string, args ...any) ([]*Assignment, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var out []*Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *PGAssignmentStorage) GetForPlayer(ctx context.Context, tenantID, gameID, playerID uuid.UUID) (*Assignment, error) {
	return scanAssignment(s.pool.QueryRow(ctx, `
		SELECT `+assignmentColumns+` FROM assignments
		WHERE tenant_id = $1 AND game_id = $2 AND player_id = $3`,
		tenantID, gameID, playerID))
}

func (s *PGAssignmentStorage) ReplaceForGame(ctx context.Context, tenantID, gameID uuid.UUID, assignments []*Assignment) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `
		DELETE FROM assignments WHERE tenant_id = $1 AND game_id = $2`,
		tenantID, gameID); err != nil {
		return fmt.Errorf("failed to clear assignments: %w", err)
	}

	for _, a := range assignments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO assignments (`+assignmentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			tenantID, a.ID, a.GameID, a.PlayerID, a.TeamNumber, a.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PGAssignmentStorage) Update(ctx context.Context, tenantID uuid.UUID, a *Assignment) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE assignments SET team_number = $3
		WHERE tenant_id = $1 AND id = $2`, tenantID, a.ID, a.TeamNumber)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotAssigned
	}
	return nil
}

func (s *PGAssignmentStorage) SwapTeams(ctx context.Context, tenantID, firstID, secondID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var firstTeam, secondTeam int
	if err := tx.QueryRow(ctx, `
		SELECT team_number FROM assignments
		WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, firstID).Scan(&firstTeam); err != nil {
		if pg.IsNotFoundError(err) {
			return ErrNotAssigned
		}
		return fmt.Errorf("failed to lock assignment: %w", err)
	}
	if err := tx.QueryRow(ctx, `
		SELECT team_number FROM assignments
		WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, secondID).Scan(&secondTeam); err != nil {
		if pg.IsNotFoundError(err) {
			return ErrNotAssigned
		}
		return fmt.Errorf("failed to lock assignment: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE assignments SET team_number = $3
		WHERE tenant_id = $1 AND id = $2`, tenantID, firstID, secondTeam); err != nil {
		return fmt.Errorf("failed to swap assignment: %w", err)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE assignments SET team_number = $3
		WHERE tenant_id = $1 AND id = $2`, tenantID, secondID, firstTeam); err != nil {
		return fmt.Errorf("failed to swap assignment: %w", err)
	}

	return tx.Commit(ctx)
}

func (s *PGAssignmentStorage) DeleteForGame(ctx context.Context, tenantID, gameID uuid.UUID) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM assignments WHERE tenant_id = $1 AND game_id = $2`,
		tenantID, gameID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *PGAssignmentStorage) DeleteForPlayer(ctx context.Context, tenantID, playerID uuid.UUID) (int, error) {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM assignments WHERE tenant_id = $1 AND player_id = $2`,
		tenantID, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

var (
	_ scope.Store[*Player]        = (*playerPG)(nil)
	_ scope.Store[*Game]          = (*gamePG)(nil)
	_ scope.Store[*Invitation]    = (*invitationPG)(nil)
	_ scope.Store[*GameStatistic] = (*statisticPG)(nil)
	_ AssignmentStorage           = (*PGAssignmentStorage)(nil)
)

// deleteScoped removes one row by tenant and primary key.
func deleteScoped(ctx context.Context, pool *pgxpool.Pool, table string, tenantID, id uuid.UUID) error {
	tag, err := pool.Exec(ctx, `DELETE FROM `+table+` WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return scope.ErrNotFound
	}
	return nil
}

// updateMatching loads the tenant partition, applies the predicate in Go,
// and writes back each matched row.
func updateMatching[T scope.Scoped](ctx context.Context, store scope.Store[T], tenantID uuid.UUID, match func(T) bool, apply func(T)) (int, error) {
	all, err := store.List(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range all {
		if match(e) {
			apply(e)
			if err := store.Update(ctx, tenantID, e); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
