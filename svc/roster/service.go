package roster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/email"
	"github.com/dmitrymomot/rosterkit/pkg/scope"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// Stores bundles the per-entity stores the roster service runs on. Generic
// entities use scope.Store; assignments have a dedicated contract because
// replace and swap must be atomic.
type Stores struct {
	Players     scope.Store[*Player]
	Games       scope.Store[*Game]
	Invitations scope.Store[*Invitation]
	Statistics  scope.Store[*GameStatistic]
	Assignments AssignmentStorage
}

// MemoryStores returns a Stores backed entirely by in-memory stores, for
// tests and local development.
func MemoryStores() Stores {
	return Stores{
		Players:     scope.NewMemoryStore(func(p *Player) uuid.UUID { return p.ID }),
		Games:       scope.NewMemoryStore(func(g *Game) uuid.UUID { return g.ID }),
		Invitations: scope.NewMemoryStore(func(i *Invitation) uuid.UUID { return i.ID }),
		Statistics:  scope.NewMemoryStore(func(s *GameStatistic) uuid.UUID { return s.ID }),
		Assignments: NewMemoryAssignmentStorage(),
	}
}

// Service exposes roster operations scoped to the tenant resolved from the
// request context.
type Service struct {
	players     *scope.Repository[*Player]
	games       *scope.Repository[*Game]
	invitations *scope.Repository[*Invitation]
	stats       *scope.Repository[*GameStatistic]
	assignments AssignmentStorage

	mailer email.Sender
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the roster service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEmailSender enables invitation emails. Without a sender invitations
// are still recorded, just not delivered.
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

// NewService creates a roster service over the given stores.
func NewService(stores Stores, opts ...Option) *Service {
	s := &Service{
		players:     scope.NewRepository(stores.Players),
		games:       scope.NewRepository(stores.Games),
		invitations: scope.NewRepository(stores.Invitations),
		stats:       scope.NewRepository(stores.Statistics),
		assignments: stores.Assignments,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) tenantFromContext(ctx context.Context) (*tenant.Tenant, error) {
	t, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}
	return t, nil
}

// CreatePlayerParams describes a new roster member.
type CreatePlayerParams struct {
	Name          string
	Email         string
	Position      Position
	Type          PlayerType
	SparePriority int // required for spares
	SkillRating   int // 0 means unrated
	Language      string
}

// CreatePlayer adds a player to the tenant's roster. The position must be
// valid for the tenant's position mode and the email unique within the
// tenant.
func (s *Service) CreatePlayer(ctx context.Context, params CreatePlayerParams) (*Player, error) {
	t, err := s.tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	}
	emailAddr := strings.ToLower(strings.TrimSpace(params.Email))
	if emailAddr == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidPlayer)
	}

	if err := validatePosition(params.Position, t.PositionMode); err != nil {
		return nil, err
	}
	if err := validatePlayerType(params.Type, params.SparePriority); err != nil {
		return nil, err
	}
	if err := validateSkillRating(params.SkillRating); err != nil {
		return nil, err
	}

	if err := s.checkEmailFree(ctx, emailAddr, uuid.Nil); err != nil {
		return nil, err
	}

	language := params.Language
	if language == "" {
		language = "en"
	}
	priority := 0
	if params.Type == PlayerTypeSpare {
		priority = params.SparePriority
	}

	now := s.now().UTC()
	player := &Player{
		ID:            uuid.New(),
		Name:          name,
		Email:         emailAddr,
		Position:      params.Position,
		Type:          params.Type,
		SparePriority: priority,
		SkillRating:   params.SkillRating,

		Language:           language,
		EmailInvitations:   true,
		EmailReminders:     true,
		EmailNotifications: true,

		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.players.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

// GetPlayer returns one player within the tenant partition.
func (s *Service) GetPlayer(ctx context.Context, id uuid.UUID) (*Player, error) {
	player, err := s.players.Get(ctx, id)
	if err != nil {
		if errors.Is(err, scope.ErrNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

// PlayerFilter narrows ListPlayers. Zero values match everything.
type PlayerFilter struct {
	Position      Position
	Type          PlayerType
	SparePriority int
	ActiveOnly    bool
}

func (f PlayerFilter) matches(p *Player) bool {
	if f.Position != "" && p.Position != f.Position {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.SparePriority != 0 && p.SparePriority != f.SparePriority {
		return false
	}
	if f.ActiveOnly && !p.Active {
		return false
	}
	return true
}

// ListPlayers returns the tenant's players matching the filter, sorted by
// spare priority then name.
func (s *Service) ListPlayers(ctx context.Context, filter PlayerFilter) ([]*Player, error) {
	all, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}
	players := make([]*Player, 0, len(all))
	for _, p := range all {
		if filter.matches(p) {
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].SparePriority != players[j].SparePriority {
			return players[i].SparePriority < players[j].SparePriority
		}
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// UpdatePlayerParams applies partial changes to a player. Nil fields stay
// unchanged.
type UpdatePlayerParams struct {
	Name          *string
	Email         *string
	Position      *Position
	Type          *PlayerType
	SparePriority *int
	SkillRating   *int
	Language      *string

	EmailInvitations   *bool
	EmailReminders     *bool
	EmailNotifications *bool
	Active             *bool
}

// UpdatePlayer applies partial changes with the same validation rules as
// creation.
func (s *Service) UpdatePlayer(ctx context.Context, id uuid.UUID, params UpdatePlayerParams) (*Player, error) {
	t, err := s.tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidPlayer)
		}
		player.Name = name
	}
	if params.Email != nil {
		emailAddr := strings.ToLower(strings.TrimSpace(*params.Email))
		if emailAddr == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidPlayer)
		}
		if emailAddr != player.Email {
			if err := s.checkEmailFree(ctx, emailAddr, player.ID); err != nil {
				return nil, err
			}
		}
		player.Email = emailAddr
	}
	if params.Position != nil {
		if err := validatePosition(*params.Position, t.PositionMode); err != nil {
			return nil, err
		}
		player.Position = *params.Position
	}
	if params.Type != nil {
		switch *params.Type {
		case PlayerTypeRegular:
			player.Type = PlayerTypeRegular
			player.SparePriority = 0
		case PlayerTypeSpare:
			priority := player.SparePriority
			if params.SparePriority != nil {
				priority = *params.SparePriority
			}
			if priority != SparePriorityFirst && priority != SparePrioritySecond {
				return nil, ErrInvalidSparePriority
			}
			player.Type = PlayerTypeSpare
			player.SparePriority = priority
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidPlayerType, *params.Type)
		}
	} else if params.SparePriority != nil {
		if player.Type != PlayerTypeSpare {
			return nil, ErrInvalidSparePriority
		}
		if *params.SparePriority != SparePriorityFirst && *params.SparePriority != SparePrioritySecond {
			return nil, ErrInvalidSparePriority
		}
		player.SparePriority = *params.SparePriority
	}
	if params.SkillRating != nil {
		if err := validateSkillRating(*params.SkillRating); err != nil {
			return nil, err
		}
		player.SkillRating = *params.SkillRating
	}
	if params.Language != nil {
		player.Language = *params.Language
	}
	if params.EmailInvitations != nil {
		player.EmailInvitations = *params.EmailInvitations
	}
	if params.EmailReminders != nil {
		player.EmailReminders = *params.EmailReminders
	}
	if params.EmailNotifications != nil {
		player.EmailNotifications = *params.EmailNotifications
	}
	if params.Active != nil {
		player.Active = *params.Active
	}

	player.UpdatedAt = s.now().UTC()

	if err := s.players.Update(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}
	return player, nil
}

// DeletePlayer removes a player and their assignments and invitations.
func (s *Service) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return scope.ErrNoTenant
	}

	if err := s.players.Delete(ctx, id); err != nil {
		if errors.Is(err, scope.ErrNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}

	if _, err := s.assignments.DeleteForPlayer(ctx, tid, id); err != nil {
		return fmt.Errorf("failed to delete player assignments: %w", err)
	}
	if _, err := s.invitations.DeleteMatching(ctx, func(i *Invitation) bool {
		return i.PlayerID == id
	}); err != nil {
		return fmt.Errorf("failed to delete player invitations: %w", err)
	}
	return nil
}

// ConvertToSpare turns a regular into a spare with the given priority.
func (s *Service) ConvertToSpare(ctx context.Context, id uuid.UUID, priority int) (*Player, error) {
	spare := PlayerTypeSpare
	return s.UpdatePlayer(ctx, id, UpdatePlayerParams{Type: &spare, SparePriority: &priority})
}

// ConvertToRegular turns a spare back into a regular, clearing the priority.
func (s *Service) ConvertToRegular(ctx context.Context, id uuid.UUID) (*Player, error) {
	regular := PlayerTypeRegular
	return s.UpdatePlayer(ctx, id, UpdatePlayerParams{Type: &regular})
}

func (s *Service) checkEmailFree(ctx context.Context, emailAddr string, exceptID uuid.UUID) error {
	all, err := s.players.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to check player email: %w", err)
	}
	for _, p := range all {
		if p.Email == emailAddr && p.ID != exceptID {
			return ErrEmailTaken
		}
	}
	return nil
}

func validatePosition(pos Position, mode tenant.PositionMode) error {
	for _, valid := range ValidPositions(mode) {
		if pos == valid {
			return nil
		}
	}
	return fmt.Errorf("%w: %s in %s", ErrInvalidPosition, pos, mode)
}

func validatePlayerType(pt PlayerType, sparePriority int) error {
	switch pt {
	case PlayerTypeRegular:
		return nil
	case PlayerTypeSpare:
		if sparePriority != SparePriorityFirst && sparePriority != SparePrioritySecond {
			return ErrInvalidSparePriority
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPlayerType, pt)
	}
}

func validateSkillRating(rating int) error {
	if rating < 0 || rating > 5 {
		return ErrInvalidSkillRating
	}
	return nil
}
