package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/email"
	"github.com/dmitrymomot/rosterkit/pkg/scope"
)

// InvitePlayers creates invitations for the given players to a game and
// sends each one an email when a sender is configured and the player has
// invitation emails enabled. Delivery failures are logged and do not fail
// the operation; the invitation rows are the source of truth.
func (s *Service) InvitePlayers(ctx context.Context, gameID uuid.UUID, playerIDs []uuid.UUID) ([]*Invitation, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	existing, err := s.invitations.List(ctx)
	if err != nil {
		return nil, err
	}
	invited := make(map[uuid.UUID]bool)
	for _, inv := range existing {
		if inv.GameID == gameID {
			invited[inv.PlayerID] = true
		}
	}

	var created []*Invitation
	for _, playerID := range playerIDs {
		if invited[playerID] {
			continue
		}
		player, err := s.GetPlayer(ctx, playerID)
		if err != nil {
			continue
		}
		invited[playerID] = true

		inv := &Invitation{
			ID:       uuid.New(),
			GameID:   game.ID,
			PlayerID: player.ID,
			Type:     player.Type,
			Status:   InvitationSent,
			SentAt:   s.now().UTC(),
		}
		if err := s.invitations.Create(ctx, inv); err != nil {
			return created, fmt.Errorf("failed to create invitation: %w", err)
		}
		created = append(created, inv)

		s.sendInvitationEmail(ctx, game, player)
	}

	if len(created) == 0 && len(playerIDs) > 0 {
		return nil, ErrNoPlayers
	}
	return created, nil
}

func (s *Service) sendInvitationEmail(ctx context.Context, game *Game, player *Player) {
	if s.mailer == nil || !player.EmailInvitations {
		return
	}

	params := email.SendParams{
		SendTo:  player.Email,
		Subject: fmt.Sprintf("Game invitation: %s", game.Venue),
		BodyHTML: fmt.Sprintf(
			"<p>Hi %s,</p><p>You are invited to a game at %s on %s.</p><p>%s vs %s</p>",
			player.Name, game.Venue, game.StartsAt.Format("Mon, 2 Jan 2006 15:04"),
			game.TeamName1, game.TeamName2,
		),
		Tag: "game-invitation",
	}
	if err := s.mailer.Send(ctx, params); err != nil {
		s.logger.ErrorContext(ctx, "failed to send invitation email",
			slog.String("game_id", game.ID.String()),
			slog.String("player_id", player.ID.String()),
			slog.Any("error", err),
		)
	}
}

// GameInvitations returns all invitations for a game.
func (s *Service) GameInvitations(ctx context.Context, gameID uuid.UUID) ([]*Invitation, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	all, err := s.invitations.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*Invitation
	for _, inv := range all {
		if inv.GameID == gameID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// MarkInvitationOpened records that the player opened the invitation.
// Already-responded invitations keep their status.
func (s *Service) MarkInvitationOpened(ctx context.Context, invitationID uuid.UUID) (*Invitation, error) {
	inv, err := s.getInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	if inv.Status == InvitationSent {
		now := s.now().UTC()
		inv.Status = InvitationOpened
		inv.OpenedAt = &now
		if err := s.invitations.Update(ctx, inv); err != nil {
			return nil, fmt.Errorf("failed to update invitation: %w", err)
		}
	}
	return inv, nil
}

// RespondToInvitation records the player's yes/no answer.
func (s *Service) RespondToInvitation(ctx context.Context, invitationID uuid.UUID, accept bool) (*Invitation, error) {
	inv, err := s.getInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	inv.Status = InvitationResponded
	inv.RespondedAt = &now
	if accept {
		inv.Response = "yes"
	} else {
		inv.Response = "no"
	}

	if err := s.invitations.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	return inv, nil
}

func (s *Service) getInvitation(ctx context.Context, id uuid.UUID) (*Invitation, error) {
	inv, err := s.invitations.Get(ctx, id)
	if err != nil {
		if errors.Is(err, scope.ErrNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return inv, nil
}
