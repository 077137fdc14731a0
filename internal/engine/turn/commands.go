package turn

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/ringside/internal/engine/policy"
	"github.com/KirkDiggler/ringside/internal/engine/resolver"
	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
)

func (s *Session) requireAwaiting() error {
	if s.GameOver() {
		return errors.FailedPrecondition("the match is over")
	}
	if !s.machine.Is(StateAwaitingAction) {
		return errors.FailedPreconditionf("cannot act while %s", s.State())
	}
	return nil
}

// SelectCard picks a card from the active hand. Any previous selection,
// target included, is discarded.
func (s *Session) SelectCard(index int) error {
	if err := s.requireAwaiting(); err != nil {
		return err
	}
	hand := s.Active().Hand()
	if index < 0 || index >= len(hand) {
		return ring.ErrInvalidIndex(index, len(hand))
	}

	s.selectedCard = index
	s.selection = ring.NoSelection{}
	return nil
}

// SelectTarget sets the target of the selected card
func (s *Session) SelectTarget(sel ring.Selection) error {
	if err := s.requireAwaiting(); err != nil {
		return err
	}
	if s.selectedCard < 0 {
		return errors.FailedPrecondition("select a card first")
	}

	switch t := sel.(type) {
	case nil:
		sel = ring.NoSelection{}
	case ring.CellSelection:
		if !s.board.InBounds(t.Position) {
			return ring.ErrOutOfBounds(t.Position)
		}
	case ring.EntitySelection:
		if _, ok := s.registry.Get(t.ID); !ok {
			return errors.NotFoundf("wrestler %s not found", t.ID)
		}
	}

	s.selection = sel
	return nil
}

// ConfirmAction plays the selected card, resolves it and ends the turn.
// A declined action still costs the card and the turn.
func (s *Session) ConfirmAction(ctx context.Context) (resolver.Outcome, error) {
	if err := s.requireAwaiting(); err != nil {
		return resolver.Outcome{}, err
	}
	if s.selectedCard < 0 {
		return resolver.Outcome{}, errors.FailedPrecondition("no card selected")
	}
	if s.Settling() {
		return resolver.Outcome{}, errors.Aborted("the previous action is still settling")
	}

	out, err := s.play(ctx, s.selectedCard, s.selection)
	if err != nil {
		return resolver.Outcome{}, err
	}
	if s.settle > 0 {
		s.settleUntil = s.clock.Now().Add(s.settle)
	}
	return out, nil
}

// play resolves exactly one card and then ends the turn
func (s *Session) play(ctx context.Context, index int, sel ring.Selection) (resolver.Outcome, error) {
	actor := s.Active()
	if _, err := s.hands.Peek(actor, index); err != nil {
		return resolver.Outcome{}, err
	}

	if err := s.machine.Event(ctx, eventConfirm); err != nil {
		return resolver.Outcome{}, errors.Wrap(err, "failed to start resolution")
	}

	card, err := s.hands.PlayCard(actor, index)
	if err != nil {
		return resolver.Outcome{}, err
	}

	out := s.resolver.Resolve(ctx, resolver.Action{
		Actor:     actor,
		Card:      card,
		Selection: sel,
	})
	s.recordOutcome(ctx, out)

	if err := s.machine.Event(ctx, eventResolved); err != nil {
		return out, errors.Wrap(err, "failed to finish resolution")
	}
	return out, s.endTurn(ctx)
}

func (s *Session) recordOutcome(ctx context.Context, out resolver.Outcome) {
	actor, _ := s.registry.Get(out.ActorID)
	target, _ := s.registry.Get(out.TargetID)

	s.log.push(out.Message)
	s.publish(ctx, ring.EventOutcome, actor, target, out.Message)

	for _, id := range out.Eliminated {
		if w, ok := s.registry.Get(id); ok {
			s.log.push(fmt.Sprintf("%s has been eliminated!", w.Name()))
		}
	}

	slog.Info("Resolved action",
		"match_id", s.id,
		"turn", s.turn,
		"actor", out.ActorID,
		"card", out.Card,
		"applied", out.Applied,
		"reason", out.Reason)
}

// EndTurnNow ends the active turn without playing a card
func (s *Session) EndTurnNow(ctx context.Context) error {
	if err := s.requireAwaiting(); err != nil {
		return err
	}
	s.log.push(fmt.Sprintf("%s ended their turn.", s.Active().Name()))
	return s.skip(ctx)
}

// CheckTimeout ends the active turn if its deadline has passed and reports
// whether it did.
func (s *Session) CheckTimeout(ctx context.Context) (bool, error) {
	if s.timeout <= 0 || s.deadline.IsZero() || !s.machine.Is(StateAwaitingAction) {
		return false, nil
	}
	if s.clock.Now().Before(s.deadline) {
		return false, nil
	}

	active := s.Active()
	s.log.push(fmt.Sprintf("%s ran out of time.", active.Name()))
	slog.Info("Turn timed out",
		"match_id", s.id,
		"wrestler_id", active.GetID(),
		"turn", s.turn)

	return true, s.skip(ctx)
}

func (s *Session) skip(ctx context.Context) error {
	if err := s.machine.Event(ctx, eventSkip); err != nil {
		return errors.Wrap(err, "failed to skip turn")
	}
	return s.endTurn(ctx)
}

// PlayAITurn lets the policy take the active wrestler's turn
func (s *Session) PlayAITurn(ctx context.Context) (resolver.Outcome, error) {
	if err := s.requireAwaiting(); err != nil {
		return resolver.Outcome{}, err
	}

	actor := s.Active()
	decision := policy.Choose(s.resolver, actor, s.ActiveHand())

	switch {
	case decision.Pass:
		s.log.push(fmt.Sprintf("%s has no cards and passes.", actor.Name()))
		return resolver.Outcome{ActorID: actor.GetID()}, s.skip(ctx)

	case decision.Waste:
		return s.waste(ctx, decision.CardIndex)
	}

	return s.play(ctx, decision.CardIndex, decision.Selection)
}

// waste discards a card that has nothing to act on
func (s *Session) waste(ctx context.Context, index int) (resolver.Outcome, error) {
	actor := s.Active()
	if _, err := s.hands.Peek(actor, index); err != nil {
		return resolver.Outcome{}, err
	}
	if err := s.machine.Event(ctx, eventConfirm); err != nil {
		return resolver.Outcome{}, errors.Wrap(err, "failed to start resolution")
	}

	card, err := s.hands.PlayCard(actor, index)
	if err != nil {
		return resolver.Outcome{}, err
	}

	reason := ring.ErrNoLegalTarget("%s has no targets", actor.Name())
	out := resolver.Outcome{
		ActorID: actor.GetID(),
		Card:    card.ID,
		Kind:    card.Kind,
		Err:     reason,
		Reason:  ring.ReasonNoLegalTarget,
		Message: fmt.Sprintf("%s has no targets, %s lost.", actor.Name(), card.Name),
	}
	s.recordOutcome(ctx, out)

	if err := s.machine.Event(ctx, eventResolved); err != nil {
		return out, errors.Wrap(err, "failed to finish resolution")
	}
	return out, s.endTurn(ctx)
}
