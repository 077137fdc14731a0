package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ringside/internal/config"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
)

// HandlerConfig holds dependencies for the match handler
type HandlerConfig struct {
	MatchService match.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.MatchService == nil {
		return errors.InvalidArgument("match service is required")
	}
	return nil
}

// Handler implements MatchServiceServer
type Handler struct {
	matchService match.Service
}

// NewHandler creates a new match handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		matchService: cfg.MatchService,
	}, nil
}

// Ensure Handler implements MatchServiceServer
var _ MatchServiceServer = (*Handler)(nil)

// CreateMatch starts a match from the server scenario or an inline one
func (h *Handler) CreateMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in CreateMatchRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	input := &match.CreateMatchInput{Seed: in.Seed}
	if in.ScenarioYAML != "" {
		sc, err := config.ParseScenario([]byte(in.ScenarioYAML))
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Scenario = sc
	}

	out, err := h.matchService.CreateMatch(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match, Outcomes: out.Outcomes})
}

// GetMatch returns the current view of a match
func (h *Handler) GetMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.matchService.GetMatch(ctx, &match.GetMatchInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match})
}

// SelectCard picks a card from the active hand
func (h *Handler) SelectCard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SelectCardRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.MatchID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("match_id is required"))
	}
	if _, ok := req.GetFields()["card_index"]; !ok {
		return nil, errors.ToGRPCError(errors.InvalidArgument("card_index is required"))
	}

	out, err := h.matchService.SelectCard(ctx, &match.SelectCardInput{
		MatchID:   in.MatchID,
		CardIndex: in.CardIndex,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match})
}

// SelectTarget aims the selected card. Sending neither cell nor entity_id
// clears the target.
func (h *Handler) SelectTarget(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in SelectTargetRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.MatchID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("match_id is required"))
	}

	out, err := h.matchService.SelectTarget(ctx, &match.SelectTargetInput{
		MatchID: in.MatchID,
		Target: match.Target{
			Cell:     in.Cell,
			EntityID: in.EntityID,
		},
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match})
}

// ConfirmAction plays the selected card and any AI turns that follow
func (h *Handler) ConfirmAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.matchService.ConfirmAction(ctx, &match.ConfirmActionInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match, Outcomes: out.Outcomes})
}

// EndTurn passes the active human turn
func (h *Handler) EndTurn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.matchService.EndTurn(ctx, &match.EndTurnInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match, Outcomes: out.Outcomes})
}

// SaveMatch persists the match
func (h *Handler) SaveMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.matchService.SaveMatch(ctx, &match.SaveMatchInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&SaveMatchResponse{Turn: out.Turn, Bytes: out.Bytes})
}

// LoadMatch restores the saved match
func (h *Handler) LoadMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.matchService.LoadMatch(ctx, &match.LoadMatchInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&MatchResponse{Match: out.Match, Outcomes: out.Outcomes, FreshStart: out.FreshStart})
}

// ExpireTurns applies turn timeouts across all live matches
func (h *Handler) ExpireTurns(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.matchService.ExpireTurns(ctx, &match.ExpireTurnsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ExpireTurnsResponse{Expired: out.Expired})
}

// DeleteMatch drops a match and its save
func (h *Handler) DeleteMatch(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	matchID, err := requireMatchID(req)
	if err != nil {
		return nil, err
	}

	out, err := h.matchService.DeleteMatch(ctx, &match.DeleteMatchInput{MatchID: matchID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&DeleteMatchResponse{Live: out.Live, Saved: out.Saved})
}

func requireMatchID(req *structpb.Struct) (string, error) {
	var in MatchRequest
	if err := decode(req, &in); err != nil {
		return "", errors.ToGRPCError(err)
	}
	if in.MatchID == "" {
		return "", errors.ToGRPCError(errors.InvalidArgument("match_id is required"))
	}
	return in.MatchID, nil
}

func respond(msg any) (*structpb.Struct, error) {
	out, err := encode(msg)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}
