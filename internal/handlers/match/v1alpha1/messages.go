package v1alpha1

import (
	"encoding/json"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
)

// CreateMatchRequest starts a match. ScenarioYAML overrides the server's
// scenario; Seed zero lets the server pick.
type CreateMatchRequest struct {
	ScenarioYAML string `json:"scenario_yaml,omitempty"`
	Seed         uint64 `json:"seed,omitempty,string"`
}

// MatchRequest addresses one match
type MatchRequest struct {
	MatchID string `json:"match_id"`
}

// SelectCardRequest picks a card from the active hand
type SelectCardRequest struct {
	MatchID   string `json:"match_id"`
	CardIndex int    `json:"card_index"`
}

// SelectTargetRequest aims the selected card at a cell or wrestler
type SelectTargetRequest struct {
	MatchID  string         `json:"match_id"`
	Cell     *ring.Position `json:"cell,omitempty"`
	EntityID string         `json:"entity_id,omitempty"`
}

// ExpireTurnsRequest is empty
type ExpireTurnsRequest struct{}

// MatchResponse carries a match view and any outcomes the call produced
type MatchResponse struct {
	Match      *match.MatchView     `json:"match"`
	Outcomes   []*match.OutcomeView `json:"outcomes,omitempty"`
	FreshStart bool                 `json:"fresh_start,omitempty"`
}

// SaveMatchResponse reports what was stored
type SaveMatchResponse struct {
	Turn  int `json:"turn"`
	Bytes int `json:"bytes"`
}

// ExpireTurnsResponse lists timed out matches
type ExpireTurnsResponse struct {
	Expired []string `json:"expired,omitempty"`
}

// DeleteMatchResponse reports what was removed
type DeleteMatchResponse struct {
	Live  bool `json:"live"`
	Saved bool `json:"saved"`
}

// encode turns a message into a Struct
func encode(msg any) (*structpb.Struct, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	return out, nil
}

// decode fills msg from a Struct
func decode(in *structpb.Struct, msg any) error {
	if in == nil {
		return errors.InvalidArgument("request is required")
	}
	data, err := in.MarshalJSON()
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "malformed request")
	}
	return nil
}
