package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ringside/internal/errors"
)

// Client calls MatchService over an existing connection
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CreateMatch starts a match
func (c *Client) CreateMatch(ctx context.Context, req *CreateMatchRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodCreateMatch, req, opts...)
}

// GetMatch fetches the current view
func (c *Client) GetMatch(ctx context.Context, matchID string, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodGetMatch, &MatchRequest{MatchID: matchID}, opts...)
}

// SelectCard picks a card from the active hand
func (c *Client) SelectCard(ctx context.Context, req *SelectCardRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodSelectCard, req, opts...)
}

// SelectTarget aims the selected card
func (c *Client) SelectTarget(ctx context.Context, req *SelectTargetRequest, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodSelectTarget, req, opts...)
}

// ConfirmAction plays the selected card
func (c *Client) ConfirmAction(ctx context.Context, matchID string, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodConfirmAction, &MatchRequest{MatchID: matchID}, opts...)
}

// EndTurn passes the active turn
func (c *Client) EndTurn(ctx context.Context, matchID string, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodEndTurn, &MatchRequest{MatchID: matchID}, opts...)
}

// SaveMatch persists the match
func (c *Client) SaveMatch(ctx context.Context, matchID string, opts ...grpc.CallOption) (*SaveMatchResponse, error) {
	return call[SaveMatchResponse](ctx, c, MethodSaveMatch, &MatchRequest{MatchID: matchID}, opts...)
}

// LoadMatch restores the saved match
func (c *Client) LoadMatch(ctx context.Context, matchID string, opts ...grpc.CallOption) (*MatchResponse, error) {
	return call[MatchResponse](ctx, c, MethodLoadMatch, &MatchRequest{MatchID: matchID}, opts...)
}

// ExpireTurns applies turn timeouts
func (c *Client) ExpireTurns(ctx context.Context, opts ...grpc.CallOption) (*ExpireTurnsResponse, error) {
	return call[ExpireTurnsResponse](ctx, c, MethodExpireTurns, &ExpireTurnsRequest{}, opts...)
}

// DeleteMatch drops a match and its save
func (c *Client) DeleteMatch(ctx context.Context, matchID string, opts ...grpc.CallOption) (*DeleteMatchResponse, error) {
	return call[DeleteMatchResponse](ctx, c, MethodDeleteMatch, &MatchRequest{MatchID: matchID}, opts...)
}

func call[T any](ctx context.Context, c *Client, method string, req any, opts ...grpc.CallOption) (*T, error) {
	resp := new(T)
	if err := c.invoke(ctx, method, req, resp, opts...); err != nil {
		return nil, err
	}
	return resp, nil
}

// invoke returns errors in the internal form so callers can inspect codes
// and metadata
func (c *Client) invoke(ctx context.Context, method string, req, resp any, opts ...grpc.CallOption) error {
	in, err := encode(req)
	if err != nil {
		return err
	}

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return errors.FromGRPCError(err)
	}
	return decode(out, resp)
}
