package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/ringside/internal/entities/ring"
	"github.com/KirkDiggler/ringside/internal/errors"
	"github.com/KirkDiggler/ringside/internal/handlers/match/v1alpha1"
	"github.com/KirkDiggler/ringside/internal/orchestrators/match"
	matchmock "github.com/KirkDiggler/ringside/internal/orchestrators/match/mock"
)

const testMatchID = "match_1"

type HandlerTestSuite struct {
	suite.Suite
	ctx       context.Context
	ctrl      *gomock.Controller
	mockMatch *matchmock.MockService
	handler   *v1alpha1.Handler
	server    *grpc.Server
	conn      *grpc.ClientConn
	client    *v1alpha1.Client
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockMatch = matchmock.NewMockService(s.ctrl)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{MatchService: s.mockMatch})
	s.Require().NoError(err)
	s.handler = handler

	lis := bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterMatchServiceServer(s.server, handler)
	go func() { _ = s.server.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = v1alpha1.NewClient(conn)
}

func (s *HandlerTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
	s.ctrl.Finish()
}

func testView() *match.MatchView {
	return &match.MatchView{
		ID:       testMatchID,
		Seed:     1<<63 + 5,
		State:    "awaiting_action",
		Turn:     2,
		ActiveID: "hero",
		Width:    2,
		Height:   1,
		Cells: []*match.CellView{
			{Position: ring.Position{X: 0, Y: 0}, Terrain: ring.TerrainNormal, Occupant: "hero"},
			{Position: ring.Position{X: 1, Y: 0}, Terrain: ring.TerrainTrap, Pickup: &ring.Pickup{}},
		},
		Wrestlers: []*match.WrestlerView{
			{
				ID:         "hero",
				Name:       "Hero",
				HP:         7,
				MaxHP:      10,
				Alive:      true,
				Controller: ring.ControllerHuman,
				Effects:    []ring.StatusEffect{{Kind: ring.StatusShield, Magnitude: 2, Remaining: 1}},
			},
		},
		Hand:         []ring.Card{{ID: "jab", Name: "Jab", Kind: ring.ActionAttack, Damage: 3, Range: 1}},
		SelectedCard: -1,
		Messages:     []string{"Turn 2: Hero's move."},
	}
}

func (s *HandlerTestSuite) TestNewHandlerRequiresService() {
	h, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Error(err)
	s.Nil(h)

	h, err = v1alpha1.NewHandler(nil)
	s.Error(err)
	s.Nil(h)
}

func (s *HandlerTestSuite) TestCreateMatchWithInlineScenario() {
	s.mockMatch.EXPECT().
		CreateMatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *match.CreateMatchInput) (*match.CreateMatchOutput, error) {
			s.Equal(uint64(42), input.Seed)
			s.Require().NotNil(input.Scenario)
			s.Equal("duel", input.Scenario.Name)
			s.Len(input.Scenario.Wrestlers, 2)
			return &match.CreateMatchOutput{
				Match: testView(),
				Outcomes: []*match.OutcomeView{
					{ActorID: "brute", Card: "jab", Applied: true, Damage: 3, TargetID: "hero"},
				},
			}, nil
		})

	resp, err := s.client.CreateMatch(s.ctx, &v1alpha1.CreateMatchRequest{
		Seed: 42,
		ScenarioYAML: `
name: duel
board: {width: 2, height: 1}
wrestlers:
  - {id: hero, x: 0, y: 0, controller: human}
  - {id: brute, x: 1, y: 0}
`,
	})
	s.Require().NoError(err)

	s.Equal(testMatchID, resp.Match.ID)
	s.Equal(uint64(1<<63+5), resp.Match.Seed)
	s.Equal(2, resp.Match.Turn)
	s.Require().Len(resp.Match.Cells, 2)
	s.Equal(ring.TerrainTrap, resp.Match.Cells[1].Terrain)
	s.Require().Len(resp.Match.Wrestlers, 1)
	s.Equal(7, resp.Match.Wrestlers[0].HP)
	s.Equal(ring.StatusShield, resp.Match.Wrestlers[0].Effects[0].Kind)
	s.Equal(ring.CardID("jab"), resp.Match.Hand[0].ID)
	s.Equal(-1, resp.Match.SelectedCard)
	s.Require().Len(resp.Outcomes, 1)
	s.Equal(3, resp.Outcomes[0].Damage)
}

func (s *HandlerTestSuite) TestCreateMatchRejectsBadScenario() {
	_, err := s.client.CreateMatch(s.ctx, &v1alpha1.CreateMatchRequest{ScenarioYAML: "wrestlers: ["})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestSelectCard() {
	s.mockMatch.EXPECT().
		SelectCard(gomock.Any(), &match.SelectCardInput{MatchID: testMatchID, CardIndex: 0}).
		Return(&match.SelectCardOutput{Match: testView()}, nil)

	resp, err := s.client.SelectCard(s.ctx, &v1alpha1.SelectCardRequest{MatchID: testMatchID})
	s.Require().NoError(err)
	s.Equal(testMatchID, resp.Match.ID)
}

func (s *HandlerTestSuite) TestSelectCardRequiresIndex() {
	req, err := structpb.NewStruct(map[string]any{"match_id": testMatchID})
	s.Require().NoError(err)

	_, err = s.handler.SelectCard(s.ctx, req)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *HandlerTestSuite) TestSelectTargetCell() {
	s.mockMatch.EXPECT().
		SelectTarget(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, input *match.SelectTargetInput) (*match.SelectTargetOutput, error) {
			s.Equal(testMatchID, input.MatchID)
			s.Require().NotNil(input.Target.Cell)
			s.Equal(ring.Position{X: 1, Y: 0}, *input.Target.Cell)
			s.Empty(input.Target.EntityID)
			return &match.SelectTargetOutput{Match: testView()}, nil
		})

	_, err := s.client.SelectTarget(s.ctx, &v1alpha1.SelectTargetRequest{
		MatchID: testMatchID,
		Cell:    &ring.Position{X: 1, Y: 0},
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TestConfirmActionCarriesEngineReason() {
	s.mockMatch.EXPECT().
		ConfirmAction(gomock.Any(), &match.ConfirmActionInput{MatchID: testMatchID}).
		Return(nil, ring.ErrInvalidIndex(4, 3))

	_, err := s.client.ConfirmAction(s.ctx, testMatchID)
	s.Require().Error(err)
	s.Equal(errors.CodeOutOfRange, errors.GetCode(err))
	s.True(errors.HasReason(err, ring.ReasonInvalidIndex))
}

func (s *HandlerTestSuite) TestEndTurn() {
	s.mockMatch.EXPECT().
		EndTurn(gomock.Any(), &match.EndTurnInput{MatchID: testMatchID}).
		Return(&match.EndTurnOutput{Match: testView()}, nil)

	resp, err := s.client.EndTurn(s.ctx, testMatchID)
	s.Require().NoError(err)
	s.Empty(resp.Outcomes)
}

func (s *HandlerTestSuite) TestSaveMatch() {
	s.mockMatch.EXPECT().
		SaveMatch(gomock.Any(), &match.SaveMatchInput{MatchID: testMatchID}).
		Return(&match.SaveMatchOutput{Turn: 3, Bytes: 512}, nil)

	resp, err := s.client.SaveMatch(s.ctx, testMatchID)
	s.Require().NoError(err)
	s.Equal(3, resp.Turn)
	s.Equal(512, resp.Bytes)
}

func (s *HandlerTestSuite) TestLoadMatchCorrupt() {
	s.mockMatch.EXPECT().
		LoadMatch(gomock.Any(), &match.LoadMatchInput{MatchID: testMatchID}).
		Return(nil, ring.ErrCorruptSnapshot(nil, "snapshot has no version"))

	_, err := s.client.LoadMatch(s.ctx, testMatchID)
	s.Require().Error(err)
	s.True(errors.IsDataLoss(err))
	s.True(errors.HasReason(err, ring.ReasonCorruptSnapshot))
}

func (s *HandlerTestSuite) TestLoadMatchFreshStart() {
	s.mockMatch.EXPECT().
		LoadMatch(gomock.Any(), &match.LoadMatchInput{MatchID: testMatchID}).
		Return(&match.LoadMatchOutput{Match: testView(), FreshStart: true}, nil)

	resp, err := s.client.LoadMatch(s.ctx, testMatchID)
	s.Require().NoError(err)
	s.True(resp.FreshStart)
}

func (s *HandlerTestSuite) TestLoadMatchReturnsAITurns() {
	s.mockMatch.EXPECT().
		LoadMatch(gomock.Any(), &match.LoadMatchInput{MatchID: testMatchID}).
		Return(&match.LoadMatchOutput{
			Match:    testView(),
			Outcomes: []*match.OutcomeView{{ActorID: "brute", Damage: 3}},
		}, nil)

	resp, err := s.client.LoadMatch(s.ctx, testMatchID)
	s.Require().NoError(err)
	s.False(resp.FreshStart)
	s.Require().Len(resp.Outcomes, 1)
	s.Equal("brute", resp.Outcomes[0].ActorID)
}

func (s *HandlerTestSuite) TestExpireTurns() {
	s.mockMatch.EXPECT().
		ExpireTurns(gomock.Any(), &match.ExpireTurnsInput{}).
		Return(&match.ExpireTurnsOutput{Expired: []string{"a", "b"}}, nil)

	resp, err := s.client.ExpireTurns(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, resp.Expired)
}

func (s *HandlerTestSuite) TestDeleteMatchNotFound() {
	s.mockMatch.EXPECT().
		DeleteMatch(gomock.Any(), &match.DeleteMatchInput{MatchID: testMatchID}).
		Return(nil, errors.NotFound("match match_1 not found"))

	_, err := s.client.DeleteMatch(s.ctx, testMatchID)
	s.True(errors.IsNotFound(err))
}

func (s *HandlerTestSuite) TestMatchIDRequired() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "get",
			call: func() error { _, err := s.client.GetMatch(s.ctx, ""); return err },
		},
		{
			name: "confirm",
			call: func() error { _, err := s.client.ConfirmAction(s.ctx, ""); return err },
		},
		{
			name: "select target",
			call: func() error {
				_, err := s.client.SelectTarget(s.ctx, &v1alpha1.SelectTargetRequest{EntityID: "hero"})
				return err
			},
		},
		{
			name: "delete",
			call: func() error { _, err := s.client.DeleteMatch(s.ctx, ""); return err },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.call()
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}
