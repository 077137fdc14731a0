// Package v1alpha1 exposes the match orchestrator as the
// ringside.api.v1alpha1.MatchService gRPC service. Messages travel as
// google.protobuf.Struct documents.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "ringside.api.v1alpha1.MatchService"

// Method names
const (
	MethodCreateMatch   = "CreateMatch"
	MethodGetMatch      = "GetMatch"
	MethodSelectCard    = "SelectCard"
	MethodSelectTarget  = "SelectTarget"
	MethodConfirmAction = "ConfirmAction"
	MethodEndTurn       = "EndTurn"
	MethodSaveMatch     = "SaveMatch"
	MethodLoadMatch     = "LoadMatch"
	MethodExpireTurns   = "ExpireTurns"
	MethodDeleteMatch   = "DeleteMatch"
)

// FullMethod returns the /service/method path used on the wire
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// MatchServiceServer is the server API for MatchService
type MatchServiceServer interface {
	CreateMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SelectTarget(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ConfirmAction(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndTurn(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SaveMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoadMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExpireTurns(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteMatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(MatchServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MatchServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MatchServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for MatchService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler(MethodCreateMatch, MatchServiceServer.CreateMatch),
		unaryHandler(MethodGetMatch, MatchServiceServer.GetMatch),
		unaryHandler(MethodSelectCard, MatchServiceServer.SelectCard),
		unaryHandler(MethodSelectTarget, MatchServiceServer.SelectTarget),
		unaryHandler(MethodConfirmAction, MatchServiceServer.ConfirmAction),
		unaryHandler(MethodEndTurn, MatchServiceServer.EndTurn),
		unaryHandler(MethodSaveMatch, MatchServiceServer.SaveMatch),
		unaryHandler(MethodLoadMatch, MatchServiceServer.LoadMatch),
		unaryHandler(MethodExpireTurns, MatchServiceServer.ExpireTurns),
		unaryHandler(MethodDeleteMatch, MatchServiceServer.DeleteMatch),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ringside/api/v1alpha1/match.proto",
}

// RegisterMatchServiceServer registers srv on s
func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
