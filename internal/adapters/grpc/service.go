// Package grpc serves the plant daemon over a unix socket. Messages are the
// protobuf well-known Struct and Empty types, so no generated code is needed.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "plantsim.daemon.v1.PlantDaemon"

// PlantDaemonServer is the server side of the daemon service
type PlantDaemonServer interface {
	Status(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	Tick(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	CashFlow(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Events(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes the daemon service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlantDaemonServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("Status", newEmpty, PlantDaemonServer.Status),
		unaryMethod("Tick", newEmpty, PlantDaemonServer.Tick),
		unaryMethod("CashFlow", newStruct, PlantDaemonServer.CashFlow),
		unaryMethod("Events", newStruct, PlantDaemonServer.Events),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "plantsim/daemon/v1/daemon.proto",
}

// RegisterPlantDaemonServer registers srv on s
func RegisterPlantDaemonServer(s grpc.ServiceRegistrar, srv PlantDaemonServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func newEmpty() *emptypb.Empty   { return &emptypb.Empty{} }
func newStruct() *structpb.Struct { return &structpb.Struct{} }

func unaryMethod[Req proto.Message](
	name string,
	newReq func() Req,
	call func(PlantDaemonServer, context.Context, Req) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			server := srv.(PlantDaemonServer)
			if interceptor == nil {
				return call(server, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(server, ctx, req.(Req))
			})
		},
	}
}
