package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName       = "club.internal.v1.ClubInternalService"
	checkAccessMethod = "/" + ServiceName + "/CheckAccess"
	runExpiryMethod   = "/" + ServiceName + "/RunMembershipExpiryNotifications"
)

// ClubInternalServer is the server API of the internal club service. Messages are
// protobuf well-known types so no generated code is needed on either side.
type ClubInternalServer interface {
	CheckAccess(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RunMembershipExpiryNotifications(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

func RegisterClubInternalServer(registrar grpc.ServiceRegistrar, srv ClubInternalServer) {
	registrar.RegisterService(&ClubInternalServiceDesc, srv)
}

var ClubInternalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClubInternalServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CheckAccess", Handler: checkAccessHandler},
		{MethodName: "RunMembershipExpiryNotifications", Handler: runExpiryHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "club/internal/v1/club.proto",
}

func checkAccessHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClubInternalServer).CheckAccess(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: checkAccessMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClubInternalServer).CheckAccess(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func runExpiryHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ClubInternalServer).RunMembershipExpiryNotifications(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: runExpiryMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ClubInternalServer).RunMembershipExpiryNotifications(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// ClubInternalClient calls the internal service over conn.
type ClubInternalClient struct {
	conn grpc.ClientConnInterface
}

func NewClubInternalClient(conn grpc.ClientConnInterface) *ClubInternalClient {
	return &ClubInternalClient{conn: conn}
}

func (c *ClubInternalClient) CheckAccess(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, checkAccessMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ClubInternalClient) RunMembershipExpiryNotifications(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, runExpiryMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
