package grpc_control

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Service and method names of the backpressure control API. Requests and
// responses are well-known protobuf types, so no generated messages are needed.
const (
	BackpressureControl_ServiceName = "dashboard.v1.BackpressureControl"

	BackpressureControl_GetStats_FullMethodName   = "/dashboard.v1.BackpressureControl/GetStats"
	BackpressureControl_ResetStats_FullMethodName = "/dashboard.v1.BackpressureControl/ResetStats"
)

// -----------------------------------------------------------------------------
// Client
// -----------------------------------------------------------------------------

type BackpressureControlClient interface {
	GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	ResetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type backpressureControlClient struct {
	cc grpc.ClientConnInterface
}

func NewBackpressureControlClient(cc grpc.ClientConnInterface) BackpressureControlClient {
	return &backpressureControlClient{cc}
}

func (c *backpressureControlClient) GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, BackpressureControl_GetStats_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *backpressureControlClient) ResetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, BackpressureControl_ResetStats_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type BackpressureControlServer interface {
	GetStats(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	ResetStats(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// UnimplementedBackpressureControlServer can be embedded to stay forward compatible
type UnimplementedBackpressureControlServer struct{}

func (UnimplementedBackpressureControlServer) GetStats(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}

func (UnimplementedBackpressureControlServer) ResetStats(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetStats not implemented")
}

func RegisterBackpressureControlServer(s grpc.ServiceRegistrar, srv BackpressureControlServer) {
	s.RegisterService(&BackpressureControl_ServiceDesc, srv)
}

func _BackpressureControl_GetStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackpressureControlServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BackpressureControl_GetStats_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BackpressureControlServer).GetStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _BackpressureControl_ResetStats_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BackpressureControlServer).ResetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: BackpressureControl_ResetStats_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BackpressureControlServer).ResetStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var BackpressureControl_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BackpressureControl_ServiceName,
	HandlerType: (*BackpressureControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStats", Handler: _BackpressureControl_GetStats_Handler},
		{MethodName: "ResetStats", Handler: _BackpressureControl_ResetStats_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dashboard/v1/control.proto",
}
