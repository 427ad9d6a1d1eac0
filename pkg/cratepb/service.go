// Package cratepb describes the crate.v1.CrateService gRPC service. Every
// message is a protobuf well-known type, so no generated code is needed.
package cratepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	ServiceName = "crate.v1.CrateService"

	GetTemperatureMethod = "/crate.v1.CrateService/GetTemperature"
	GetOccupancyMethod   = "/crate.v1.CrateService/GetOccupancy"
	DaemonRunningMethod  = "/crate.v1.CrateService/DaemonRunning"
)

// CrateServiceServer is the server API for CrateService.
type CrateServiceServer interface {
	// GetTemperature returns the crate temperature in degrees Celsius
	GetTemperature(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error)
	// GetOccupancy returns 20 characters of '0' (empty) and '1' (full)
	GetOccupancy(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	// DaemonRunning returns "running"
	DaemonRunning(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
}

// UnimplementedCrateServiceServer can be embedded for forward compatibility.
type UnimplementedCrateServiceServer struct{}

func (UnimplementedCrateServiceServer) GetTemperature(context.Context, *emptypb.Empty) (*wrapperspb.DoubleValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTemperature not implemented")
}

func (UnimplementedCrateServiceServer) GetOccupancy(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOccupancy not implemented")
}

func (UnimplementedCrateServiceServer) DaemonRunning(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method DaemonRunning not implemented")
}

// RegisterCrateServiceServer registers srv on s
func RegisterCrateServiceServer(s grpc.ServiceRegistrar, srv CrateServiceServer) {
	s.RegisterService(&CrateService_ServiceDesc, srv)
}

func unaryHandler[Resp any](
	method string,
	call func(CrateServiceServer, context.Context, *emptypb.Empty) (Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(emptypb.Empty)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CrateServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CrateServiceServer), ctx, req.(*emptypb.Empty))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CrateService_ServiceDesc is the grpc.ServiceDesc for CrateService.
var CrateService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CrateServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetTemperature",
			Handler:    unaryHandler(GetTemperatureMethod, CrateServiceServer.GetTemperature),
		},
		{
			MethodName: "GetOccupancy",
			Handler:    unaryHandler(GetOccupancyMethod, CrateServiceServer.GetOccupancy),
		},
		{
			MethodName: "DaemonRunning",
			Handler:    unaryHandler(DaemonRunningMethod, CrateServiceServer.DaemonRunning),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "crate/v1/crate.proto",
}

// CrateServiceClient is the client API for CrateService.
type CrateServiceClient interface {
	GetTemperature(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.DoubleValue, error)
	GetOccupancy(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	DaemonRunning(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

type crateServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewCrateServiceClient creates a client on cc
func NewCrateServiceClient(cc grpc.ClientConnInterface) CrateServiceClient {
	return &crateServiceClient{cc}
}

func (c *crateServiceClient) GetTemperature(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.DoubleValue, error) {
	out := new(wrapperspb.DoubleValue)
	if err := c.cc.Invoke(ctx, GetTemperatureMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crateServiceClient) GetOccupancy(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, GetOccupancyMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *crateServiceClient) DaemonRunning(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, DaemonRunningMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
