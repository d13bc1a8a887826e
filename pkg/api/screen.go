package api

import (
	"context"
	"errors"

	"google.golang.org/grpc"
)

const (
	screenServiceName = "netmonitor.ScreenService"

	methodGetScreen       = "/" + screenServiceName + "/GetScreen"
	methodGrantPermission = "/" + screenServiceName + "/GrantPermission"
	methodRefresh         = "/" + screenServiceName + "/Refresh"
	methodPull            = "/" + screenServiceName + "/Pull"
	methodExport          = "/" + screenServiceName + "/Export"
	methodPushTelemetry   = "/" + screenServiceName + "/PushTelemetry"
	methodWatch           = "/" + screenServiceName + "/Watch"
)

// ScreenServiceClient defines the gRPC client interface for the monitor screen.
type ScreenServiceClient interface {
	GetScreen(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error)
	GrantPermission(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error)
	Refresh(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error)
	Pull(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error)
	Export(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ExportResponse, error)
	PushTelemetry(ctx context.Context, in *PushTelemetryRequest, opts ...grpc.CallOption) (*ScreenView, error)
	Watch(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (ScreenService_WatchClient, error)
}

type screenServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewScreenServiceClient creates a new ScreenService client. Calls always use
// the JSON codec.
func NewScreenServiceClient(cc grpc.ClientConnInterface) ScreenServiceClient {
	return &screenServiceClient{cc: cc}
}

func (c *screenServiceClient) invokeView(ctx context.Context, method string, in any, opts []grpc.CallOption) (*ScreenView, error) {
	out := new(ScreenView)
	if err := c.cc.Invoke(ctx, method, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *screenServiceClient) GetScreen(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error) {
	return c.invokeView(ctx, methodGetScreen, in, opts)
}

func (c *screenServiceClient) GrantPermission(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error) {
	return c.invokeView(ctx, methodGrantPermission, in, opts)
}

func (c *screenServiceClient) Refresh(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error) {
	return c.invokeView(ctx, methodRefresh, in, opts)
}

func (c *screenServiceClient) Pull(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ScreenView, error) {
	return c.invokeView(ctx, methodPull, in, opts)
}

func (c *screenServiceClient) Export(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	out := new(ExportResponse)
	if err := c.cc.Invoke(ctx, methodExport, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *screenServiceClient) PushTelemetry(ctx context.Context, in *PushTelemetryRequest, opts ...grpc.CallOption) (*ScreenView, error) {
	return c.invokeView(ctx, methodPushTelemetry, in, opts)
}

func (c *screenServiceClient) Watch(ctx context.Context, in *ScreenRequest, opts ...grpc.CallOption) (ScreenService_WatchClient, error) {
	stream, err := c.cc.NewStream(ctx, &ScreenService_ServiceDesc.Streams[0], methodWatch, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &screenServiceWatchClient{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ScreenService_WatchClient receives views pushed by the server.
type ScreenService_WatchClient interface {
	Recv() (*ScreenView, error)
	grpc.ClientStream
}

type screenServiceWatchClient struct {
	grpc.ClientStream
}

func (x *screenServiceWatchClient) Recv() (*ScreenView, error) {
	m := new(ScreenView)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ScreenServiceServer defines the gRPC interface for the monitor screen.
type ScreenServiceServer interface {
	GetScreen(context.Context, *ScreenRequest) (*ScreenView, error)
	GrantPermission(context.Context, *ScreenRequest) (*ScreenView, error)
	Refresh(context.Context, *ScreenRequest) (*ScreenView, error)
	Pull(context.Context, *ScreenRequest) (*ScreenView, error)
	Export(context.Context, *ScreenRequest) (*ExportResponse, error)
	PushTelemetry(context.Context, *PushTelemetryRequest) (*ScreenView, error)
	Watch(*ScreenRequest, ScreenService_WatchServer) error
}

// UnimplementedScreenServiceServer can be embedded to provide default unimplemented behaviour.
type UnimplementedScreenServiceServer struct{}

func (UnimplementedScreenServiceServer) GetScreen(context.Context, *ScreenRequest) (*ScreenView, error) {
	return nil, errors.New("method GetScreen not implemented")
}

func (UnimplementedScreenServiceServer) GrantPermission(context.Context, *ScreenRequest) (*ScreenView, error) {
	return nil, errors.New("method GrantPermission not implemented")
}

func (UnimplementedScreenServiceServer) Refresh(context.Context, *ScreenRequest) (*ScreenView, error) {
	return nil, errors.New("method Refresh not implemented")
}

func (UnimplementedScreenServiceServer) Pull(context.Context, *ScreenRequest) (*ScreenView, error) {
	return nil, errors.New("method Pull not implemented")
}

func (UnimplementedScreenServiceServer) Export(context.Context, *ScreenRequest) (*ExportResponse, error) {
	return nil, errors.New("method Export not implemented")
}

func (UnimplementedScreenServiceServer) PushTelemetry(context.Context, *PushTelemetryRequest) (*ScreenView, error) {
	return nil, errors.New("method PushTelemetry not implemented")
}

func (UnimplementedScreenServiceServer) Watch(*ScreenRequest, ScreenService_WatchServer) error {
	return errors.New("method Watch not implemented")
}

// ScreenService_WatchServer sends views to a watching client.
type ScreenService_WatchServer interface {
	Send(*ScreenView) error
	grpc.ServerStream
}

type screenServiceWatchServer struct {
	grpc.ServerStream
}

func (x *screenServiceWatchServer) Send(m *ScreenView) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterScreenServiceServer registers the service implementation with the provided registrar.
func RegisterScreenServiceServer(s grpc.ServiceRegistrar, srv ScreenServiceServer) {
	s.RegisterService(&ScreenService_ServiceDesc, srv)
}

// ScreenService_ServiceDesc describes the screen service for the gRPC server.
var ScreenService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: screenServiceName,
	HandlerType: (*ScreenServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetScreen", Handler: _ScreenService_GetScreen_Handler},
		{MethodName: "GrantPermission", Handler: _ScreenService_GrantPermission_Handler},
		{MethodName: "Refresh", Handler: _ScreenService_Refresh_Handler},
		{MethodName: "Pull", Handler: _ScreenService_Pull_Handler},
		{MethodName: "Export", Handler: _ScreenService_Export_Handler},
		{MethodName: "PushTelemetry", Handler: _ScreenService_PushTelemetry_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       _ScreenService_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "netmonitor/screen.proto",
}

func unaryHandler[Req any, Resp any](
	fullMethod string,
	call func(ScreenServiceServer, context.Context, *Req) (*Resp, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if dec != nil {
			if err := dec(in); err != nil {
				return nil, err
			}
		}
		if interceptor == nil {
			return call(srv.(ScreenServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(ScreenServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	_ScreenService_GetScreen_Handler       = unaryHandler(methodGetScreen, ScreenServiceServer.GetScreen)
	_ScreenService_GrantPermission_Handler = unaryHandler(methodGrantPermission, ScreenServiceServer.GrantPermission)
	_ScreenService_Refresh_Handler         = unaryHandler(methodRefresh, ScreenServiceServer.Refresh)
	_ScreenService_Pull_Handler            = unaryHandler(methodPull, ScreenServiceServer.Pull)
	_ScreenService_Export_Handler          = unaryHandler(methodExport, ScreenServiceServer.Export)
	_ScreenService_PushTelemetry_Handler   = unaryHandler(methodPushTelemetry, ScreenServiceServer.PushTelemetry)
)

func _ScreenService_Watch_Handler(srv interface{}, stream grpc.ServerStream) error {
	m := new(ScreenRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(ScreenServiceServer).Watch(m, &screenServiceWatchServer{ServerStream: stream})
}
