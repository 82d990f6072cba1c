package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The service speaks only well-known protobuf types, so the descriptor is
// declared by hand instead of generated:
//
//	service SharedBrain {
//	  rpc GetSharedContent(google.protobuf.StringValue) returns (google.protobuf.ListValue);
//	  rpc GetOwner(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	}
const (
	ServiceName = "brain.SharedBrain"

	getSharedContentMethod = "/" + ServiceName + "/GetSharedContent"
	getOwnerMethod         = "/" + ServiceName + "/GetOwner"
)

type SharedBrainServer interface {
	GetSharedContent(ctx context.Context, token *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetOwner(ctx context.Context, token *wrapperspb.StringValue) (*structpb.Struct, error)
}

var SharedBrainServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SharedBrainServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSharedContent",
			Handler:    getSharedContentHandler,
		},
		{
			MethodName: "GetOwner",
			Handler:    getOwnerHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "brain.proto",
}

func RegisterSharedBrainServer(s grpc.ServiceRegistrar, srv SharedBrainServer) {
	s.RegisterService(&SharedBrainServiceDesc, srv)
}

func getSharedContentHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SharedBrainServer).GetSharedContent(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getSharedContentMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SharedBrainServer).GetSharedContent(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getOwnerHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SharedBrainServer).GetOwner(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: getOwnerMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SharedBrainServer).GetOwner(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type SharedBrainClient struct {
	cc grpc.ClientConnInterface
}

func NewSharedBrainClient(cc grpc.ClientConnInterface) *SharedBrainClient {
	return &SharedBrainClient{cc: cc}
}

func (c *SharedBrainClient) GetSharedContent(ctx context.Context, token string, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, getSharedContentMethod, wrapperspb.String(token), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *SharedBrainClient) GetOwner(ctx context.Context, token string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getOwnerMethod, wrapperspb.String(token), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
