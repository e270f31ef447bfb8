package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "senseandsay.v1.DocumentStore"

// Full method names, as seen by interceptors.
const (
	MethodRegister       = "/" + ServiceName + "/Register"
	MethodLogin          = "/" + ServiceName + "/Login"
	MethodRefreshToken   = "/" + ServiceName + "/RefreshToken"
	MethodReauthenticate = "/" + ServiceName + "/Reauthenticate"
	MethodDeleteAccount  = "/" + ServiceName + "/DeleteAccount"
	MethodPing           = "/" + ServiceName + "/Ping"
	MethodGetProfile     = "/" + ServiceName + "/GetProfile"
	MethodSaveProfile    = "/" + ServiceName + "/SaveProfile"
	MethodListPhrases    = "/" + ServiceName + "/ListPhrases"
	MethodPutPhrase      = "/" + ServiceName + "/PutPhrase"
	MethodDeletePhrase   = "/" + ServiceName + "/DeletePhrase"
	MethodGetSoundURL    = "/" + ServiceName + "/GetSoundURL"
)

// PublicMethods can be called without an access token.
var PublicMethods = map[string]struct{}{
	MethodRegister:     {},
	MethodLogin:        {},
	MethodRefreshToken: {},
	MethodPing:         {},
}

// DocumentStoreServer is implemented by the server.
type DocumentStoreServer interface {
	Register(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error)
	Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	RefreshToken(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error)
	Reauthenticate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DeleteAccount(ctx context.Context, in *emptypb.Empty) (*emptypb.Empty, error)
	Ping(ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error)
	GetProfile(ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error)
	SaveProfile(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error)
	ListPhrases(ctx context.Context, in *emptypb.Empty) (*structpb.ListValue, error)
	PutPhrase(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error)
	DeletePhrase(ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error)
	GetSoundURL(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// unary builds a MethodDesc that decodes a Req, runs the interceptor chain
// and dispatches to call.
func unary[Req, Resp any](method string, call func(DocumentStoreServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DocumentStoreServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + method}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DocumentStoreServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the DocumentStore service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		unary[structpb.Struct, emptypb.Empty]("Register", DocumentStoreServer.Register),
		unary[structpb.Struct, structpb.Struct]("Login", DocumentStoreServer.Login),
		unary[wrapperspb.StringValue, structpb.Struct]("RefreshToken", DocumentStoreServer.RefreshToken),
		unary[structpb.Struct, structpb.Struct]("Reauthenticate", DocumentStoreServer.Reauthenticate),
		unary[emptypb.Empty, emptypb.Empty]("DeleteAccount", DocumentStoreServer.DeleteAccount),
		unary[emptypb.Empty, wrapperspb.StringValue]("Ping", DocumentStoreServer.Ping),
		unary[emptypb.Empty, structpb.Struct]("GetProfile", DocumentStoreServer.GetProfile),
		unary[structpb.Struct, emptypb.Empty]("SaveProfile", DocumentStoreServer.SaveProfile),
		unary[emptypb.Empty, structpb.ListValue]("ListPhrases", DocumentStoreServer.ListPhrases),
		unary[structpb.Struct, emptypb.Empty]("PutPhrase", DocumentStoreServer.PutPhrase),
		unary[wrapperspb.StringValue, emptypb.Empty]("DeletePhrase", DocumentStoreServer.DeletePhrase),
		unary[wrapperspb.StringValue, wrapperspb.StringValue]("GetSoundURL", DocumentStoreServer.GetSoundURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "senseandsay/v1/document_store.proto",
}

// RegisterDocumentStoreServer registers srv on s.
func RegisterDocumentStoreServer(s grpc.ServiceRegistrar, srv DocumentStoreServer) {
	s.RegisterService(&ServiceDesc, srv)
}
