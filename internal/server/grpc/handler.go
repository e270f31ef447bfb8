package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps service errors onto gRPC status codes. Unknown errors are
// logged and reported as Internal without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, common.ErrorAlreadyExists.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, common.ErrorNotFound.Error())
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.ErrorUnauthorized.Error())
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	case errors.Is(err, common.ErrReauthRequired):
		return status.Error(codes.FailedPrecondition, common.ErrReauthRequired.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func (s *GRPCServer) Register(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	email := req.GetFields()[rpc.FieldEmail].GetStringValue()

	user, err := s.users.Register(ctx, email, req.GetFields()[rpc.FieldPassword].GetStringValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()
	pair, err := s.users.Login(ctx, f[rpc.FieldEmail].GetStringValue(), f[rpc.FieldPassword].GetStringValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return tokenPairToStruct(pair.UserID, pair.AccessToken, pair.RefreshToken), nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	pair, err := s.users.RefreshToken(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return tokenPairToStruct(pair.UserID, pair.AccessToken, pair.RefreshToken), nil
}

func (s *GRPCServer) Reauthenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, _, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	pair, err := s.users.Reauthenticate(ctx, userID, req.GetFields()[rpc.FieldPassword].GetStringValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return tokenPairToStruct(pair.UserID, pair.AccessToken, pair.RefreshToken), nil
}

func (s *GRPCServer) DeleteAccount(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	userID, authTime, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.users.DeleteAccount(ctx, userID, authTime); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "Account deleted", "user_id", userID)
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(rpc.PingOK), nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	userID, _, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.documents.GetProfile(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return profileToStruct(p), nil
}

func (s *GRPCServer) SaveProfile(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, _, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.documents.SaveProfile(ctx, profileFromStruct(userID, req)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) ListPhrases(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	userID, _, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	phrases, err := s.documents.ListPhrases(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(phrases))}
	for i := range phrases {
		out.Values = append(out.Values, structpb.NewStructValue(phraseToStruct(&phrases[i])))
	}
	return out, nil
}

func (s *GRPCServer) PutPhrase(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	userID, _, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.documents.PutPhrase(ctx, phraseFromStruct(userID, req)); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) DeletePhrase(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	userID, _, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.documents.DeletePhrase(ctx, userID, req.GetValue()); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

func (s *GRPCServer) GetSoundURL(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	url, err := s.documents.SoundURL(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return wrapperspb.String(url), nil
}
