package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/client/docs"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      rpc.DocumentStoreClient

	mu       sync.RWMutex
	session  Session
	onChange func(Session)

	refreshMu sync.Mutex
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, public := rpc.PublicMethods[method]; public {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	sess := s.Session()
	err := invoker(withAccessToken(ctx, sess.AccessToken), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if sess.RefreshToken == "" {
		return err
	}

	fresh, rerr := s.refreshSession(ctx, sess)
	if rerr != nil {
		return rerr
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

// refreshSession trades stale's refresh token for a new pair. Refresh tokens
// rotate on use, so callers are serialised and a caller that finds the
// session already replaced reuses it.
func (s *GRPCClient) refreshSession(ctx context.Context, stale Session) (Session, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if cur := s.Session(); cur.RefreshToken != stale.RefreshToken || cur.AccessToken != stale.AccessToken {
		if !cur.Authenticated() {
			return Session{}, ErrNotAuthenticated
		}
		return cur, nil
	}

	resp, err := s.client.RefreshToken(ctx, wrapperspb.String(stale.RefreshToken))
	if err != nil {
		return Session{}, err
	}

	fresh := sessionFromStruct(resp)
	if fresh.UserID == "" {
		fresh.UserID = stale.UserID
	}
	s.SetSession(fresh)
	return fresh, nil
}

// NewGRPCClient dials endpointURL lazily; timeout bounds every call and is
// ignored when zero. Extra dial options are appended to the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) initGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, extra...)
	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewDocumentStoreClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

func (s *GRPCClient) SetSession(sess Session) {
	s.mu.Lock()
	s.session = sess
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(sess)
	}
}

func (s *GRPCClient) ClearSession() {
	s.mu.Lock()
	s.session = Session{}
	s.mu.Unlock()
}

func (s *GRPCClient) OnSessionChange(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// authed prepares a call that needs an account.
func (s *GRPCClient) authed(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if !s.Session().Authenticated() {
		return nil, nil, ErrNotAuthenticated
	}
	ctx, cancel := s.withTimeout(ctx)
	return ctx, cancel, nil
}

func credentials(email, password string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		rpc.FieldEmail:    structpb.NewStringValue(email),
		rpc.FieldPassword: structpb.NewStringValue(password),
	}}
}

func sessionFromStruct(s *structpb.Struct) Session {
	f := s.GetFields()
	return Session{
		UserID:       f[rpc.FieldUserID].GetStringValue(),
		AccessToken:  f[rpc.FieldAccessToken].GetStringValue(),
		RefreshToken: f[rpc.FieldRefreshToken].GetStringValue(),
	}
}

func (s *GRPCClient) Register(ctx context.Context, email, password string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Register(ctx, credentials(email, password)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (Session, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, credentials(email, password))
	if err != nil {
		return Session{}, s.mapError(err)
	}

	sess := sessionFromStruct(resp)
	s.SetSession(sess)
	return sess, nil
}

func (s *GRPCClient) Reauthenticate(ctx context.Context, password string) (Session, error) {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return Session{}, err
	}
	defer cancel()

	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		rpc.FieldPassword: structpb.NewStringValue(password),
	}}
	resp, err := s.client.Reauthenticate(ctx, req)
	if err != nil {
		return Session{}, s.mapError(err)
	}

	sess := sessionFromStruct(resp)
	s.SetSession(sess)
	return sess, nil
}

func (s *GRPCClient) DeleteAccount(ctx context.Context) error {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := s.client.DeleteAccount(ctx, &emptypb.Empty{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.GetValue() != rpc.PingOK {
		return ErrUnavailable
	}
	return nil
}

// GetProfile returns ErrNotFound when the account has no profile yet.
func (s *GRPCClient) GetProfile(ctx context.Context) (models.Profile, error) {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return models.Profile{}, err
	}
	defer cancel()

	resp, err := s.client.GetProfile(ctx, &emptypb.Empty{})
	if err != nil {
		return models.Profile{}, s.mapError(err)
	}
	return docs.ProfileFromStruct(resp), nil
}

func (s *GRPCClient) SaveProfile(ctx context.Context, p models.Profile) error {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := s.client.SaveProfile(ctx, docs.ProfileToStruct(p)); err != nil {
		return s.mapError(err)
	}
	return nil
}

// ListPhrases returns the account's phrases in server order.
func (s *GRPCClient) ListPhrases(ctx context.Context) ([]models.Phrase, error) {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := s.client.ListPhrases(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return docs.PhrasesFromList(resp), nil
}

func (s *GRPCClient) PutPhrase(ctx context.Context, p models.Phrase) error {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := s.client.PutPhrase(ctx, docs.PhraseToStruct(p)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) DeletePhrase(ctx context.Context, id string) error {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return err
	}
	defer cancel()

	if _, err := s.client.DeletePhrase(ctx, wrapperspb.String(id)); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) SoundURL(ctx context.Context, name string) (string, error) {
	ctx, cancel, err := s.authed(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()

	resp, err := s.client.GetSoundURL(ctx, wrapperspb.String(name))
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.GetValue(), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrUnavailable
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.FailedPrecondition:
		return ErrReauthRequired
	case codes.NotFound:
		return ErrNotFound
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
