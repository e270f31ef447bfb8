package client

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/common"
	"github.com/dmitrijs2005/senseandsay/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// fakeServer accepts access token "good", reports "stale" as expired and
// rotates refresh token "r1" to ("good", "r2"). "r1" works only once.
type fakeServer struct {
	mu        sync.Mutex
	phrases   []*structpb.Value
	profile   *structpb.Struct
	tokens    []string
	refreshed int
	failWith  error
}

func (f *fakeServer) check(ctx context.Context) error {
	md, _ := metadata.FromIncomingContext(ctx)
	tok := md.Get(common.AccessTokenHeaderName)

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(tok) > 0 {
		f.tokens = append(f.tokens, tok[0])
	}
	switch {
	case len(tok) == 0:
		return status.Error(codes.Unauthenticated, "missing token")
	case tok[0] == "stale":
		return status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
	case tok[0] != "good":
		return status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}
	return f.failWith
}

func pair(user, access, refresh string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		rpc.FieldUserID:       structpb.NewStringValue(user),
		rpc.FieldAccessToken:  structpb.NewStringValue(access),
		rpc.FieldRefreshToken: structpb.NewStringValue(refresh),
	}}
}

func (f *fakeServer) Register(_ context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if in.GetFields()[rpc.FieldEmail].GetStringValue() == "taken@example.com" {
		return nil, status.Error(codes.AlreadyExists, "already exists")
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) Login(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	if in.GetFields()[rpc.FieldPassword].GetStringValue() != "secret" {
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}
	return pair("u1", "good", "r1"), nil
}

func (f *fakeServer) RefreshToken(_ context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if in.GetValue() != "r1" || f.refreshed > 0 {
		return nil, status.Error(codes.Unauthenticated, common.ErrRefreshTokenExpired.Error())
	}
	f.refreshed++
	return pair("u1", "good", "r2"), nil
}

func (f *fakeServer) Reauthenticate(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return pair("u1", "good", "r3"), nil
}

func (f *fakeServer) DeleteAccount(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return nil, status.Error(codes.FailedPrecondition, common.ErrReauthRequired.Error())
}

func (f *fakeServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(rpc.PingOK), nil
}

func (f *fakeServer) GetProfile(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	if f.profile == nil {
		return nil, status.Error(codes.NotFound, "not found")
	}
	return f.profile, nil
}

func (f *fakeServer) SaveProfile(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	f.profile = in
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) ListPhrases(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return &structpb.ListValue{Values: f.phrases}, nil
}

func (f *fakeServer) PutPhrase(ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	if in.GetFields()[rpc.FieldText].GetStringValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}
	f.phrases = append(f.phrases, structpb.NewStructValue(in))
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) DeletePhrase(ctx context.Context, _ *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) GetSoundURL(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if err := f.check(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.String("https://s3.example.com/sounds/" + in.GetValue()), nil
}

func startClient(t *testing.T, srv *fakeServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	rpc.RegisterDocumentStoreServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", 0,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_LoginAndPhrases(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{}
	c := startClient(t, srv)

	var seen []Session
	c.OnSessionChange(func(s Session) { seen = append(seen, s) })

	sess, err := c.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, Session{UserID: "u1", AccessToken: "good", RefreshToken: "r1"}, sess)
	assert.Equal(t, []Session{sess}, seen)

	p := models.Phrase{ID: "p1", Text: "Hello", ColorIndex: 2, IconName: models.DefaultIconName}
	require.NoError(t, c.PutPhrase(ctx, p))

	got, err := c.ListPhrases(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Phrase{p}, got)

	err = c.PutPhrase(ctx, models.Phrase{ID: "p2"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestClient_RefreshesExpiredTokenOnce(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{}
	c := startClient(t, srv)

	var seen []Session
	c.OnSessionChange(func(s Session) { seen = append(seen, s) })
	c.SetSession(Session{UserID: "u1", AccessToken: "stale", RefreshToken: "r1"})

	_, err := c.ListPhrases(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, srv.refreshed)
	assert.Equal(t, []string{"stale", "good"}, srv.tokens)
	assert.Equal(t, Session{UserID: "u1", AccessToken: "good", RefreshToken: "r2"}, c.Session())
	require.Len(t, seen, 2)
	assert.Equal(t, "r2", seen[1].RefreshToken)
}

func TestClient_ConcurrentCallsShareOneRefresh(t *testing.T) {
	ctx := context.Background()
	srv := &fakeServer{profile: pair("u1", "x", "y")}
	c := startClient(t, srv)
	c.SetSession(Session{UserID: "u1", AccessToken: "stale", RefreshToken: "r1"})

	var wg sync.WaitGroup
	var profileErr, listErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, profileErr = c.GetProfile(ctx)
	}()
	go func() {
		defer wg.Done()
		_, listErr = c.ListPhrases(ctx)
	}()
	wg.Wait()

	require.NoError(t, profileErr)
	require.NoError(t, listErr)
	assert.Equal(t, 1, srv.refreshed)
	assert.Equal(t, Session{UserID: "u1", AccessToken: "good", RefreshToken: "r2"}, c.Session())
}

func TestClient_RefreshFailureIsUnauthorized(t *testing.T) {
	c := startClient(t, &fakeServer{})
	c.SetSession(Session{UserID: "u1", AccessToken: "stale", RefreshToken: "gone"})

	_, err := c.ListPhrases(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_NoSession(t *testing.T) {
	c := startClient(t, &fakeServer{})

	_, err := c.ListPhrases(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.ErrorIs(t, c.PutPhrase(context.Background(), models.Phrase{ID: "x", Text: "y"}), ErrNotAuthenticated)
}

func TestClient_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	c := startClient(t, &fakeServer{})

	assert.ErrorIs(t, c.Register(ctx, "taken@example.com", "secret"), ErrAlreadyExists)
	assert.NoError(t, c.Register(ctx, "new@example.com", "secret"))

	_, err := c.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Login(ctx, "a@example.com", "secret")
	require.NoError(t, err)

	_, err = c.GetProfile(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, c.DeleteAccount(ctx), ErrReauthRequired)
}

func TestClient_ProfileAndSound(t *testing.T) {
	ctx := context.Background()
	c := startClient(t, &fakeServer{})
	c.SetSession(Session{UserID: "u1", AccessToken: "good"})

	p := models.DefaultProfile()
	p.Name = "Sam"
	p.Goals = []string{"Focus"}
	require.NoError(t, c.SaveProfile(ctx, p))

	got, err := c.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	url, err := c.SoundURL(ctx, "Rain")
	require.NoError(t, err)
	assert.Contains(t, url, "Rain")

	require.NoError(t, c.Ping(ctx))

	sess, err := c.Reauthenticate(ctx, "secret")
	require.NoError(t, err)
	assert.Equal(t, "r3", sess.RefreshToken)

	c.ClearSession()
	assert.False(t, c.Session().Authenticated())
}

func TestInterceptor_IgnoresOtherErrors(t *testing.T) {
	c := &GRPCClient{session: Session{UserID: "u", AccessToken: "X", RefreshToken: "R"}}
	calls := 0
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		calls++
		return status.Error(codes.Internal, "boom")
	}
	err := c.accessTokenInterceptor(context.Background(), rpc.MethodListPhrases, nil, nil, nil, invoker)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestInterceptor_PublicMethodsCarryNoToken(t *testing.T) {
	c := &GRPCClient{session: Session{UserID: "u", AccessToken: "X"}}
	invoker := func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		assert.Empty(t, md.Get(common.AccessTokenHeaderName))
		return nil
	}
	require.NoError(t, c.accessTokenInterceptor(context.Background(), rpc.MethodLogin, nil, nil, nil, invoker))
}
