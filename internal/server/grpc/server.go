// Package grpc exposes the account and document services over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/senseandsay/internal/logging"
	"github.com/dmitrijs2005/senseandsay/internal/rpc"
	"github.com/dmitrijs2005/senseandsay/internal/server/models"
	"github.com/dmitrijs2005/senseandsay/internal/server/services"
	"google.golang.org/grpc"
)

// UserService is the subset of services.UserService the handlers call.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	Reauthenticate(ctx context.Context, userID, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	DeleteAccount(ctx context.Context, userID string, authTime time.Time) error
}

// DocumentService is the subset of services.DocumentService the handlers call.
type DocumentService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	SaveProfile(ctx context.Context, p *models.Profile) error
	ListPhrases(ctx context.Context, userID string) ([]models.Phrase, error)
	PutPhrase(ctx context.Context, p *models.Phrase) error
	DeletePhrase(ctx context.Context, userID, id string) error
	SoundURL(ctx context.Context, name string) (string, error)
}

type GRPCServer struct {
	address   string
	users     UserService
	documents DocumentService
	logger    logging.Logger
	jwtSecret []byte
}

var _ rpc.DocumentStoreServer = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, us UserService, ds DocumentService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		documents: ds,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	rpc.RegisterDocumentStoreServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}

	<-stopped
	return nil
}
