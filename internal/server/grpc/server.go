// Package grpc exposes the journal services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/server/services"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, userName string, password []byte) (*models.User, error)
	Login(ctx context.Context, userName string, password []byte) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

type journalSvc interface {
	Slot(ctx context.Context) shiftclock.Slot
	ListEntries(ctx context.Context, slot shiftclock.Slot) ([]*models.Entry, error)
	InsertEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error)
	UpdateEntry(ctx context.Context, id int64, field models.EntryField, value string) error
	DeleteEntry(ctx context.Context, id int64, confirmed bool) error
	ListAssignments(ctx context.Context, slot shiftclock.Slot) ([]*models.Assignment, error)
	AddAssignment(ctx context.Context, slot shiftclock.Slot, name string) (bool, error)
	RemoveAssignment(ctx context.Context, slot shiftclock.Slot, name string) error
	ListDirectory(ctx context.Context) ([]*models.Engineer, error)
	AddDirectoryEntry(ctx context.Context, fullName, tabNumber string) (int64, error)
	RemoveDirectoryEntry(ctx context.Context, fullName, tabNumber string) error
	SearchEntries(ctx context.Context, f models.SearchFilter) (*models.SearchPage, error)
}

type reportSvc interface {
	ArchiveReport(ctx context.Context, slot shiftclock.Slot) (*models.ArchiveUploadTask, error)
	MarkReportArchived(ctx context.Context, id string) error
	ListArchives(ctx context.Context, slot shiftclock.Slot) ([]*models.ReportArchive, error)
}

type GRPCServer struct {
	address   string
	users     userSvc
	journal   journalSvc
	reports   reportSvc
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(address string, l logging.Logger, us userSvc, js journalSvc, rs reportSvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		journal:   js,
		reports:   rs,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	api.RegisterJournalServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	return srv.Serve(listen)
}
