package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// dialOptions are appended to every connection; tests add a bufconn dialer.
var dialOptions []grpc.DialOption

type GRPCClient struct {
	mu           sync.RWMutex
	endpointURL  string
	conn         *grpc.ClientConn
	client       *api.JournalClient
	accessToken  string
	refreshToken string
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken, s.refreshToken = access, refresh
}

func (s *GRPCClient) journal() *api.JournalClient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if api.IsPublic(method) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, refresh := s.tokens()
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if refresh == "" {
		return err
	}

	resp, rerr := s.journal().RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: refresh})
	if rerr != nil {
		return rerr
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)

	return invoker(withAccessToken(ctx, resp.AccessToken), method, req, reply, cc, opts...)
}

func NewJournalClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{}
	if err := c.Reconnect(endpointURL); err != nil {
		return nil, err
	}
	return c, nil
}

// Reconnect replaces the connection with one to endpoint. Tokens are
// dropped because they were issued by the previous server.
func (s *GRPCClient) Reconnect(endpoint string) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, dialOptions...)

	conn, err := grpc.NewClient(endpoint, opts...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	old := s.conn
	s.conn = conn
	s.client = api.NewJournalClient(conn)
	s.endpointURL = endpoint
	s.accessToken, s.refreshToken = "", ""
	s.mu.Unlock()

	if old != nil {
		_ = old.Close()
	}
	return nil
}

func (s *GRPCClient) Endpoint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.endpointURL
}

func (s *GRPCClient) LoggedIn() bool {
	access, _ := s.tokens()
	return access != ""
}

func (s *GRPCClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *GRPCClient) Register(ctx context.Context, userName string, password []byte) error {
	_, err := s.journal().Register(ctx, &api.RegisterRequest{Username: userName, Password: string(password)})
	return s.mapError(err)
}

func (s *GRPCClient) Login(ctx context.Context, userName string, password []byte) error {

	resp, err := s.journal().Login(ctx, &api.LoginRequest{Username: userName, Password: string(password)})
	if err != nil {
		return s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return nil
}

// Logout revokes the server-side refresh tokens and forgets the local pair.
// The local pair is dropped even when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if !s.LoggedIn() {
		return nil
	}
	_, err := s.journal().Logout(ctx, &api.Empty{})
	s.setTokens("", "")
	return s.mapError(err)
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.journal().Ping(ctx, &api.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) ActiveSlot(ctx context.Context) (shiftclock.Slot, error) {
	resp, err := s.journal().ActiveSlot(ctx, &api.Empty{})
	if err != nil {
		return shiftclock.Slot{}, s.mapError(err)
	}
	return resp.Slot, nil
}

func (s *GRPCClient) ListEntries(ctx context.Context, slot shiftclock.Slot) ([]api.Entry, error) {
	resp, err := s.journal().ListEntries(ctx, &api.SlotRequest{Slot: slot})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Entries, nil
}

func (s *GRPCClient) InsertEntry(ctx context.Context, slot shiftclock.Slot, at, content, note string) (int64, error) {
	resp, err := s.journal().InsertEntry(ctx, &api.InsertEntryRequest{Slot: slot, Time: at, Content: content, Note: note})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) UpdateEntry(ctx context.Context, id int64, field, value string) error {
	_, err := s.journal().UpdateEntry(ctx, &api.UpdateEntryRequest{ID: id, Field: field, Value: value})
	return s.mapError(err)
}

func (s *GRPCClient) DeleteEntry(ctx context.Context, id int64, confirmed bool) error {
	_, err := s.journal().DeleteEntry(ctx, &api.DeleteEntryRequest{ID: id, Confirmed: confirmed})
	return s.mapError(err)
}

func (s *GRPCClient) ListAssignments(ctx context.Context, slot shiftclock.Slot) ([]api.Assignment, error) {
	resp, err := s.journal().ListAssignments(ctx, &api.SlotRequest{Slot: slot})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Assignments, nil
}

func (s *GRPCClient) AddAssignment(ctx context.Context, slot shiftclock.Slot, name string) (bool, error) {
	resp, err := s.journal().AddAssignment(ctx, &api.AssignmentRequest{Slot: slot, Name: name})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Added, nil
}

func (s *GRPCClient) RemoveAssignment(ctx context.Context, slot shiftclock.Slot, name string) error {
	_, err := s.journal().RemoveAssignment(ctx, &api.AssignmentRequest{Slot: slot, Name: name})
	return s.mapError(err)
}

func (s *GRPCClient) ListDirectory(ctx context.Context) ([]api.Engineer, error) {
	resp, err := s.journal().ListDirectory(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Engineers, nil
}

func (s *GRPCClient) AddDirectoryEntry(ctx context.Context, fullName, tabNumber string) (int64, error) {
	resp, err := s.journal().AddDirectoryEntry(ctx, &api.DirectoryEntryRequest{FullName: fullName, TabNumber: tabNumber})
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.ID, nil
}

func (s *GRPCClient) RemoveDirectoryEntry(ctx context.Context, fullName, tabNumber string) error {
	_, err := s.journal().RemoveDirectoryEntry(ctx, &api.DirectoryEntryRequest{FullName: fullName, TabNumber: tabNumber})
	return s.mapError(err)
}

func (s *GRPCClient) SearchEntries(ctx context.Context, req api.SearchEntriesRequest) (*api.SearchEntriesResponse, error) {
	resp, err := s.journal().SearchEntries(ctx, &req)
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) ArchiveReport(ctx context.Context, slot shiftclock.Slot) (string, string, error) {
	resp, err := s.journal().ArchiveReport(ctx, &api.SlotRequest{Slot: slot})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.ArchiveID, resp.URL, nil
}

func (s *GRPCClient) MarkReportArchived(ctx context.Context, id string) error {
	_, err := s.journal().MarkReportArchived(ctx, &api.MarkReportArchivedRequest{ArchiveID: id})
	return s.mapError(err)
}

func (s *GRPCClient) ListArchives(ctx context.Context, slot shiftclock.Slot) ([]api.Archive, error) {
	resp, err := s.journal().ListArchives(ctx, &api.SlotRequest{Slot: slot})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Archives, nil
}

var codeErrors = map[codes.Code]error{
	codes.PermissionDenied:   common.ErrNotActiveShift,
	codes.InvalidArgument:    common.ErrValidation,
	codes.FailedPrecondition: common.ErrConfirmationRequired,
	codes.NotFound:           common.ErrorNotFound,
	codes.AlreadyExists:      common.ErrorAlreadyExists,
	codes.Aborted:            common.ErrPersistence,
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	}
	if sentinel, ok := codeErrors[st.Code()]; ok {
		if st.Message() == sentinel.Error() {
			return sentinel
		}
		return fmt.Errorf("%w: %s", sentinel, st.Message())
	}
	return fmt.Errorf("rpc error: %w", err)
}
