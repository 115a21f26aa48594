package api

import (
	"context"

	"google.golang.org/grpc"
)

// JournalClient is the typed client stub of the Journal service. Every call
// is sent with the JSON content-subtype.
type JournalClient struct {
	cc grpc.ClientConnInterface
}

func NewJournalClient(cc grpc.ClientConnInterface) *JournalClient {
	return &JournalClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *JournalClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *JournalClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *JournalClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *JournalClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodLogout, in, opts)
}

func (c *JournalClient) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *JournalClient) ActiveSlot(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*SlotResponse, error) {
	return invoke[SlotResponse](ctx, c.cc, MethodActiveSlot, in, opts)
}

func (c *JournalClient) ListEntries(ctx context.Context, in *SlotRequest, opts ...grpc.CallOption) (*ListEntriesResponse, error) {
	return invoke[ListEntriesResponse](ctx, c.cc, MethodListEntries, in, opts)
}

func (c *JournalClient) InsertEntry(ctx context.Context, in *InsertEntryRequest, opts ...grpc.CallOption) (*InsertEntryResponse, error) {
	return invoke[InsertEntryResponse](ctx, c.cc, MethodInsertEntry, in, opts)
}

func (c *JournalClient) UpdateEntry(ctx context.Context, in *UpdateEntryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodUpdateEntry, in, opts)
}

func (c *JournalClient) DeleteEntry(ctx context.Context, in *DeleteEntryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodDeleteEntry, in, opts)
}

func (c *JournalClient) ListAssignments(ctx context.Context, in *SlotRequest, opts ...grpc.CallOption) (*ListAssignmentsResponse, error) {
	return invoke[ListAssignmentsResponse](ctx, c.cc, MethodListAssignments, in, opts)
}

func (c *JournalClient) AddAssignment(ctx context.Context, in *AssignmentRequest, opts ...grpc.CallOption) (*AddAssignmentResponse, error) {
	return invoke[AddAssignmentResponse](ctx, c.cc, MethodAddAssignment, in, opts)
}

func (c *JournalClient) RemoveAssignment(ctx context.Context, in *AssignmentRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodRemoveAssignment, in, opts)
}

func (c *JournalClient) ListDirectory(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListDirectoryResponse, error) {
	return invoke[ListDirectoryResponse](ctx, c.cc, MethodListDirectory, in, opts)
}

func (c *JournalClient) AddDirectoryEntry(ctx context.Context, in *DirectoryEntryRequest, opts ...grpc.CallOption) (*AddDirectoryEntryResponse, error) {
	return invoke[AddDirectoryEntryResponse](ctx, c.cc, MethodAddDirectoryEntry, in, opts)
}

func (c *JournalClient) RemoveDirectoryEntry(ctx context.Context, in *DirectoryEntryRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodRemoveDirectoryEntry, in, opts)
}

func (c *JournalClient) SearchEntries(ctx context.Context, in *SearchEntriesRequest, opts ...grpc.CallOption) (*SearchEntriesResponse, error) {
	return invoke[SearchEntriesResponse](ctx, c.cc, MethodSearchEntries, in, opts)
}

func (c *JournalClient) ArchiveReport(ctx context.Context, in *SlotRequest, opts ...grpc.CallOption) (*ArchiveReportResponse, error) {
	return invoke[ArchiveReportResponse](ctx, c.cc, MethodArchiveReport, in, opts)
}

func (c *JournalClient) MarkReportArchived(ctx context.Context, in *MarkReportArchivedRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, MethodMarkReportArchived, in, opts)
}

func (c *JournalClient) ListArchives(ctx context.Context, in *SlotRequest, opts ...grpc.CallOption) (*ListArchivesResponse, error) {
	return invoke[ListArchivesResponse](ctx, c.cc, MethodListArchives, in, opts)
}
