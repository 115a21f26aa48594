package api

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "shiftjournal.v1.Journal"

// Method names of the Journal service.
const (
	MethodRegister             = "Register"
	MethodLogin                = "Login"
	MethodRefreshToken         = "RefreshToken"
	MethodLogout               = "Logout"
	MethodPing                 = "Ping"
	MethodActiveSlot           = "ActiveSlot"
	MethodListEntries          = "ListEntries"
	MethodInsertEntry          = "InsertEntry"
	MethodUpdateEntry          = "UpdateEntry"
	MethodDeleteEntry          = "DeleteEntry"
	MethodListAssignments      = "ListAssignments"
	MethodAddAssignment        = "AddAssignment"
	MethodRemoveAssignment     = "RemoveAssignment"
	MethodListDirectory        = "ListDirectory"
	MethodAddDirectoryEntry    = "AddDirectoryEntry"
	MethodRemoveDirectoryEntry = "RemoveDirectoryEntry"
	MethodSearchEntries        = "SearchEntries"
	MethodArchiveReport        = "ArchiveReport"
	MethodMarkReportArchived   = "MarkReportArchived"
	MethodListArchives         = "ListArchives"
)

// FullMethod returns the gRPC path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

var publicMethods = map[string]bool{
	FullMethod(MethodRegister):     true,
	FullMethod(MethodLogin):        true,
	FullMethod(MethodRefreshToken): true,
	FullMethod(MethodPing):         true,
}

// IsPublic reports whether fullMethod may be called without an access token.
func IsPublic(fullMethod string) bool {
	return publicMethods[fullMethod]
}

// JournalServer is implemented by the server side of the Journal service.
type JournalServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	Ping(context.Context, *Empty) (*PingResponse, error)
	ActiveSlot(context.Context, *Empty) (*SlotResponse, error)
	ListEntries(context.Context, *SlotRequest) (*ListEntriesResponse, error)
	InsertEntry(context.Context, *InsertEntryRequest) (*InsertEntryResponse, error)
	UpdateEntry(context.Context, *UpdateEntryRequest) (*Empty, error)
	DeleteEntry(context.Context, *DeleteEntryRequest) (*Empty, error)
	ListAssignments(context.Context, *SlotRequest) (*ListAssignmentsResponse, error)
	AddAssignment(context.Context, *AssignmentRequest) (*AddAssignmentResponse, error)
	RemoveAssignment(context.Context, *AssignmentRequest) (*Empty, error)
	ListDirectory(context.Context, *Empty) (*ListDirectoryResponse, error)
	AddDirectoryEntry(context.Context, *DirectoryEntryRequest) (*AddDirectoryEntryResponse, error)
	RemoveDirectoryEntry(context.Context, *DirectoryEntryRequest) (*Empty, error)
	SearchEntries(context.Context, *SearchEntriesRequest) (*SearchEntriesResponse, error)
	ArchiveReport(context.Context, *SlotRequest) (*ArchiveReportResponse, error)
	MarkReportArchived(context.Context, *MarkReportArchivedRequest) (*Empty, error)
	ListArchives(context.Context, *SlotRequest) (*ListArchivesResponse, error)
}

func unary[Req, Resp any](method string, call func(JournalServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(JournalServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(JournalServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// JournalServiceDesc describes the Journal service for grpc.Server.
var JournalServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*JournalServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodRegister, JournalServer.Register),
		unary(MethodLogin, JournalServer.Login),
		unary(MethodRefreshToken, JournalServer.RefreshToken),
		unary(MethodLogout, JournalServer.Logout),
		unary(MethodPing, JournalServer.Ping),
		unary(MethodActiveSlot, JournalServer.ActiveSlot),
		unary(MethodListEntries, JournalServer.ListEntries),
		unary(MethodInsertEntry, JournalServer.InsertEntry),
		unary(MethodUpdateEntry, JournalServer.UpdateEntry),
		unary(MethodDeleteEntry, JournalServer.DeleteEntry),
		unary(MethodListAssignments, JournalServer.ListAssignments),
		unary(MethodAddAssignment, JournalServer.AddAssignment),
		unary(MethodRemoveAssignment, JournalServer.RemoveAssignment),
		unary(MethodListDirectory, JournalServer.ListDirectory),
		unary(MethodAddDirectoryEntry, JournalServer.AddDirectoryEntry),
		unary(MethodRemoveDirectoryEntry, JournalServer.RemoveDirectoryEntry),
		unary(MethodSearchEntries, JournalServer.SearchEntries),
		unary(MethodArchiveReport, JournalServer.ArchiveReport),
		unary(MethodMarkReportArchived, JournalServer.MarkReportArchived),
		unary(MethodListArchives, JournalServer.ListArchives),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shiftjournal/v1/journal",
}

func RegisterJournalServer(s grpc.ServiceRegistrar, srv JournalServer) {
	s.RegisterService(&JournalServiceDesc, srv)
}
