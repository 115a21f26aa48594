package grpc

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, err := s.users.Register(ctx, req.Username, []byte(req.Password))
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", req.Username)
	return &api.RegisterResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	tokens, err := s.users.Login(ctx, req.Username, password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *api.RefreshTokenRequest) (*api.TokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.Empty, error) {

	userID, ok := userIDFrom(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "user id missing from context")
	}

	if err := s.users.Logout(ctx, userID); err != nil {
		return nil, toStatus(err)
	}
	return &api.Empty{}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *api.Empty) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ActiveSlot(ctx context.Context, _ *api.Empty) (*api.SlotResponse, error) {
	return &api.SlotResponse{Slot: s.journal.Slot(ctx)}, nil
}

func (s *GRPCServer) ListEntries(ctx context.Context, req *api.SlotRequest) (*api.ListEntriesResponse, error) {

	entries, err := s.journal.ListEntries(ctx, req.Slot)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListEntriesResponse{Entries: entriesToAPI(entries)}, nil
}

func (s *GRPCServer) InsertEntry(ctx context.Context, req *api.InsertEntryRequest) (*api.InsertEntryResponse, error) {

	id, err := s.journal.InsertEntry(ctx, req.Slot, req.Time, req.Content, req.Note)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Entry created", "id", id, "slot", req.Slot.String())
	return &api.InsertEntryResponse{ID: id}, nil
}

func (s *GRPCServer) UpdateEntry(ctx context.Context, req *api.UpdateEntryRequest) (*api.Empty, error) {

	field, err := models.ParseEntryField(req.Field)
	if err != nil {
		return nil, toStatus(fmt.Errorf("%w: %v", common.ErrValidation, err))
	}

	if err := s.journal.UpdateEntry(ctx, req.ID, field, req.Value); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Entry updated", "id", req.ID, "field", field.String())
	return &api.Empty{}, nil
}

func (s *GRPCServer) DeleteEntry(ctx context.Context, req *api.DeleteEntryRequest) (*api.Empty, error) {

	if err := s.journal.DeleteEntry(ctx, req.ID, req.Confirmed); err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Entry deleted", "id", req.ID)
	return &api.Empty{}, nil
}

func (s *GRPCServer) ListAssignments(ctx context.Context, req *api.SlotRequest) (*api.ListAssignmentsResponse, error) {

	list, err := s.journal.ListAssignments(ctx, req.Slot)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListAssignmentsResponse{Assignments: assignmentsToAPI(list)}, nil
}

func (s *GRPCServer) AddAssignment(ctx context.Context, req *api.AssignmentRequest) (*api.AddAssignmentResponse, error) {

	added, err := s.journal.AddAssignment(ctx, req.Slot, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.AddAssignmentResponse{Added: added}, nil
}

func (s *GRPCServer) RemoveAssignment(ctx context.Context, req *api.AssignmentRequest) (*api.Empty, error) {

	if err := s.journal.RemoveAssignment(ctx, req.Slot, req.Name); err != nil {
		return nil, toStatus(err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) ListDirectory(ctx context.Context, _ *api.Empty) (*api.ListDirectoryResponse, error) {

	list, err := s.journal.ListDirectory(ctx)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListDirectoryResponse{Engineers: engineersToAPI(list)}, nil
}

func (s *GRPCServer) AddDirectoryEntry(ctx context.Context, req *api.DirectoryEntryRequest) (*api.AddDirectoryEntryResponse, error) {

	id, err := s.journal.AddDirectoryEntry(ctx, req.FullName, req.TabNumber)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.AddDirectoryEntryResponse{ID: id}, nil
}

func (s *GRPCServer) RemoveDirectoryEntry(ctx context.Context, req *api.DirectoryEntryRequest) (*api.Empty, error) {

	if err := s.journal.RemoveDirectoryEntry(ctx, req.FullName, req.TabNumber); err != nil {
		return nil, toStatus(err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) SearchEntries(ctx context.Context, req *api.SearchEntriesRequest) (*api.SearchEntriesResponse, error) {

	page, err := s.journal.SearchEntries(ctx, models.SearchFilter{
		Content:  req.Content,
		Note:     req.Note,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.SearchEntriesResponse{
		Entries: entriesToAPI(page.Rows),
		Page:    page.Page,
		HasMore: page.HasMore,
		HasPrev: page.HasPrev,
	}, nil
}

func (s *GRPCServer) ArchiveReport(ctx context.Context, req *api.SlotRequest) (*api.ArchiveReportResponse, error) {

	task, err := s.reports.ArchiveReport(ctx, req.Slot)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ArchiveReportResponse{ArchiveID: task.ArchiveID, URL: task.URL}, nil
}

func (s *GRPCServer) MarkReportArchived(ctx context.Context, req *api.MarkReportArchivedRequest) (*api.Empty, error) {

	if err := s.reports.MarkReportArchived(ctx, req.ArchiveID); err != nil {
		return nil, toStatus(err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) ListArchives(ctx context.Context, req *api.SlotRequest) (*api.ListArchivesResponse, error) {

	list, err := s.reports.ListArchives(ctx, req.Slot)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ListArchivesResponse{Archives: archivesToAPI(list)}, nil
}
