package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/client/client"
	"github.com/dmitrijs2005/shiftjournal/internal/filex"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	"github.com/dmitrijs2005/shiftjournal/internal/mailer"
	"github.com/dmitrijs2005/shiftjournal/internal/netx"
	"github.com/dmitrijs2005/shiftjournal/internal/report"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
)

// ExportResult describes a written report.
type ExportResult struct {
	Path      string
	ArchiveID string
}

// ReportService assembles a slot's report and hands it to a file, the
// server-side archive or a mail draft.
type ReportService interface {
	Build(ctx context.Context, slot shiftclock.Slot) (*report.Report, error)
	Export(ctx context.Context, slot shiftclock.Slot, path string, archive bool) (*ExportResult, error)
	Archives(ctx context.Context, slot shiftclock.Slot) ([]api.Archive, error)
	ComposeMail(ctx context.Context, slot shiftclock.Slot, to, cc []string) (*mailer.Message, error)
}

type reportService struct {
	client     client.Client
	exportDir  string
	httpClient netx.HTTPClient
	logger     logging.Logger
}

func NewReportService(c client.Client, exportDir string, l logging.Logger) ReportService {
	return &reportService{client: c, exportDir: exportDir, httpClient: netx.DefaultClient, logger: l}
}

// Build joins the slot's engineers and its entries, already in occurrence
// order, into a report.
func (s *reportService) Build(ctx context.Context, slot shiftclock.Slot) (*report.Report, error) {
	assignments, err := s.client.ListAssignments(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("loading engineers: %w", err)
	}
	entries, err := s.client.ListEntries(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("loading entries: %w", err)
	}

	r := &report.Report{Slot: slot}
	for _, a := range assignments {
		r.Engineers = append(r.Engineers, a.Name)
	}
	for _, e := range entries {
		r.Rows = append(r.Rows, report.Row{Time: e.Time, Content: e.Content, Note: e.Note})
	}
	return r, nil
}

// Export writes the document to path (a directory or a file name; empty
// means the export directory) and optionally archives the same bytes.
func (s *reportService) Export(ctx context.Context, slot shiftclock.Slot, path string, archive bool) (*ExportResult, error) {
	r, err := s.Build(ctx, slot)
	if err != nil {
		return nil, err
	}

	data, err := report.DOCX(r)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	target := s.resolvePath(path, r)
	if err := filex.WriteFileAtomic(target, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", target, err)
	}
	s.logger.Info(ctx, "report exported", "slot", slot.String(), "path", target, "bytes", len(data))

	res := &ExportResult{Path: target}
	if !archive {
		return res, nil
	}

	id, url, err := s.client.ArchiveReport(ctx, slot)
	if err != nil {
		return res, fmt.Errorf("requesting archive upload: %w", err)
	}
	if err := netx.UploadToPresignedURL(ctx, s.httpClient, url, report.ContentType, data); err != nil {
		s.logger.Error(ctx, "archive upload failed", "archive_id", id, "error", err)
		return res, fmt.Errorf("uploading archive: %w", err)
	}
	if err := s.client.MarkReportArchived(ctx, id); err != nil {
		return res, fmt.Errorf("confirming archive: %w", err)
	}
	s.logger.Info(ctx, "report archived", "slot", slot.String(), "archive_id", id)

	res.ArchiveID = id
	return res, nil
}

func (s *reportService) resolvePath(path string, r *report.Report) string {
	switch {
	case path == "":
		return filepath.Join(s.exportDir, report.DefaultFileName(r))
	case filepath.Ext(path) == "":
		return filepath.Join(path, report.DefaultFileName(r))
	default:
		return path
	}
}

func (s *reportService) Archives(ctx context.Context, slot shiftclock.Slot) ([]api.Archive, error) {
	return s.client.ListArchives(ctx, slot)
}

func (s *reportService) ComposeMail(ctx context.Context, slot shiftclock.Slot, to, cc []string) (*mailer.Message, error) {
	r, err := s.Build(ctx, slot)
	if err != nil {
		return nil, err
	}
	body, err := report.HTML(r)
	if err != nil {
		return nil, fmt.Errorf("rendering mail body: %w", err)
	}
	return &mailer.Message{To: to, Cc: cc, Subject: report.Subject(r), HTMLBody: body}, nil
}
