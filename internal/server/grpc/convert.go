package grpc

import (
	"time"

	"github.com/dmitrijs2005/shiftjournal/internal/api"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
)

func entriesToAPI(in []*models.Entry) []api.Entry {
	out := make([]api.Entry, 0, len(in))
	for _, e := range in {
		out = append(out, api.Entry{
			ID:      e.ID,
			Date:    e.Date,
			Shift:   e.Shift,
			Time:    e.Time,
			Content: e.Content,
			Note:    e.Note,
		})
	}
	return out
}

func assignmentsToAPI(in []*models.Assignment) []api.Assignment {
	out := make([]api.Assignment, 0, len(in))
	for _, a := range in {
		out = append(out, api.Assignment{ID: a.ID, Name: a.Name})
	}
	return out
}

func engineersToAPI(in []*models.Engineer) []api.Engineer {
	out := make([]api.Engineer, 0, len(in))
	for _, e := range in {
		out = append(out, api.Engineer{ID: e.ID, FullName: e.FullName, TabNumber: e.TabNumber})
	}
	return out
}

func archivesToAPI(in []*models.ReportArchive) []api.Archive {
	out := make([]api.Archive, 0, len(in))
	for _, a := range in {
		out = append(out, api.Archive{
			ID:           a.ID,
			StorageKey:   a.StorageKey,
			UploadStatus: a.UploadStatus,
			CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
			URL:          a.URL,
		})
	}
	return out
}
