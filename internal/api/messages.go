package api

import "github.com/dmitrijs2005/shiftjournal/internal/shiftclock"

type Empty struct{}

// Entry is a journal row on the wire.
type Entry struct {
	ID      int64            `json:"id"`
	Date    shiftclock.Date  `json:"date"`
	Shift   shiftclock.Shift `json:"shift"`
	Time    string           `json:"time"`
	Content string           `json:"content"`
	Note    string           `json:"note"`
}

type Assignment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Engineer struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	TabNumber string `json:"tab_number"`
}

type Archive struct {
	ID           string `json:"id"`
	StorageKey   string `json:"storage_key"`
	UploadStatus string `json:"upload_status"`
	CreatedAt    string `json:"created_at"`
	URL          string `json:"url,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type SlotRequest struct {
	Slot shiftclock.Slot `json:"slot"`
}

type SlotResponse struct {
	Slot shiftclock.Slot `json:"slot"`
}

type ListEntriesResponse struct {
	Entries []Entry `json:"entries"`
}

type InsertEntryRequest struct {
	Slot    shiftclock.Slot `json:"slot"`
	Time    string          `json:"time"`
	Content string          `json:"content"`
	Note    string          `json:"note"`
}

type InsertEntryResponse struct {
	ID int64 `json:"id"`
}

// UpdateEntryRequest changes one field; Field is "time", "content" or "note".
type UpdateEntryRequest struct {
	ID    int64  `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

type DeleteEntryRequest struct {
	ID        int64 `json:"id"`
	Confirmed bool  `json:"confirmed"`
}

type ListAssignmentsResponse struct {
	Assignments []Assignment `json:"assignments"`
}

type AssignmentRequest struct {
	Slot shiftclock.Slot `json:"slot"`
	Name string          `json:"name"`
}

type AddAssignmentResponse struct {
	Added bool `json:"added"`
}

type ListDirectoryResponse struct {
	Engineers []Engineer `json:"engineers"`
}

type DirectoryEntryRequest struct {
	FullName  string `json:"full_name"`
	TabNumber string `json:"tab_number"`
}

type AddDirectoryEntryResponse struct {
	ID int64 `json:"id"`
}

type SearchEntriesRequest struct {
	Content  string `json:"content"`
	Note     string `json:"note"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size,omitempty"`
}

type SearchEntriesResponse struct {
	Entries []Entry `json:"entries"`
	Page    int     `json:"page"`
	HasMore bool    `json:"has_more"`
	HasPrev bool    `json:"has_prev"`
}

type ArchiveReportResponse struct {
	ArchiveID string `json:"archive_id"`
	URL       string `json:"url"`
}

type MarkReportArchivedRequest struct {
	ArchiveID string `json:"archive_id"`
}

type ListArchivesResponse struct {
	Archives []Archive `json:"archives"`
}
