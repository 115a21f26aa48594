package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	sc "github.com/dmitrijs2005/shiftjournal/internal/server/config"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"github.com/google/uuid"
)

const (
	presignExpiry   = 15 * time.Minute
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	newArchiveID = func() string { return uuid.NewString() }
)

// ReportService stores exported shift reports in S3-compatible storage.
// Clients upload directly through presigned URLs; the server only keeps the
// bookkeeping rows.
type ReportService struct {
	keeper      DBProvider
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	logger      logging.Logger
}

func NewReportService(keeper DBProvider, m repomanager.RepositoryManager, cfg *sc.Config, logger logging.Logger) *ReportService {
	return &ReportService{keeper: keeper, repomanager: m, config: cfg, logger: logger}
}

// StorageKey returns the object key for a new archive of slot.
func StorageKey(slot shiftclock.Slot, id string) string {
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s/%s.docx",
		slot.Date.Year, int(slot.Date.Month), slot.Date.Day, slot.Shift, id)
}

func (s *ReportService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// ArchiveReport registers a pending archive for slot and returns a presigned
// PUT URL the client uploads the document to.
func (s *ReportService) ArchiveReport(ctx context.Context, slot shiftclock.Slot) (*models.ArchiveUploadTask, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	pc, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	id := newArchiveID()
	key := StorageKey(slot, id)
	bucket := s.config.S3Bucket

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: aws.String(docxContentType),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	a := &models.ReportArchive{ID: id, Date: slot.Date, Shift: slot.Shift, StorageKey: key}
	if err := s.repomanager.Archives(db).Create(ctx, a); err != nil {
		return nil, persistence("create archive", err)
	}

	s.logger.Info(ctx, "report archive registered", "id", id, "key", key)
	return &models.ArchiveUploadTask{ArchiveID: id, URL: req.URL}, nil
}

// MarkReportArchived confirms the upload of archive id.
func (s *ReportService) MarkReportArchived(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: archive id is empty", common.ErrValidation)
	}
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return err
	}
	if err := s.repomanager.Archives(db).MarkUploaded(ctx, id); err != nil {
		return persistence("mark archive uploaded", err)
	}
	return nil
}

// ListArchives returns the slot's archives. Completed ones carry a presigned
// download URL.
func (s *ReportService) ListArchives(ctx context.Context, slot shiftclock.Slot) ([]*models.ReportArchive, error) {
	if err := validateSlot(slot); err != nil {
		return nil, err
	}
	db, err := s.keeper.DB(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.repomanager.Archives(db).ListBySlot(ctx, slot)
	if err != nil {
		return nil, fmt.Errorf("list archives: %w", err)
	}

	var pc *s3.PresignClient
	bucket := s.config.S3Bucket
	for _, a := range list {
		if a.UploadStatus != models.UploadCompleted {
			continue
		}
		if pc == nil {
			if pc, err = s.getPresignClient(ctx); err != nil {
				return nil, fmt.Errorf("s3 client: %w", err)
			}
		}
		key := a.StorageKey
		req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(presignExpiry))
		if err != nil {
			return nil, fmt.Errorf("presign get: %w", err)
		}
		a.URL = req.URL
	}
	return list, nil
}
