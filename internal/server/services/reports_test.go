package services

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/shiftjournal/internal/common"
	"github.com/dmitrijs2005/shiftjournal/internal/logging"
	sc "github.com/dmitrijs2005/shiftjournal/internal/server/config"
	"github.com/dmitrijs2005/shiftjournal/internal/server/models"
	"github.com/dmitrijs2005/shiftjournal/internal/shiftclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportService(t *testing.T, ar *fakeArchivesRepo) *ReportService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "journal",
	}
	return NewReportService(&fakeKeeper{db: db}, &fakeRepoManager{ar: ar}, cfg, logging.Nop{})
}

// stubS3 replaces the AWS constructors and presigners. Captured keys are
// appended to *puts / *gets.
func stubS3(t *testing.T, puts, gets *[]string, presignErr error) {
	t.Helper()
	origLoad, origNew, origPre := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient
	origPut, origGet, origID := presignPutObject, presignGetObject, newArchiveID
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient = origLoad, origNew, origPre
		presignPutObject, presignGetObject, newArchiveID = origPut, origGet, origID
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}
	newS3PresignClient = func(*s3.Client) *s3.PresignClient { return &s3.PresignClient{} }

	presignPutObject = func(_ *s3.PresignClient, _ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		assert.Equal(t, "journal", *in.Bucket)
		*puts = append(*puts, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3/put/" + *in.Key}, nil
	}
	presignGetObject = func(_ *s3.PresignClient, _ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		if presignErr != nil {
			return nil, presignErr
		}
		*gets = append(*gets, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "https://s3/get/" + *in.Key}, nil
	}
	newArchiveID = func() string { return "a-1" }
}

func TestStorageKey(t *testing.T) {
	slot := shiftclock.Slot{Date: shiftclock.Date{Year: 2024, Month: 3, Day: 5}, Shift: shiftclock.ShiftB}
	assert.Equal(t, "reports/2024/03/05/B/x.docx", StorageKey(slot, "x"))
}

func TestArchiveReport(t *testing.T) {
	var puts, gets []string
	stubS3(t, &puts, &gets, nil)

	ar := &fakeArchivesRepo{}
	s := newReportService(t, ar)

	task, err := s.ArchiveReport(context.Background(), nightSlot)
	require.NoError(t, err)
	assert.Equal(t, "a-1", task.ArchiveID)
	assert.Equal(t, "https://s3/put/reports/2024/03/10/B/a-1.docx", task.URL)

	require.Len(t, ar.created, 1)
	assert.Equal(t, "reports/2024/03/10/B/a-1.docx", ar.created[0].StorageKey)
	assert.Equal(t, nightSlot.Date, ar.created[0].Date)
}

func TestArchiveReport_Errors(t *testing.T) {
	var puts, gets []string
	stubS3(t, &puts, &gets, errBoom)

	ar := &fakeArchivesRepo{}
	s := newReportService(t, ar)

	_, err := s.ArchiveReport(context.Background(), nightSlot)
	require.ErrorIs(t, err, errBoom)
	assert.Empty(t, ar.created, "nothing is recorded when presigning fails")

	_, err = s.ArchiveReport(context.Background(), shiftclock.Slot{})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestArchiveReport_RecordFails(t *testing.T) {
	var puts, gets []string
	stubS3(t, &puts, &gets, nil)

	s := newReportService(t, &fakeArchivesRepo{err: errBoom})
	_, err := s.ArchiveReport(context.Background(), nightSlot)
	require.ErrorIs(t, err, common.ErrPersistence)
}

func TestMarkReportArchived(t *testing.T) {
	ar := &fakeArchivesRepo{}
	s := newReportService(t, ar)

	require.NoError(t, s.MarkReportArchived(context.Background(), "a-1"))
	assert.Equal(t, []string{"a-1"}, ar.marked)

	require.ErrorIs(t, s.MarkReportArchived(context.Background(), " "), common.ErrValidation)

	ar.err = common.ErrorNotFound
	require.ErrorIs(t, s.MarkReportArchived(context.Background(), "zzz"), common.ErrorNotFound)
}

func TestListArchives_PresignsCompletedOnly(t *testing.T) {
	var puts, gets []string
	stubS3(t, &puts, &gets, nil)

	ar := &fakeArchivesRepo{list: []*models.ReportArchive{
		{ID: "a2", StorageKey: "k2", UploadStatus: models.UploadPending},
		{ID: "a1", StorageKey: "k1", UploadStatus: models.UploadCompleted},
	}}
	s := newReportService(t, ar)

	list, err := s.ListArchives(context.Background(), nightSlot)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Empty(t, list[0].URL)
	assert.Equal(t, "https://s3/get/k1", list[1].URL)
	assert.Equal(t, []string{"k1"}, gets)
}
