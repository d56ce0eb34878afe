package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/adhalianna/trackers/internal/common"
	"github.com/adhalianna/trackers/internal/server/config"
	"github.com/adhalianna/trackers/internal/server/models"
	"github.com/adhalianna/trackers/internal/server/repositories/repomanager"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

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
)

// AttachmentService manages task attachments. Clients upload and download
// file bodies directly against object storage through presigned URLs; the
// service only handles metadata and authorization.
type AttachmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewAttachmentService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AttachmentService {
	return &AttachmentService{
		db:          db,
		repomanager: m,
		config:      cfg,
	}
}

func storageKeyFor(taskID, attachmentID uuid.UUID) string {
	return fmt.Sprintf("tasks/%s/%s", taskID, attachmentID)
}

func (s *AttachmentService) authorizeTask(ctx context.Context, callerID, taskID uuid.UUID) error {
	owner, err := s.repomanager.Tasks(s.db).OwnerOf(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if owner != callerID {
		return common.ErrNoTaskTrackerAccess
	}
	return nil
}

func (s *AttachmentService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3User,
			s.config.S3Password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *AttachmentService) presignedPutURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

func (s *AttachmentService) presignedGetURL(ctx context.Context, key string) (string, error) {
	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &s.config.S3Bucket,
		Key:    &key,
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// Attach registers a pending attachment on a task and returns it together
// with a presigned PUT URL the client uploads the file body to.
func (s *AttachmentService) Attach(ctx context.Context, callerID, taskID uuid.UUID, fileName string) (*models.Attachment, string, error) {
	if err := s.authorizeTask(ctx, callerID, taskID); err != nil {
		return nil, "", err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	attachment := &models.Attachment{
		ID:         id,
		TaskID:     taskID,
		FileName:   fileName,
		StorageKey: storageKeyFor(taskID, id),
		Status:     models.UploadStatusPending,
	}

	url, err := s.presignedPutURL(ctx, attachment.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("error presigning upload: %v", err)
	}

	if _, err := s.repomanager.Attachments(s.db).Create(ctx, attachment); err != nil {
		return nil, "", common.ErrorInternal
	}

	return attachment, url, nil
}

// MarkUploaded confirms that the client finished the presigned upload.
func (s *AttachmentService) MarkUploaded(ctx context.Context, callerID, attachmentID uuid.UUID) error {
	attachment, err := s.repomanager.Attachments(s.db).GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if err := s.authorizeTask(ctx, callerID, attachment.TaskID); err != nil {
		return err
	}
	if err := s.repomanager.Attachments(s.db).MarkUploaded(ctx, attachmentID); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// ListForTask returns the attachments of a task the caller has access to.
func (s *AttachmentService) ListForTask(ctx context.Context, callerID, taskID uuid.UUID) ([]models.Attachment, error) {
	if err := s.authorizeTask(ctx, callerID, taskID); err != nil {
		return nil, err
	}
	result, err := s.repomanager.Attachments(s.db).ListByTask(ctx, taskID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return result, nil
}

// DownloadURL returns a presigned GET URL for an uploaded attachment.
func (s *AttachmentService) DownloadURL(ctx context.Context, callerID, attachmentID uuid.UUID) (string, error) {
	attachment, err := s.repomanager.Attachments(s.db).GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", common.ErrorInternal
	}
	if err := s.authorizeTask(ctx, callerID, attachment.TaskID); err != nil {
		return "", err
	}

	url, err := s.presignedGetURL(ctx, attachment.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %v", err)
	}
	return url, nil
}

// Delete removes an attachment's metadata.
func (s *AttachmentService) Delete(ctx context.Context, callerID, attachmentID uuid.UUID) error {
	attachment, err := s.repomanager.Attachments(s.db).GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	if err := s.authorizeTask(ctx, callerID, attachment.TaskID); err != nil {
		return err
	}
	if err := s.repomanager.Attachments(s.db).Delete(ctx, attachmentID); err != nil {
		return common.ErrorInternal
	}
	return nil
}
