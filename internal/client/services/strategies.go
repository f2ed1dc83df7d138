package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/chatfiles/chatfiles/internal/client/config"
	"github.com/chatfiles/chatfiles/internal/client/localstore"
	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/logging"
	"github.com/chatfiles/chatfiles/internal/netx"
)

// AWS SDK construction seams, swappable in tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in)
	}
)

// objectURL is the public address of a stored object under a path-style
// endpoint.
func objectURL(cfg *config.Config, key string) string {
	return strings.TrimRight(cfg.StorageEndpoint, "/") + "/" + cfg.StorageBucket + "/" + key
}

func remoteSuccess(cfg *config.Config, req uploadRequest) models.UploadResult {
	return models.UploadResult{
		Success:  true,
		FileURL:  objectURL(cfg, req.key),
		FileName: path.Base(req.key),
		FileSize: req.file.Size(),
		MimeType: req.mimeType,
	}
}

// sdkPutStrategy uploads through the AWS SDK's s3.Client.PutObject with
// static credentials against the configured endpoint.
type sdkPutStrategy struct {
	cfg *config.Config
	log logging.Logger
}

func (s *sdkPutStrategy) Name() string { return "sdk-put" }

func (s *sdkPutStrategy) Attempt(ctx context.Context, req uploadRequest, onProgress models.ProgressFunc) (models.UploadResult, Outcome) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	awsCfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.cfg.StorageRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.StorageAccessKey,
			s.cfg.StorageSecretKey,
			"",
		)))
	if err != nil {
		s.log.Warn(ctx, "sdk upload failed", "key", req.key, "error", err)
		return models.UploadResult{Error: fmt.Sprintf("Upload failed: %v", err)}, OutcomeRetryable
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.StorageEndpoint)
		o.UsePathStyle = true
	})

	body := netx.NewProgressReader(bytes.NewReader(req.file.Data), req.file.Size(), onProgress)
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.StorageBucket),
		Key:           aws.String(req.key),
		Body:          body,
		ContentType:   aws.String(req.mimeType),
		ContentLength: aws.Int64(req.file.Size()),
	})
	if err != nil {
		s.log.Warn(ctx, "sdk upload failed", "key", req.key, "error", err)
		return models.UploadResult{Error: fmt.Sprintf("Upload failed: %v", err)}, OutcomeRetryable
	}

	s.log.Info(ctx, "sdk upload complete", "key", req.key, "size", req.file.Size())
	return remoteSuccess(s.cfg, req), OutcomeSuccess
}

// rawPutStrategy uploads with a plain HTTP PUT, bypassing the SDK. It runs
// when the SDK attempt failed, so a best-effort HEAD probe of the endpoint
// is logged first for diagnostics; the probe never gates the attempt.
type rawPutStrategy struct {
	cfg *config.Config
	hc  *http.Client
	log logging.Logger
}

func (s *rawPutStrategy) Name() string { return "raw-put" }

func (s *rawPutStrategy) Attempt(ctx context.Context, req uploadRequest, onProgress models.ProgressFunc) (models.UploadResult, Outcome) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.UploadTimeout)
	defer cancel()

	reachable := netx.Probe(ctx, s.hc, s.cfg.StorageEndpoint)
	s.log.Debug(ctx, "storage endpoint probe", "endpoint", s.cfg.StorageEndpoint, "reachable", reachable)

	url := objectURL(s.cfg, req.key)
	if err := netx.PutWithProgress(ctx, s.hc, url, req.mimeType, req.file.Data, onProgress); err != nil {
		s.log.Warn(ctx, "raw upload failed", "key", req.key, "error", err)
		return models.UploadResult{Error: fmt.Sprintf("Upload failed: %v", err)}, OutcomeRetryable
	}

	s.log.Info(ctx, "raw upload complete", "key", req.key, "size", req.file.Size())
	return remoteSuccess(s.cfg, req), OutcomeSuccess
}

// localFallbackStrategy stores the file in the local store when object
// storage is unreachable. Progress is synthesized as 0 through 100 in 20
// percent steps since there is no transfer to observe.
type localFallbackStrategy struct {
	store *localstore.Service
	log   logging.Logger
	sleep func(time.Duration)
}

func (s *localFallbackStrategy) Name() string { return "local-fallback" }

func (s *localFallbackStrategy) Attempt(ctx context.Context, req uploadRequest, onProgress models.ProgressFunc) (models.UploadResult, Outcome) {
	total := req.file.Size()
	for pct := 0; pct <= 100; pct += 20 {
		if onProgress != nil {
			onProgress(models.Progress{Loaded: total * int64(pct) / 100, Total: total, Percentage: pct})
		}
		if pct < 100 {
			s.sleep(100 * time.Millisecond)
		}
	}

	fu := req.file
	fu.MimeType = req.mimeType
	id, url, err := s.store.StoreFile(ctx, fu, req.userID)
	if err != nil {
		s.log.Error(ctx, "local fallback failed", "name", req.file.Name, "error", err)
		return models.UploadResult{Error: "Upload failed: local storage failure"}, OutcomeFatal
	}

	s.log.Info(ctx, "file stored locally after upload failure", "fileId", id)
	return models.UploadResult{
		Success:  true,
		FileURL:  url,
		FileName: req.file.Name,
		FileSize: total,
		MimeType: req.mimeType,
		FileID:   id,
	}, OutcomeSuccess
}
