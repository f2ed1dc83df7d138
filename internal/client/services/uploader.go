// Package services contains the upload and download orchestration: the
// direct object-storage upload chain with its local-store fallback, and the
// resolver that turns attachments back into bytes and preview targets.
package services

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chatfiles/chatfiles/internal/client/config"
	"github.com/chatfiles/chatfiles/internal/client/localstore"
	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/client/validation"
	"github.com/chatfiles/chatfiles/internal/logging"
	"github.com/chatfiles/chatfiles/internal/shared"
)

// Outcome classifies the result of one upload strategy attempt and drives
// the chain: Success and Fatal stop it, Retryable advances to the next
// strategy.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeRetryable
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetryable:
		return "retryable"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// uploadRequest is the immutable input shared by every strategy in one
// UploadFile call: the file, its normalized MIME type, the uploader and the
// pre-generated storage key.
type uploadRequest struct {
	file     models.FileUpload
	mimeType string
	userID   string
	key      string
}

// uploadStrategy is one way of getting the bytes somewhere durable.
// Attempt never returns a Go error; the Outcome tells the runner what to do
// with the result.
type uploadStrategy interface {
	Name() string
	Attempt(ctx context.Context, req uploadRequest, onProgress models.ProgressFunc) (models.UploadResult, Outcome)
}

// DirectUploader pushes files straight to object storage, falling back to
// the local store when the storage endpoint cannot be reached. The chain is
// fixed at construction: SDK PUT, then raw HTTP PUT, then local fallback.
type DirectUploader struct {
	strategies []uploadStrategy
	log        logging.Logger
}

// NewDirectUploader wires the standard three-strategy chain from the
// configuration, the local store and an HTTP client for the raw PUT.
func NewDirectUploader(cfg *config.Config, store *localstore.Service, hc *http.Client, log logging.Logger) *DirectUploader {
	return &DirectUploader{
		strategies: []uploadStrategy{
			&sdkPutStrategy{cfg: cfg, log: log},
			&rawPutStrategy{cfg: cfg, hc: hc, log: log},
			&localFallbackStrategy{store: store, log: log, sleep: time.Sleep},
		},
		log: log,
	}
}

// newChain builds an uploader over an explicit strategy list, for tests.
func newChain(log logging.Logger, strategies ...uploadStrategy) *DirectUploader {
	return &DirectUploader{strategies: strategies, log: log}
}

// UploadFile validates fu and runs it through the strategy chain. It never
// panics and never returns a Go error; every path yields an UploadResult.
// Each strategy gets exactly one attempt.
func (u *DirectUploader) UploadFile(ctx context.Context, fu models.FileUpload, userID string, onProgress models.ProgressFunc) models.UploadResult {
	if err := validation.Validate(fu); err != nil {
		u.log.Warn(ctx, "file rejected", "name", fu.Name, "error", err)
		return models.UploadResult{Error: err.Error()}
	}

	req := uploadRequest{
		file:     fu,
		mimeType: validation.NormalizeMimeType(fu),
		userID:   userID,
		key:      storageKey(userID, fu.Name),
	}

	return u.run(ctx, req, onProgress)
}

func (u *DirectUploader) run(ctx context.Context, req uploadRequest, onProgress models.ProgressFunc) models.UploadResult {
	var last models.UploadResult

	for _, s := range u.strategies {
		res, outcome := s.Attempt(ctx, req, onProgress)
		u.log.Info(ctx, "upload attempt finished", "strategy", s.Name(), "outcome", outcome.String())

		switch outcome {
		case OutcomeSuccess, OutcomeFatal:
			return res
		}
		last = res
	}

	return last
}

// storageKey builds the object key `<userID>/<unix-ms>_<token>.<ext>`.
// Uniqueness is probabilistic: the millisecond timestamp plus a random
// base36 token of 8 to 13 characters.
func storageKey(userID, fileName string) string {
	token, err := shared.MakeRandToken(8, 13)
	if err != nil {
		token = strconv.FormatInt(time.Now().UnixNano(), 36)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	if ext == "" {
		ext = "bin"
	}

	return fmt.Sprintf("%s/%d_%s.%s", userID, time.Now().UnixMilli(), token, ext)
}
