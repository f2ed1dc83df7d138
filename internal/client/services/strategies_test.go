package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatfiles/chatfiles/internal/client/config"
	"github.com/chatfiles/chatfiles/internal/client/localstore"
	"github.com/chatfiles/chatfiles/internal/client/models"
)

func testConfig(endpoint string) *config.Config {
	return &config.Config{
		StorageEndpoint:  endpoint,
		StorageAccessKey: "minioadmin",
		StorageSecretKey: "minioadmin",
		StorageBucket:    "chat-files",
		StorageRegion:    "us-east-1",
		UploadTimeout:    5 * time.Second,
	}
}

func TestObjectURL(t *testing.T) {
	cfg := testConfig("http://localhost:9000/")
	assert.Equal(t, "http://localhost:9000/chat-files/alice/1_x.png", objectURL(cfg, "alice/1_x.png"))
}

func TestSdkPutStrategySuccess(t *testing.T) {
	orig := putObject
	defer func() { putObject = orig }()

	var gotBucket, gotKey, gotType string
	var gotBody []byte
	putObject = func(_ *s3.Client, _ context.Context, in *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		gotType = *in.ContentType
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		gotBody = b
		return &s3.PutObjectOutput{}, nil
	}

	cfg := testConfig("http://localhost:9000")
	s := &sdkPutStrategy{cfg: cfg, log: discardLogger()}

	req := uploadRequest{
		file:     models.FileUpload{Name: "a.png", MimeType: "image/png", Data: []byte("png bytes")},
		mimeType: "image/png",
		userID:   "alice",
		key:      "alice/1_x.png",
	}

	var last models.Progress
	res, outcome := s.Attempt(context.Background(), req, func(p models.Progress) { last = p })

	require.Equal(t, OutcomeSuccess, outcome)
	require.True(t, res.Success)
	assert.Equal(t, "chat-files", gotBucket)
	assert.Equal(t, "alice/1_x.png", gotKey)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, []byte("png bytes"), gotBody)
	assert.Equal(t, "http://localhost:9000/chat-files/alice/1_x.png", res.FileURL)
	assert.Equal(t, "1_x.png", res.FileName)
	assert.Equal(t, 100, last.Percentage)
}

func TestSdkPutStrategyFailureIsRetryable(t *testing.T) {
	orig := putObject
	defer func() { putObject = orig }()

	putObject = func(_ *s3.Client, _ context.Context, _ *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, fmt.Errorf("connection refused")
	}

	s := &sdkPutStrategy{cfg: testConfig("http://localhost:9000"), log: discardLogger()}
	res, outcome := s.Attempt(context.Background(), uploadRequest{file: models.FileUpload{Data: []byte{1}}}, nil)

	assert.Equal(t, OutcomeRetryable, outcome)
	require.False(t, res.Success)
	assert.Contains(t, res.Error, "Upload failed")
}

func TestRawPutStrategySuccess(t *testing.T) {
	var gotPath, gotType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			return
		}
		require.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = b
	}))
	defer srv.Close()

	s := &rawPutStrategy{cfg: testConfig(srv.URL), hc: srv.Client(), log: discardLogger()}
	req := uploadRequest{
		file:     models.FileUpload{Name: "a.pdf", MimeType: "application/pdf", Data: []byte("pdf bytes")},
		mimeType: "application/pdf",
		userID:   "alice",
		key:      "alice/1_x.pdf",
	}

	res, outcome := s.Attempt(context.Background(), req, nil)

	require.Equal(t, OutcomeSuccess, outcome)
	require.True(t, res.Success)
	assert.Equal(t, "/chat-files/alice/1_x.pdf", gotPath)
	assert.Equal(t, "application/pdf", gotType)
	assert.Equal(t, []byte("pdf bytes"), gotBody)
	assert.Equal(t, srv.URL+"/chat-files/alice/1_x.pdf", res.FileURL)
}

func TestRawPutStrategyRejectedIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := &rawPutStrategy{cfg: testConfig(srv.URL), hc: srv.Client(), log: discardLogger()}
	res, outcome := s.Attempt(context.Background(), uploadRequest{file: models.FileUpload{Data: []byte{1}}, key: "k"}, nil)

	assert.Equal(t, OutcomeRetryable, outcome)
	require.False(t, res.Success)
}

func TestRawPutStrategyUnreachableIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	s := &rawPutStrategy{cfg: testConfig(srv.URL), hc: &http.Client{}, log: discardLogger()}
	res, outcome := s.Attempt(context.Background(), uploadRequest{file: models.FileUpload{Data: []byte{1}}, key: "k"}, nil)

	assert.Equal(t, OutcomeRetryable, outcome)
	require.False(t, res.Success)
}

// Both direct strategies fail against an unreachable endpoint and the chain
// lands in the local store, still reporting success to the caller.
func TestUploadFileFallsBackToLocalStore(t *testing.T) {
	origPut := putObject
	defer func() { putObject = origPut }()
	putObject = func(_ *s3.Client, _ context.Context, _ *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
		return nil, fmt.Errorf("dial tcp: connection refused")
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	store := localstore.NewService(newMemRepo(), t.TempDir(), discardLogger())
	cfg := testConfig(srv.URL)
	u := NewDirectUploader(cfg, store, &http.Client{}, discardLogger())
	// pace the synthetic progress instantly
	u.strategies[2].(*localFallbackStrategy).sleep = func(time.Duration) {}

	fu := models.FileUpload{
		Name:     "photo.jpg",
		MimeType: "image/jpeg",
		Data:     bytes.Repeat([]byte{0xAB}, 2*1024*1024),
	}

	var pcts []int
	res := u.UploadFile(context.Background(), fu, "alice", func(p models.Progress) { pcts = append(pcts, p.Percentage) })

	require.True(t, res.Success)
	assert.True(t, strings.HasPrefix(res.FileURL, models.LocalStorageScheme), res.FileURL)
	assert.Equal(t, int64(2097152), res.FileSize)
	assert.Equal(t, "image/jpeg", res.MimeType)
	assert.Equal(t, "photo.jpg", res.FileName)

	// tail of the progress stream is the synthetic fallback sequence
	require.GreaterOrEqual(t, len(pcts), 6)
	assert.Equal(t, []int{0, 20, 40, 60, 80, 100}, pcts[len(pcts)-6:])
}
