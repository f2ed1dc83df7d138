package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/netx"
)

// UploadFile posts fu to the backend's upload endpoint as a multipart form
// (fields "file" and "userId") and maps the JSON envelope onto an
// UploadResult.
//
// The contract is result-shaped: this method never panics and never returns
// a Go error. Transport failures yield {Success:false, Error:"Network error
// during upload"}; non-2xx statuses carry the server's error message when
// its body parses, otherwise a synthesized "Upload failed: <status>" string.
// Exactly one attempt is made per call; retry policy, if any, belongs to
// the caller.
func (c *Client) UploadFile(ctx context.Context, fu models.FileUpload, userID string, onProgress models.ProgressFunc) models.UploadResult {
	body, contentType, err := buildMultipartBody(fu, userID)
	if err != nil {
		return models.UploadResult{Error: fmt.Sprintf("Upload failed: %v", err)}
	}

	total := int64(body.Len())
	reader := netx.NewProgressReader(body, total, onProgress)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/files/upload", nil), reader)
	if err != nil {
		return models.UploadResult{Error: fmt.Sprintf("Upload failed: %v", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = total

	resp, err := c.hc.Do(req)
	if err != nil {
		c.log.Error(ctx, "backend upload transport failure", "error", err)
		return models.UploadResult{Error: "Network error during upload"}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return c.mapSuccessBody(ctx, resp, fu)
	}
	return c.mapErrorBody(ctx, resp)
}

func buildMultipartBody(fu models.FileUpload, userID string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fu.Name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(fu.Data); err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("userId", userID); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &buf, mw.FormDataContentType(), nil
}

func (c *Client) mapSuccessBody(ctx context.Context, resp *http.Response, fu models.FileUpload) models.UploadResult {
	ur, err := decodeUploadResponse(resp.Body)
	if err != nil {
		c.log.Error(ctx, "backend upload response malformed", "error", err)
		return models.UploadResult{Error: "Upload failed: unexpected response from server"}
	}

	if !ur.Success {
		msg := ur.Error
		if msg == "" {
			msg = "Upload failed"
		}
		return models.UploadResult{Error: msg}
	}

	name := ur.File.StoredFilename
	if name == "" {
		name = fu.Name
	}
	mimeType := ur.File.ContentType
	if mimeType == "" {
		mimeType = fu.MimeType
	}

	c.log.Info(ctx, "backend upload complete", "fileId", ur.File.ID, "fileUrl", ur.File.FileURL)
	return models.UploadResult{
		Success:  true,
		FileURL:  ur.File.FileURL,
		FileName: name,
		FileSize: ur.File.FileSize,
		MimeType: mimeType,
		FileID:   ur.File.ID,
	}
}

func (c *Client) mapErrorBody(ctx context.Context, resp *http.Response) models.UploadResult {
	var er uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
		c.log.Warn(ctx, "backend rejected upload", "status", resp.StatusCode, "error", er.Error)
		return models.UploadResult{Error: er.Error}
	}

	c.log.Warn(ctx, "backend rejected upload", "status", resp.StatusCode)
	return models.UploadResult{
		Error: fmt.Sprintf("Upload failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
