// Package backend implements the REST client for the chat backend's file
// API: the backend-proxied upload plus the metadata, download, listing and
// lifecycle endpoints.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/common"
	"github.com/chatfiles/chatfiles/internal/logging"
	"github.com/chatfiles/chatfiles/internal/netx"
)

type Client struct {
	baseURL string
	hc      *http.Client
	log     logging.Logger
}

// NewClient builds a client for the file API rooted at baseURL. A nil
// http.Client falls back to a default one.
func NewClient(baseURL string, hc *http.Client, log logging.Logger) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc, log: log}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// getJSON performs a GET and decodes the 2xx body into v. Transport errors
// wrap common.ErrNetwork, undecodable bodies wrap common.ErrProtocol.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request failed: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", common.ErrProtocol, err)
	}
	return nil
}

// Metadata fetches the stored metadata of a file.
func (c *Client) Metadata(ctx context.Context, fileID, userID string) (*FileInfo, error) {
	q := url.Values{"userId": {userID}}
	var fi FileInfo
	if err := c.getJSON(ctx, c.endpoint("/api/files/metadata/"+fileID, q), &fi); err != nil {
		return nil, err
	}
	return &fi, nil
}

// Download streams the file's bytes, reporting progress when the backend
// provides a content length. Returns the bytes and the reported content type.
func (c *Client) Download(ctx context.Context, fileID, userID string, onProgress models.ProgressFunc) ([]byte, string, error) {
	q := url.Values{"userId": {userID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/files/download/"+fileID, q), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("download failed: %s", resp.Status)
	}

	data, err := netx.ReadAllWithProgress(resp.Body, resp.ContentLength, onProgress)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// ViewURL returns the in-browser view URL for a file; no request is made.
func (c *Client) ViewURL(fileID, userID string) string {
	return c.endpoint("/api/files/view/"+fileID, url.Values{"userId": {userID}})
}

// PresignedURL asks the backend for a time-limited download URL.
func (c *Client) PresignedURL(ctx context.Context, fileID, userID string, expirySeconds int) (string, error) {
	q := url.Values{
		"userId":        {userID},
		"expirySeconds": {strconv.Itoa(expirySeconds)},
	}
	var pr presignedResponse
	if err := c.getJSON(ctx, c.endpoint("/api/files/presigned-url/"+fileID, q), &pr); err != nil {
		return "", err
	}
	if !pr.Success || pr.URL == "" {
		if pr.Error != "" {
			return "", fmt.Errorf("presigned url refused: %s", pr.Error)
		}
		return "", fmt.Errorf("%w: presigned url response without url", common.ErrProtocol)
	}
	return pr.URL, nil
}

// DeleteFile removes a file through the backend.
func (c *Client) DeleteFile(ctx context.Context, fileID, userID string) error {
	q := url.Values{"userId": {userID}}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpoint("/api/files/"+fileID, q), nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("delete failed: %s", resp.Status)
	}

	var sr statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err == nil && !sr.Success && sr.Error != "" {
		return fmt.Errorf("delete refused: %s", sr.Error)
	}
	return nil
}

// ListUserFiles pages through the files a user uploaded.
func (c *Client) ListUserFiles(ctx context.Context, userID string, page, size int) (*FilePage, error) {
	q := url.Values{
		"page": {strconv.Itoa(page)},
		"size": {strconv.Itoa(size)},
	}
	var fp FilePage
	if err := c.getJSON(ctx, c.endpoint("/api/files/user/"+userID, q), &fp); err != nil {
		return nil, err
	}
	return &fp, nil
}

// ListAccessible pages through the files a user may access.
func (c *Client) ListAccessible(ctx context.Context, userID string, page, size int) (*FilePage, error) {
	q := url.Values{
		"userId": {userID},
		"page":   {strconv.Itoa(page)},
		"size":   {strconv.Itoa(size)},
	}
	var fp FilePage
	if err := c.getJSON(ctx, c.endpoint("/api/files/accessible", q), &fp); err != nil {
		return nil, err
	}
	return &fp, nil
}

// Stats fetches a user's storage statistics.
func (c *Client) Stats(ctx context.Context, userID, requestingUserID string) (*FileStats, error) {
	q := url.Values{"requestingUserId": {requestingUserID}}
	var fs FileStats
	if err := c.getJSON(ctx, c.endpoint("/api/files/stats/"+userID, q), &fs); err != nil {
		return nil, err
	}
	return &fs, nil
}

// Health probes the file API. Any 2xx means healthy.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/files/health", nil), nil)
	if err != nil {
		return err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("file api unhealthy: %s", resp.Status)
	}
	return nil
}
