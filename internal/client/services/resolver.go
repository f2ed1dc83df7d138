package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"runtime"
	"time"

	"github.com/samber/lo"

	"github.com/chatfiles/chatfiles/internal/client/localstore"
	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/common"
	"github.com/chatfiles/chatfiles/internal/filex"
	"github.com/chatfiles/chatfiles/internal/logging"
	"github.com/chatfiles/chatfiles/internal/netx"
)

// MIME types previewable beyond the image and pdf categories.
var previewableMimes = []string{
	"text/plain",
	"text/html",
	"text/css",
	"text/javascript",
	"application/json",
}

// openPath hands a file path or URL to the platform's default opener.
// Package variable so tests can intercept it.
var openPath = func(target string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target).Start()
	default:
		return exec.Command("xdg-open", target).Start()
	}
}

// Resolver turns attachments back into bytes, saved files and preview
// targets. It recognizes local-storage:// references and serves them from
// the local store without touching the network.
type Resolver struct {
	store   *localstore.Service
	hc      *http.Client
	saveDir string
	log     logging.Logger

	sleep func(time.Duration)
}

func NewResolver(store *localstore.Service, hc *http.Client, saveDir string, log logging.Logger) *Resolver {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Resolver{store: store, hc: hc, saveDir: saveDir, log: log, sleep: time.Sleep}
}

// DownloadFile resolves the attachment's bytes. Local references are read
// from the store with a synthesized progress sequence; remote URLs are
// streamed with real progress when the server reports a content length.
// Every failure yields a result, never a panic past this boundary.
func (r *Resolver) DownloadFile(ctx context.Context, att models.Attachment, onProgress models.ProgressFunc) models.DownloadResult {
	if id, ok := localstore.FileIDFromURL(att.FileURL); ok {
		return r.downloadLocal(ctx, id, onProgress)
	}
	return r.downloadRemote(ctx, att, onProgress)
}

func (r *Resolver) downloadLocal(ctx context.Context, id string, onProgress models.ProgressFunc) models.DownloadResult {
	data, mimeType, err := r.store.Bytes(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.DownloadResult{Error: "File not found in local storage"}
		}
		r.log.Error(ctx, "local download failed", "fileId", id, "error", err)
		return models.DownloadResult{Error: "Download failed"}
	}

	total := int64(len(data))
	for pct := 0; pct <= 100; pct += 25 {
		if onProgress != nil {
			onProgress(models.Progress{Loaded: total * int64(pct) / 100, Total: total, Percentage: pct})
		}
		if pct < 100 {
			r.sleep(50 * time.Millisecond)
		}
	}

	return models.DownloadResult{Success: true, Data: data, MimeType: mimeType}
}

func (r *Resolver) downloadRemote(ctx context.Context, att models.Attachment, onProgress models.ProgressFunc) models.DownloadResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.FileURL, nil)
	if err != nil {
		return models.DownloadResult{Error: fmt.Sprintf("Download failed: %v", err)}
	}

	resp, err := r.hc.Do(req)
	if err != nil {
		r.log.Error(ctx, "download transport failure", "url", att.FileURL, "error", err)
		return models.DownloadResult{Error: "Network error during download"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.DownloadResult{Error: fmt.Sprintf("Download failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	data, err := netx.ReadAllWithProgress(resp.Body, resp.ContentLength, onProgress)
	if err != nil {
		r.log.Error(ctx, "download stream failure", "url", att.FileURL, "error", err)
		return models.DownloadResult{Error: "Network error during download"}
	}

	// The attachment's declared type wins over whatever the storage server
	// guessed for the object.
	mimeType := att.MimeType
	if mimeType == "" {
		mimeType = resp.Header.Get("Content-Type")
	}
	return models.DownloadResult{Success: true, Data: data, MimeType: mimeType}
}

// DownloadAndSave resolves the attachment and writes it into the configured
// downloads directory, reporting whether the save happened.
func (r *Resolver) DownloadAndSave(ctx context.Context, att models.Attachment, onProgress models.ProgressFunc) bool {
	res := r.DownloadFile(ctx, att, onProgress)
	if !res.Success {
		r.log.Warn(ctx, "save skipped", "url", att.FileURL, "error", res.Error)
		return false
	}

	dir, err := filex.EnsureDir(r.saveDir)
	if err != nil {
		r.log.Error(ctx, "save failed", "dir", r.saveDir, "error", err)
		return false
	}

	name := att.OriginalName
	if name == "" {
		name = path.Base(att.FileURL)
	}

	target := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(target, res.Data, 0o600); err != nil {
		r.log.Error(ctx, "save failed", "path", target, "error", err)
		return false
	}

	r.log.Info(ctx, "file saved", "path", target, "size", len(res.Data))
	return true
}

// PreviewURL resolves the attachment to something an external viewer can
// open: local references are materialized into the blob cache, remote images
// pass through as their raw URL. Signed URLs for other remote types are not
// issued yet.
func (r *Resolver) PreviewURL(ctx context.Context, att models.Attachment) (string, error) {
	if id, ok := localstore.FileIDFromURL(att.FileURL); ok {
		return r.store.Materialize(ctx, id)
	}

	if att.Category == models.CategoryImage {
		return att.FileURL, nil
	}

	return "", fmt.Errorf("no preview source for %q attachments", att.Category)
}

// CanPreview reports whether the attachment renders inline: images, PDFs
// and a small set of text types.
func (r *Resolver) CanPreview(att models.Attachment) bool {
	if att.Category == models.CategoryImage || att.Category == models.CategoryPDF {
		return true
	}
	return lo.Contains(previewableMimes, att.MimeType)
}

// PreviewFile opens a previewable attachment in the platform viewer and
// falls back to a plain download for everything else. Returns whether the
// action was carried out.
func (r *Resolver) PreviewFile(ctx context.Context, att models.Attachment) bool {
	if !r.CanPreview(att) {
		return r.DownloadAndSave(ctx, att, nil)
	}

	target, err := r.PreviewURL(ctx, att)
	if err != nil {
		r.log.Warn(ctx, "preview unavailable", "url", att.FileURL, "error", err)
		return false
	}

	if err := openPath(target); err != nil {
		r.log.Error(ctx, "preview open failed", "target", target, "error", err)
		return false
	}
	return true
}

// ValidateAccess will consult the backend's ACLs once per-conversation
// sharing lands; until then every caller may resolve every attachment.
// TODO: call the backend accessible-files check once that endpoint is
// stable.
func (r *Resolver) ValidateAccess(att models.Attachment, userID string) bool {
	_ = att
	_ = userID
	return true
}
