package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chatfiles/chatfiles/internal/client/models"
)

// printfFn is a test seam for the in-place progress line.
var printfFn = fmt.Printf

func progressLine() models.ProgressFunc {
	return func(p models.Progress) {
		printfFn("\rProgress: %3d%%", p.Percentage)
	}
}

// readUpload loads the file at path. The MIME type is left empty so the
// validator sniffs it from the content.
func readUpload(path string) (models.FileUpload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.FileUpload{}, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return models.FileUpload{Name: filepath.Base(path), Data: data}, nil
}

// Upload pushes a file straight to object storage, falling back to the
// local store when the endpoint is unreachable.
func (a *App) Upload(ctx context.Context, path string) error {
	fu, err := readUpload(path)
	if err != nil {
		return err
	}

	res := a.uploader.UploadFile(ctx, fu, a.config.UserID, progressLine())
	printfFn("\n")

	if !res.Success {
		printlnFn("Upload failed:", res.Error)
		return nil
	}

	printlnFn(fmt.Sprintf("Uploaded %s (%d bytes, %s)", res.FileName, res.FileSize, res.MimeType))
	printlnFn("URL:", res.FileURL)
	return nil
}

// BackendUpload pushes a file through the chat backend instead of straight
// to object storage.
func (a *App) BackendUpload(ctx context.Context, path string) error {
	fu, err := readUpload(path)
	if err != nil {
		return err
	}

	res := a.backend.UploadFile(ctx, fu, a.config.UserID, progressLine())
	printfFn("\n")

	if !res.Success {
		printlnFn("Upload failed:", res.Error)
		return nil
	}

	printlnFn(fmt.Sprintf("Uploaded %s (%d bytes, %s)", res.FileName, res.FileSize, res.MimeType))
	printlnFn("URL:", res.FileURL)
	return nil
}
