package cli

import (
	"context"
	"fmt"

	"github.com/chatfiles/chatfiles/internal/client/models"
)

// List shows the files available to the active user: local-store entries
// first, then the backend's listing when it answers. The printed indexes
// feed the download, save and preview commands.
func (a *App) List(ctx context.Context) error {
	a.attachments = a.attachments[:0]

	local, err := a.store.ListByUploader(ctx, a.config.UserID)
	if err != nil {
		return err
	}
	for _, f := range local {
		a.attachments = append(a.attachments, models.Attachment{
			FileURL:      models.LocalStorageScheme + f.ID,
			OriginalName: f.ID,
			FileSize:     f.Size,
			MimeType:     f.MimeType,
			Category:     models.CategoryForMime(f.MimeType),
			UploadedBy:   f.UploadedBy,
			Icon:         models.IconForCategory(models.CategoryForMime(f.MimeType)),
		})
	}

	page, err := a.backend.ListUserFiles(ctx, a.config.UserID, 1, 50)
	if err != nil {
		a.log.Debug(ctx, "backend listing unavailable", "error", err)
	} else {
		for _, f := range page.Files {
			a.attachments = append(a.attachments, models.Attachment{
				FileURL:      f.FileURL,
				OriginalName: f.OriginalName,
				FileSize:     f.FileSize,
				MimeType:     f.ContentType,
				Category:     models.CategoryForMime(f.ContentType),
				UploadedBy:   f.UploadedBy,
				Icon:         models.IconForCategory(models.CategoryForMime(f.ContentType)),
			})
		}
	}

	if len(a.attachments) == 0 {
		printlnFn("No files")
		return nil
	}

	for i, att := range a.attachments {
		printlnFn(fmt.Sprintf("%3d %s %s (%d bytes, %s)", i, att.Icon, att.OriginalName, att.FileSize, att.MimeType))
	}
	return nil
}

// attachment resolves a `list` index to the remembered attachment.
func (a *App) attachment(n int) (models.Attachment, error) {
	if n < 0 || n >= len(a.attachments) {
		return models.Attachment{}, fmt.Errorf("no file with index %d, run list first", n)
	}
	return a.attachments[n], nil
}
