package cli

import (
	"context"
	"fmt"
)

// Download resolves the bytes of the nth listed file and reports what came
// back without writing anything to disk.
func (a *App) Download(ctx context.Context, n int) error {
	att, err := a.attachment(n)
	if err != nil {
		return err
	}

	res := a.resolver.DownloadFile(ctx, att, progressLine())
	printfFn("\n")

	if !res.Success {
		printlnFn("Download failed:", res.Error)
		return nil
	}

	printlnFn(fmt.Sprintf("Downloaded %d bytes (%s)", len(res.Data), res.MimeType))
	return nil
}

// Save resolves the nth listed file into the downloads directory.
func (a *App) Save(ctx context.Context, n int) error {
	att, err := a.attachment(n)
	if err != nil {
		return err
	}

	if a.resolver.DownloadAndSave(ctx, att, progressLine()) {
		printfFn("\n")
		printlnFn("Saved to", a.config.DownloadDir)
	} else {
		printfFn("\n")
		printlnFn("Save failed")
	}
	return nil
}

// Preview opens the nth listed file in the platform viewer when it is
// previewable, otherwise saves it like Save does.
func (a *App) Preview(ctx context.Context, n int) error {
	att, err := a.attachment(n)
	if err != nil {
		return err
	}

	if !a.resolver.ValidateAccess(att, a.config.UserID) {
		printlnFn("Access denied")
		return nil
	}

	if a.resolver.PreviewFile(ctx, att) {
		printlnFn("Opened", att.OriginalName)
	} else {
		printlnFn("Preview failed")
	}
	return nil
}
