package cli

import (
	"context"
)

// Delete removes a file by id: local-store entries directly, everything
// else through the backend.
func (a *App) Delete(ctx context.Context, id string) error {
	if _, err := a.store.GetFile(ctx, id); err == nil {
		if err := a.store.Delete(ctx, id); err != nil {
			return err
		}
		printlnFn("Deleted local file", id)
		return nil
	}

	if err := a.backend.DeleteFile(ctx, id, a.config.UserID); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}

// Health probes the backend's file API.
func (a *App) Health(ctx context.Context) error {
	if err := a.backend.Health(ctx); err != nil {
		printlnFn("Backend unhealthy:", err.Error())
		return nil
	}
	printlnFn("Backend healthy")
	return nil
}
