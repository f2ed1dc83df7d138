package cli

import (
	"context"
	"errors"
	"os"

	"github.com/chatfiles/chatfiles/internal/common"
)

// Select saves the active chat partner. Without an argument the partner is
// prompted for; an empty answer clears the selection.
func (a *App) Select(ctx context.Context, partnerID string) error {
	if partnerID == "" {
		answer, err := GetSimpleText(a.reader, "Chat partner (empty to clear)", os.Stdout)
		if err != nil {
			return err
		}
		partnerID = answer
	}

	if partnerID == "" {
		if err := a.selection.Clear(ctx, a.config.UserID); err != nil {
			return err
		}
		printlnFn("Selection cleared")
		return nil
	}

	if err := a.selection.Save(ctx, a.config.UserID, partnerID); err != nil {
		return err
	}
	printlnFn("Selected", partnerID)
	return nil
}

// Whoami prints the active user and the saved conversation selection.
func (a *App) Whoami(ctx context.Context) error {
	printlnFn("User:", a.config.UserID)

	partner, err := a.selection.Current(ctx, a.config.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			printlnFn("No active conversation")
			return nil
		}
		return err
	}

	printlnFn("Talking to:", partner)
	return nil
}
