// Package selection persists the active chat-partner selection per user.
package selection

import "context"

type Repository interface {
	// Save records partnerID as the active selection for userID, replacing
	// any previous value.
	Save(ctx context.Context, userID, partnerID string) error

	// Current returns the active selection for userID, or
	// common.ErrorNotFound when none has been saved.
	Current(ctx context.Context, userID string) (string, error)

	// Clear removes the selection for userID. Clearing an absent selection
	// is not an error.
	Clear(ctx context.Context, userID string) error
}
