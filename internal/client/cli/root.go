package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chatfiles/chatfiles/internal/common"
)

// status shows the active user and, when one is saved, the selected chat
// partner.
func (a *App) status() string {
	s := a.config.UserID
	if partner, err := a.selection.Current(context.Background(), a.config.UserID); err == nil {
		s += " -> " + partner
	} else if !errors.Is(err, common.ErrorNotFound) {
		a.log.Warn(context.Background(), "selection lookup failed", "error", err)
	}
	return fmt.Sprintf("(%s) ", s)
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("chatfiles CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}
