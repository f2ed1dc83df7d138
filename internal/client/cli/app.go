// Package cli implements the interactive chatfiles client: a small REPL
// over the upload, download and selection services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	"github.com/chatfiles/chatfiles/internal/client/backend"
	"github.com/chatfiles/chatfiles/internal/client/clientdb"
	"github.com/chatfiles/chatfiles/internal/client/config"
	"github.com/chatfiles/chatfiles/internal/client/localstore"
	"github.com/chatfiles/chatfiles/internal/client/models"
	"github.com/chatfiles/chatfiles/internal/client/repositories/selection"
	"github.com/chatfiles/chatfiles/internal/client/services"
	"github.com/chatfiles/chatfiles/internal/logging"
)

type App struct {
	config    *config.Config
	db        *sql.DB
	store     *localstore.Service
	backend   *backend.Client
	uploader  *services.DirectUploader
	resolver  *services.Resolver
	selection selection.Repository
	log       logging.Logger
	reader    *bufio.Reader

	// attachments remembered from the last `list`, addressed by index.
	attachments []models.Attachment
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))

	db, repos, err := clientdb.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	hc := &http.Client{Timeout: cfg.UploadTimeout}
	store := localstore.NewService(repos.Files, cfg.BlobCacheDir, log)

	return &App{
		config:    cfg,
		db:        db,
		store:     store,
		backend:   backend.NewClient(cfg.APIBaseURL, hc, log),
		uploader:  services.NewDirectUploader(cfg, store, hc, log),
		resolver:  services.NewResolver(store, hc, cfg.DownloadDir, log),
		selection: repos.Selection,
		log:       log,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
