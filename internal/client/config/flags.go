package config

import (
	"flag"
	"os"

	"github.com/chatfiles/chatfiles/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the chat backend API (default from Config)
//	-u string   acting user id
//	-d string   path to the local sqlite database
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the chat backend API")
	fs.StringVar(&cfg.UserID, "u", cfg.UserID, "acting user id")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")

	_ = fs.Parse(args)
}
