package main

import (
	"context"
	"log"

	"github.com/chatfiles/chatfiles/internal/client/cli"
	"github.com/chatfiles/chatfiles/internal/client/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(context.Background())
}
