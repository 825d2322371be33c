package main

import (
	"context"
	"log"

	"github.com/aimandesu/portfolio-mobile/internal/cli"
	"github.com/aimandesu/portfolio-mobile/internal/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
