package main

import (
	"context"
	"log"

	"github.com/freddy-le-go/mockauth/internal/cli"
	"github.com/freddy-le-go/mockauth/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.Bootstrap(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
