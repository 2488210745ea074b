package main

import (
	"context"
	"log"

	"github.com/avdeyev/bizdash/internal/client/cli"
	"github.com/avdeyev/bizdash/internal/client/config"
)

func main() {

	cfg := config.LoadConfig()
	app, err := cli.NewApp(cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(context.Background())
}
