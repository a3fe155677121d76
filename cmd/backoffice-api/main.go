package main

import (
	"log"
	"os"

	"github.com/aq2208/backoffice-api/cmd/backoffice-api/app"
	"github.com/aq2208/backoffice-api/configs"
)

func main() {
	env := os.Getenv("APP_ENV") // dev | staging | prod
	if env == "" {
		env = "dev"
	}

	cfg, err := configs.Load("configs", env)
	if err != nil {
		log.Fatal(err)
	}

	if err := app.Run(cfg, env); err != nil {
		log.Fatal(err)
	}
}
